package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name:     "with currency",
			err:      &ConfigurationError{Currency: "XYZ", Reason: "missing from rate table"},
			expected: "configuration error for currency XYZ: missing from rate table",
		},
		{
			name:     "without currency",
			err:      &ConfigurationError{Reason: "USD rate must be 1"},
			expected: "configuration error: USD rate must be 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDanglingReferenceWarning(t *testing.T) {
	err := &DanglingReferenceWarning{
		Entity:    "account",
		EntityID:  "acc-1",
		Reference: "category",
		MissingID: "cat-9",
	}
	assert.Equal(t, `account acc-1 references missing category "cat-9"`, err.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Entity: "record", Field: "amount", Reason: "must not be negative"}
	assert.Equal(t, "invalid record: amount must not be negative", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "owner", ID: "o-1"}
	assert.Equal(t, `owner "o-1" not found`, err.Error())
}

func TestInUseError(t *testing.T) {
	err := &InUseError{Entity: "category", ID: "cat-1", ReferencedBy: "accounts", Count: 2}
	assert.Equal(t, `cannot delete category "cat-1": referenced by 2 accounts`, err.Error())
}

func TestImportFormatError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ImportFormatError{Source: "backup.json", Reason: "malformed JSON", Err: cause}

	assert.Equal(t, "invalid import data in backup.json: malformed JSON: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("import failed: %w", err)
	var target *ImportFormatError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "backup.json", target.Source)
}

func TestImportFormatError_NoCause(t *testing.T) {
	err := &ImportFormatError{Source: "stdin", Reason: "expected an array or a backup object"}
	assert.Equal(t, "invalid import data in stdin: expected an array or a backup object", err.Error())
	assert.Nil(t, err.Unwrap())
}
