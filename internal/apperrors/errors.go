// Package apperrors defines the typed errors shared by the valuation engine and
// the collaborators around it (ledger, store, importer).
package apperrors

import "fmt"

// ConfigurationError reports a deployment defect, such as a currency that is
// missing from the rate table. It is never caused by user data.
type ConfigurationError struct {
	Currency string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Currency != "" {
		return fmt.Sprintf("configuration error for currency %s: %s", e.Currency, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// DanglingReferenceWarning reports an entity that points to an id that does
// not exist. The engine recovers from it by labelling the value "Unknown".
type DanglingReferenceWarning struct {
	Entity    string // entity holding the reference, e.g. "record"
	EntityID  string
	Reference string // kind of the missing target, e.g. "account"
	MissingID string
}

func (e *DanglingReferenceWarning) Error() string {
	return fmt.Sprintf("%s %s references missing %s %q",
		e.Entity, e.EntityID, e.Reference, e.MissingID)
}

// ValidationError represents a rejected entity field.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

// NotFoundError is returned when an entity id is unknown.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// InUseError is returned when deleting an entity that is still referenced.
type InUseError struct {
	Entity       string
	ID           string
	ReferencedBy string
	Count        int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: referenced by %d %s",
		e.Entity, e.ID, e.Count, e.ReferencedBy)
}

// ImportFormatError represents an input document that does not match any of
// the accepted import shapes.
type ImportFormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid import data in %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid import data in %s: %s", e.Source, e.Reason)
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}
