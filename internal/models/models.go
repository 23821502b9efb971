// Package models contains the entities shared across the asset tracker: owners,
// categories, accounts and the dated balance records attached to them.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryType classifies the economic nature of a category. It is the only
// input deciding the sign of a value in aggregates.
type CategoryType string

const (
	Asset     CategoryType = "ASSET"
	Liability CategoryType = "LIABILITY"
)

// ParseCategoryType parses "asset" or "liability", ignoring case.
func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(strings.ToUpper(strings.TrimSpace(s))) {
	case Asset:
		return Asset, nil
	case Liability:
		return Liability, nil
	}
	return "", fmt.Errorf("unknown category type %q (want ASSET or LIABILITY)", s)
}

// Unknown is the label used for references that cannot be resolved.
const Unknown = "Unknown"

// Owner is a person or a joint designation owning accounts.
type Owner struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Category groups accounts by economic nature.
type Category struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Type  CategoryType `json:"type" yaml:"type"`
	Color string       `json:"color,omitempty" yaml:"color,omitempty"`
}

// IsLiability reports whether values in this category reduce net worth.
func (c Category) IsLiability() bool { return c.Type == Liability }

// Account is a named container of value denominated in a single currency.
type Account struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Currency   Currency `json:"currency" yaml:"currency"`
	CategoryID string   `json:"categoryId" yaml:"categoryId"`
	OwnerID    string   `json:"ownerId" yaml:"ownerId"`
}

// Record asserts that an account held Amount, in the account currency, as of
// Date. It is an absolute balance, never a delta. Timestamp is the creation
// instant in milliseconds since the epoch and breaks ties between records
// sharing the same date.
type Record struct {
	ID        string          `json:"id" yaml:"id"`
	Date      Date            `json:"date" yaml:"date"`
	AccountID string          `json:"accountId" yaml:"accountId"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Note      string          `json:"note,omitempty" yaml:"note,omitempty"`
	Timestamp int64           `json:"timestamp" yaml:"timestamp"`
}

// Supersedes reports whether r wins over other when both describe the same
// account: the later date wins, then the later timestamp.
func (r Record) Supersedes(other Record) bool {
	if c := r.Date.Compare(other.Date); c != 0 {
		return c > 0
	}
	return r.Timestamp > other.Timestamp
}
