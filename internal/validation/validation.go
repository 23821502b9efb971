// Package validation checks entities before they enter a dataset and
// validates command line inputs such as paths and formats.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/models"
)

// Record checks a balance observation against the dataset it joins: the date
// is set, the amount is a non-negative balance and the account exists.
func Record(ds *models.Dataset, r models.Record) error {
	if r.Date.IsZero() {
		return &apperrors.ValidationError{Entity: "record", Field: "date", Reason: "is required"}
	}
	if r.Amount.IsNegative() {
		return &apperrors.ValidationError{Entity: "record", Field: "amount", Reason: "must not be negative"}
	}
	if strings.TrimSpace(r.AccountID) == "" {
		return &apperrors.ValidationError{Entity: "record", Field: "accountId", Reason: "is required"}
	}
	if _, ok := ds.Account(r.AccountID); !ok {
		return &apperrors.ValidationError{Entity: "record", Field: "accountId", Reason: fmt.Sprintf("references unknown account %q", r.AccountID)}
	}
	return nil
}

// Account checks that an account is named, uses a supported currency and
// points to an existing category and owner.
func Account(ds *models.Dataset, a models.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return &apperrors.ValidationError{Entity: "account", Field: "name", Reason: "is required"}
	}
	if !a.Currency.IsSupported() {
		return &apperrors.ValidationError{Entity: "account", Field: "currency", Reason: fmt.Sprintf("%q is not supported", a.Currency)}
	}
	if _, ok := ds.Category(a.CategoryID); !ok {
		return &apperrors.ValidationError{Entity: "account", Field: "categoryId", Reason: fmt.Sprintf("references unknown category %q", a.CategoryID)}
	}
	if _, ok := ds.Owner(a.OwnerID); !ok {
		return &apperrors.ValidationError{Entity: "account", Field: "ownerId", Reason: fmt.Sprintf("references unknown owner %q", a.OwnerID)}
	}
	return nil
}

// Category checks that a category is named and typed.
func Category(c models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return &apperrors.ValidationError{Entity: "category", Field: "name", Reason: "is required"}
	}
	if c.Type != models.Asset && c.Type != models.Liability {
		return &apperrors.ValidationError{Entity: "category", Field: "type", Reason: fmt.Sprintf("must be %s or %s", models.Asset, models.Liability)}
	}
	return nil
}

// Owner checks that an owner is named.
func Owner(o models.Owner) error {
	if strings.TrimSpace(o.Name) == "" {
		return &apperrors.ValidationError{Entity: "owner", Field: "name", Reason: "is required"}
	}
	return nil
}

// Dataset returns the dangling references of a dataset: records pointing to
// missing accounts and accounts pointing to missing categories or owners.
// They are not fatal, the valuation engine labels them "Unknown".
func Dataset(ds *models.Dataset) []*apperrors.DanglingReferenceWarning {
	var out []*apperrors.DanglingReferenceWarning
	for _, a := range ds.Accounts {
		if _, ok := ds.Category(a.CategoryID); !ok {
			out = append(out, &apperrors.DanglingReferenceWarning{Entity: "account", EntityID: a.ID, Reference: "category", MissingID: a.CategoryID})
		}
		if _, ok := ds.Owner(a.OwnerID); !ok {
			out = append(out, &apperrors.DanglingReferenceWarning{Entity: "account", EntityID: a.ID, Reference: "owner", MissingID: a.OwnerID})
		}
	}
	for _, r := range ds.Records {
		if _, ok := ds.Account(r.AccountID); !ok {
			out = append(out, &apperrors.DanglingReferenceWarning{Entity: "record", EntityID: r.ID, Reference: "account", MissingID: r.AccountID})
		}
	}
	return out
}

// UniqueIDs checks that no two records, accounts, categories or owners share
// an id. Storage backends key every entity by id, so a duplicate would be
// kept by one backend and refused by another.
func UniqueIDs(ds *models.Dataset) error {
	if err := uniqueIDs("record", ds.Records, func(r models.Record) string { return r.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("account", ds.Accounts, func(a models.Account) string { return a.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("category", ds.Categories, func(c models.Category) string { return c.ID }); err != nil {
		return err
	}
	return uniqueIDs("owner", ds.Owners, func(o models.Owner) string { return o.ID })
}

func uniqueIDs[T any](entity string, items []T, idOf func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		id := idOf(it)
		if seen[id] {
			return &apperrors.ValidationError{Entity: entity, Field: "id", Reason: fmt.Sprintf("%q is used more than once", id)}
		}
		seen[id] = true
	}
	return nil
}

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks that format is one of the supported ones.
func IsValidOutputFormat(format string, supported ...string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are '%s'", format, strings.Join(supported, "', '"))
}

// IsValidFilePermissions checks that a data file is not readable by others.
// Household balances are private, so 0600 is expected.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.String())
	}
	return nil
}
