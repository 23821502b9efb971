package ledger

import (
	"strings"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/validation"
)

// AddAccount validates a and appends it with a new id.
func (l *Ledger) AddAccount(a models.Account) (models.Account, error) {
	a.Name = strings.TrimSpace(a.Name)
	if err := validation.Account(l.ds, a); err != nil {
		return models.Account{}, err
	}
	a.ID = l.ids.NewID()
	l.ds.Accounts = append(l.ds.Accounts, a)
	return a, nil
}

// UpdateAccount replaces the account with a.ID.
func (l *Ledger) UpdateAccount(a models.Account) (models.Account, error) {
	for i := range l.ds.Accounts {
		if l.ds.Accounts[i].ID != a.ID {
			continue
		}
		a.Name = strings.TrimSpace(a.Name)
		if err := validation.Account(l.ds, a); err != nil {
			return models.Account{}, err
		}
		l.ds.Accounts[i] = a
		return a, nil
	}
	return models.Account{}, &apperrors.NotFoundError{Entity: "account", ID: a.ID}
}

// DeleteAccount removes an account that no record references.
func (l *Ledger) DeleteAccount(id string) error {
	for i := range l.ds.Accounts {
		if l.ds.Accounts[i].ID != id {
			continue
		}
		if n := l.ds.RecordsForAccount(id); n > 0 {
			return &apperrors.InUseError{Entity: "account", ID: id, ReferencedBy: "records", Count: n}
		}
		l.ds.Accounts = append(l.ds.Accounts[:i], l.ds.Accounts[i+1:]...)
		return nil
	}
	return &apperrors.NotFoundError{Entity: "account", ID: id}
}

// AddCategory validates c and appends it with a new id.
func (l *Ledger) AddCategory(c models.Category) (models.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := validation.Category(c); err != nil {
		return models.Category{}, err
	}
	c.ID = l.ids.NewID()
	l.ds.Categories = append(l.ds.Categories, c)
	return c, nil
}

// UpdateCategory replaces the category with c.ID. Changing the type of a
// category flips the sign of every account in it, for the whole history.
func (l *Ledger) UpdateCategory(c models.Category) (models.Category, error) {
	for i := range l.ds.Categories {
		if l.ds.Categories[i].ID != c.ID {
			continue
		}
		c.Name = strings.TrimSpace(c.Name)
		if err := validation.Category(c); err != nil {
			return models.Category{}, err
		}
		l.ds.Categories[i] = c
		return c, nil
	}
	return models.Category{}, &apperrors.NotFoundError{Entity: "category", ID: c.ID}
}

// DeleteCategory removes a category that no account references.
func (l *Ledger) DeleteCategory(id string) error {
	for i := range l.ds.Categories {
		if l.ds.Categories[i].ID != id {
			continue
		}
		if n := l.ds.AccountsForCategory(id); n > 0 {
			return &apperrors.InUseError{Entity: "category", ID: id, ReferencedBy: "accounts", Count: n}
		}
		l.ds.Categories = append(l.ds.Categories[:i], l.ds.Categories[i+1:]...)
		return nil
	}
	return &apperrors.NotFoundError{Entity: "category", ID: id}
}

// AddOwner validates o and appends it with a new id.
func (l *Ledger) AddOwner(o models.Owner) (models.Owner, error) {
	o.Name = strings.TrimSpace(o.Name)
	if err := validation.Owner(o); err != nil {
		return models.Owner{}, err
	}
	o.ID = l.ids.NewID()
	l.ds.Owners = append(l.ds.Owners, o)
	return o, nil
}

// UpdateOwner renames the owner with o.ID.
func (l *Ledger) UpdateOwner(o models.Owner) (models.Owner, error) {
	for i := range l.ds.Owners {
		if l.ds.Owners[i].ID != o.ID {
			continue
		}
		o.Name = strings.TrimSpace(o.Name)
		if err := validation.Owner(o); err != nil {
			return models.Owner{}, err
		}
		l.ds.Owners[i] = o
		return o, nil
	}
	return models.Owner{}, &apperrors.NotFoundError{Entity: "owner", ID: o.ID}
}

// DeleteOwner removes an owner that no account references.
func (l *Ledger) DeleteOwner(id string) error {
	for i := range l.ds.Owners {
		if l.ds.Owners[i].ID != id {
			continue
		}
		if n := l.ds.AccountsForOwner(id); n > 0 {
			return &apperrors.InUseError{Entity: "owner", ID: id, ReferencedBy: "accounts", Count: n}
		}
		l.ds.Owners = append(l.ds.Owners[:i], l.ds.Owners[i+1:]...)
		return nil
	}
	return &apperrors.NotFoundError{Entity: "owner", ID: id}
}

// EnsureDefaultCategories seeds the default categories when the dataset has
// none, and reports whether it did.
func (l *Ledger) EnsureDefaultCategories() bool {
	if len(l.ds.Categories) > 0 {
		return false
	}
	l.ds.Categories = models.DefaultCategories(l.ids.NewID)
	return true
}

// FindAccountByName returns the account with the given name, ignoring case.
func (l *Ledger) FindAccountByName(name string) (models.Account, bool) {
	return findByName(l.ds.Accounts, name, func(a models.Account) string { return a.Name })
}

// FindCategoryByName returns the category with the given name, ignoring case.
func (l *Ledger) FindCategoryByName(name string) (models.Category, bool) {
	return findByName(l.ds.Categories, name, func(c models.Category) string { return c.Name })
}

// FindOwnerByName returns the owner with the given name, ignoring case.
func (l *Ledger) FindOwnerByName(name string) (models.Owner, bool) {
	return findByName(l.ds.Owners, name, func(o models.Owner) string { return o.Name })
}

func findByName[T any](items []T, name string, nameOf func(T) string) (T, bool) {
	name = strings.TrimSpace(name)
	for _, it := range items {
		if strings.EqualFold(nameOf(it), name) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// ResolveAccount finds an account by id, then by name.
func (l *Ledger) ResolveAccount(ref string) (models.Account, error) {
	if a, ok := l.ds.Account(ref); ok {
		return a, nil
	}
	if a, ok := l.FindAccountByName(ref); ok {
		return a, nil
	}
	return models.Account{}, &apperrors.NotFoundError{Entity: "account", ID: ref}
}

// ResolveCategory finds a category by id, then by name.
func (l *Ledger) ResolveCategory(ref string) (models.Category, error) {
	if c, ok := l.ds.Category(ref); ok {
		return c, nil
	}
	if c, ok := l.FindCategoryByName(ref); ok {
		return c, nil
	}
	return models.Category{}, &apperrors.NotFoundError{Entity: "category", ID: ref}
}

// ResolveOwner finds an owner by id, then by name.
func (l *Ledger) ResolveOwner(ref string) (models.Owner, error) {
	if o, ok := l.ds.Owner(ref); ok {
		return o, nil
	}
	if o, ok := l.FindOwnerByName(ref); ok {
		return o, nil
	}
	return models.Owner{}, &apperrors.NotFoundError{Entity: "owner", ID: ref}
}
