package models

// Dataset is the full entity set handed over by the persistence layer.
type Dataset struct {
	Records    []Record   `json:"records" yaml:"records"`
	Accounts   []Account  `json:"accounts" yaml:"accounts"`
	Categories []Category `json:"categories" yaml:"categories"`
	Owners     []Owner    `json:"owners" yaml:"owners"`
}

// NewDataset returns an empty dataset with non-nil collections.
func NewDataset() *Dataset {
	return &Dataset{
		Records:    []Record{},
		Accounts:   []Account{},
		Categories: []Category{},
		Owners:     []Owner{},
	}
}

// IsEmpty reports whether the dataset holds no entity at all.
func (ds *Dataset) IsEmpty() bool {
	return len(ds.Records) == 0 && len(ds.Accounts) == 0 &&
		len(ds.Categories) == 0 && len(ds.Owners) == 0
}

// Clone returns a deep copy, so callers can mutate it without touching ds.
func (ds *Dataset) Clone() *Dataset {
	out := &Dataset{
		Records:    make([]Record, len(ds.Records)),
		Accounts:   make([]Account, len(ds.Accounts)),
		Categories: make([]Category, len(ds.Categories)),
		Owners:     make([]Owner, len(ds.Owners)),
	}
	copy(out.Records, ds.Records)
	copy(out.Accounts, ds.Accounts)
	copy(out.Categories, ds.Categories)
	copy(out.Owners, ds.Owners)
	return out
}

func (ds *Dataset) Record(id string) (Record, bool) {
	for _, r := range ds.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (ds *Dataset) Account(id string) (Account, bool) {
	for _, a := range ds.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

func (ds *Dataset) Category(id string) (Category, bool) {
	for _, c := range ds.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (ds *Dataset) Owner(id string) (Owner, bool) {
	for _, o := range ds.Owners {
		if o.ID == id {
			return o, true
		}
	}
	return Owner{}, false
}

// RecordsForAccount counts the records attached to an account.
func (ds *Dataset) RecordsForAccount(accountID string) int {
	n := 0
	for _, r := range ds.Records {
		if r.AccountID == accountID {
			n++
		}
	}
	return n
}

// AccountsForCategory counts the accounts classified under a category.
func (ds *Dataset) AccountsForCategory(categoryID string) int {
	n := 0
	for _, a := range ds.Accounts {
		if a.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// AccountsForOwner counts the accounts belonging to an owner.
func (ds *Dataset) AccountsForOwner(ownerID string) int {
	n := 0
	for _, a := range ds.Accounts {
		if a.OwnerID == ownerID {
			n++
		}
	}
	return n
}

// Label resolves the display name of a grouping key. Dangling ids resolve to
// Unknown.
func (ds *Dataset) Label(key GroupKey) string {
	var name string
	var ok bool
	switch key.Kind {
	case GroupCategory:
		var c Category
		c, ok = ds.Category(key.ID)
		name = c.Name
	case GroupAccount:
		var a Account
		a, ok = ds.Account(key.ID)
		name = a.Name
	case GroupOwner:
		var o Owner
		o, ok = ds.Owner(key.ID)
		name = o.Name
	}
	if !ok || name == "" {
		return Unknown
	}
	return name
}

// GroupKind is the dimension a breakdown is grouped by.
type GroupKind string

const (
	GroupCategory GroupKind = "category"
	GroupAccount  GroupKind = "account"
	GroupOwner    GroupKind = "owner"
)

// GroupKey identifies a breakdown bucket by entity id rather than by display
// name, so two entities sharing a name stay apart.
type GroupKey struct {
	Kind GroupKind `json:"kind"`
	ID   string    `json:"id"`
}

func (k GroupKey) String() string { return string(k.Kind) + ":" + k.ID }
