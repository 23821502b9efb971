package models

// Default category names, as offered to a new household.
const (
	CategoryStock      = "Stock Investment"
	CategoryCrypto     = "Cryptocurrency"
	CategoryCash       = "Cash/Savings"
	CategoryRealEstate = "Real Estate"
	CategoryInsurance  = "Insurance"
	CategoryLiability  = "Liability (Loan/Debt)"
	CategoryOther      = "Other"
)

var defaultCategories = []Category{
	{Name: CategoryStock, Type: Asset, Color: "#3b82f6"},
	{Name: CategoryCrypto, Type: Asset, Color: "#8b5cf6"},
	{Name: CategoryCash, Type: Asset, Color: "#10b981"},
	{Name: CategoryRealEstate, Type: Asset, Color: "#f59e0b"},
	{Name: CategoryInsurance, Type: Asset, Color: "#06b6d4"},
	{Name: CategoryLiability, Type: Liability, Color: "#ef4444"},
	{Name: CategoryOther, Type: Asset, Color: "#64748b"},
}

// DefaultCategories returns the default category set with ids drawn from newID.
func DefaultCategories(newID func() string) []Category {
	out := make([]Category, len(defaultCategories))
	for i, c := range defaultCategories {
		c.ID = newID()
		out[i] = c
	}
	return out
}

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)
