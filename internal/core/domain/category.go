package domain

// ServiceRevenueCategoryName is the stable name of the category that
// service-derived ledger entries are filed under. Provisioning looks the
// category up by (account, name, direction) before creating it, so the name
// doubles as its identity.
const ServiceRevenueCategoryName = "Service revenue"

// ServiceRevenueCategoryColor is the color assigned on first provisioning.
const ServiceRevenueCategoryColor = "#2E7D32"

// Category classifies ledger entries within an account.
type Category struct {
	CategoryID string    `json:"categoryID"` // Primary Key (UUID)
	AccountID  string    `json:"accountID"`  // Owning account (Not Null)
	Name       string    `json:"name"`
	Direction  Direction `json:"direction"`
	Color      string    `json:"color"`     // Hex color for the UI
	IsDefault  bool      `json:"isDefault"` // True for auto-provisioned defaults
	AuditFields
}
