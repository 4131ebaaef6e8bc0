package models

// Category is the DB representation of a ledger category.
type Category struct {
	CategoryID string    `db:"category_id"`
	AccountID  string    `db:"account_id"`
	Name       string    `db:"name"`
	Direction  Direction `db:"direction"`
	Color      string    `db:"color"`
	IsDefault  bool      `db:"is_default"`
	AuditFields
}
