package credential

import "time"

// Credential holds the upstream customer ids of one user. Each id is written once,
// on successful onboarding with that provider.
type Credential struct {
	UserID           string  `gorm:"primaryKey;size:64"`
	BridgeCustomerID *string `gorm:"column:bridge_customer_id;size:64"`
	MantecaUserID    *string `gorm:"column:manteca_user_id;size:64"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Credential model.
func (Credential) TableName() string {
	return "credentials"
}
