package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/onramp/pkg/provider/onramp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownProvider is returned for a provider without a credential column.
var ErrUnknownProvider = errors.New("credential: unknown provider")

var providerColumns = map[string]string{
	onramp.ProviderBridge:  "bridge_customer_id",
	onramp.ProviderManteca: "manteca_user_id",
}

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed onramp.CustomerStore.
func New(db *gorm.DB) onramp.CustomerStore {
	return &repository{db: db}
}

// Migrate creates or updates the credentials table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Credential{})
}

func (r *repository) GetCustomerID(
	ctx context.Context,
	userID, provider string,
) (string, error) {
	if _, ok := providerColumns[provider]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	var c Credential
	if err := r.db.WithContext(
		ctx,
	).Where("user_id = ?", userID).Take(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	var id *string
	switch provider {
	case onramp.ProviderBridge:
		id = c.BridgeCustomerID
	case onramp.ProviderManteca:
		id = c.MantecaUserID
	}
	if id == nil {
		return "", nil
	}
	return *id, nil
}

// SaveCustomerID stores customerID for provider. An id that is already set is kept.
func (r *repository) SaveCustomerID(
	ctx context.Context,
	userID, provider, customerID string,
) error {
	column, ok := providerColumns[provider]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	row := &Credential{UserID: userID}
	switch provider {
	case onramp.ProviderBridge:
		row.BridgeCustomerID = &customerID
	case onramp.ProviderManteca:
		row.MantecaUserID = &customerID
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			column: gorm.Expr(
				fmt.Sprintf("COALESCE(%q.%q, EXCLUDED.%q)", Credential{}.TableName(), column, column),
			),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(row).Error
}

var _ onramp.CustomerStore = (*repository)(nil)
