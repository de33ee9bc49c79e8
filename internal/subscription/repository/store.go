package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"gorm.io/gorm"
)

// SubscriptionRow is the persisted shape of a subscription record.
type SubscriptionRow struct {
	ID        string     `gorm:"primaryKey;type:text"`
	Tier      *string    `gorm:"type:text"`
	Code      *string    `gorm:"type:text"`
	CreatedAt *time.Time `gorm:""`
	UpdatedAt *time.Time `gorm:""`
}

// TableName sets the database table name.
func (SubscriptionRow) TableName() string { return "subscriptions" }

// Store is the authoritative subscription RecordStore backed by the database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Find loads a subscription by id. A missing row is (nil, nil).
func (s *Store) Find(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	var row SubscriptionRow
	err := s.db.WithContext(ctx).Raw(
		`SELECT id, tier, code, created_at, updated_at
		 FROM subscriptions WHERE id = ?`,
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	if row.ID == "" {
		return nil, nil
	}
	return ToDomain(row)
}

// ToDomain converts a row into a subscription record. An unknown tier value is
// reported as corrupt data rather than coerced.
func ToDomain(row SubscriptionRow) (*subscriptiondomain.Subscription, error) {
	sub := &subscriptiondomain.Subscription{
		ID:        &row.ID,
		Code:      row.Code,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Tier != nil && strings.TrimSpace(*row.Tier) != "" {
		tier, err := subscriptiondomain.ParseTier(*row.Tier)
		if err != nil {
			return nil, fmt.Errorf("subscription %s: %w", row.ID, err)
		}
		sub.Tier = &tier
	}
	return sub, nil
}

// FromDomain converts a record into its row. The record must carry an id.
func FromDomain(sub subscriptiondomain.Subscription) (SubscriptionRow, error) {
	if sub.ID == nil || strings.TrimSpace(*sub.ID) == "" {
		return SubscriptionRow{}, subscriptiondomain.ErrInvalidSubscriptionID
	}
	row := SubscriptionRow{
		ID:        *sub.ID,
		Code:      sub.Code,
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
	if sub.Tier != nil {
		tier := sub.Tier.String()
		row.Tier = &tier
	}
	return row, nil
}

var _ subscriptiondomain.RecordStore = (*Store)(nil)
