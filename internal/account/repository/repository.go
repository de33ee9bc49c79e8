package repository

import (
	"context"
	"fmt"
	"time"

	accountdomain "github.com/smallbiznis/accountresolver/internal/account/domain"
	personarepo "github.com/smallbiznis/accountresolver/internal/persona/repository"
	subscriptionrepo "github.com/smallbiznis/accountresolver/internal/subscription/repository"
	"gorm.io/gorm"
)

// AccountRow is the persisted shape of an account.
type AccountRow struct {
	ID             string     `gorm:"primaryKey;type:text"`
	Username       string     `gorm:"type:text;not null;uniqueIndex"`
	ProfileID      *string    `gorm:"type:text"`
	SubscriptionID *string    `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      *time.Time `gorm:""`
}

func (AccountRow) TableName() string { return "accounts" }

// accountJoinRow is one account with its optional persona and subscription columns.
type accountJoinRow struct {
	ID             string
	Username       string
	ProfileID      *string
	SubscriptionID *string
	CreatedAt      time.Time
	UpdatedAt      *time.Time

	PersonaID          *string
	PersonaFirstName   *string
	PersonaLastName    *string
	PersonaCountryCode *string
	PersonaBirthDate   *time.Time

	SubID        *string
	SubTier      *string
	SubCode      *string
	SubCreatedAt *time.Time
	SubUpdatedAt *time.Time
}

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) accountdomain.Repository {
	return &repo{db: db}
}

func (r *repo) FindByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	var row accountJoinRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT a.id, a.username, a.profile_id, a.subscription_id, a.created_at, a.updated_at,
		        p.id AS persona_id, p.first_name AS persona_first_name, p.last_name AS persona_last_name,
		        p.country_code AS persona_country_code, p.birth_date AS persona_birth_date,
		        s.id AS sub_id, s.tier AS sub_tier, s.code AS sub_code,
		        s.created_at AS sub_created_at, s.updated_at AS sub_updated_at
		 FROM accounts a
		 LEFT JOIN personas p ON p.id = a.profile_id
		 LEFT JOIN subscriptions s ON s.id = a.subscription_id
		 WHERE a.id = ?`,
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if row.ID == "" {
		return nil, nil
	}
	return toDomain(row)
}

func toDomain(row accountJoinRow) (*accountdomain.Account, error) {
	acc := &accountdomain.Account{
		ID:             row.ID,
		Username:       row.Username,
		ProfileID:      row.ProfileID,
		SubscriptionID: row.SubscriptionID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.PersonaID != nil {
		acc.Profile = personarepo.ToDomain(personarepo.PersonaRow{
			ID:          *row.PersonaID,
			FirstName:   row.PersonaFirstName,
			LastName:    row.PersonaLastName,
			CountryCode: row.PersonaCountryCode,
			BirthDate:   row.PersonaBirthDate,
		})
	}

	if row.SubID != nil {
		sub, err := subscriptionrepo.ToDomain(subscriptionrepo.SubscriptionRow{
			ID:        *row.SubID,
			Tier:      row.SubTier,
			Code:      row.SubCode,
			CreatedAt: row.SubCreatedAt,
			UpdatedAt: row.SubUpdatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", row.ID, err)
		}
		acc.Subscription = sub
	}
	return acc, nil
}

// FromDomain converts an account into its row; references are kept by id only.
func FromDomain(acc accountdomain.Account) (AccountRow, error) {
	if acc.ID == "" {
		return AccountRow{}, accountdomain.ErrInvalidAccountID
	}
	return AccountRow{
		ID:             acc.ID,
		Username:       acc.Username,
		ProfileID:      acc.ProfileID,
		SubscriptionID: acc.SubscriptionID,
		CreatedAt:      acc.CreatedAt,
		UpdatedAt:      acc.UpdatedAt,
	}, nil
}
