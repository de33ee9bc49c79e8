package repository

import (
	"context"
	"fmt"
	"time"

	personadomain "github.com/smallbiznis/accountresolver/internal/persona/domain"
	"gorm.io/gorm"
)

// PersonaRow is the persisted shape of a persona.
type PersonaRow struct {
	ID          string     `gorm:"primaryKey;type:text"`
	FirstName   *string    `gorm:"type:text"`
	LastName    *string    `gorm:"type:text"`
	CountryCode *string    `gorm:"type:text"`
	BirthDate   *time.Time `gorm:""`
}

func (PersonaRow) TableName() string { return "personas" }

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) personadomain.Repository {
	return &repo{db: db}
}

func (r *repo) FindByID(ctx context.Context, id string) (*personadomain.Persona, error) {
	var row PersonaRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, first_name, last_name, country_code, birth_date
		 FROM personas WHERE id = ?`,
		id,
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("find persona: %w", err)
	}
	if row.ID == "" {
		return nil, nil
	}
	return ToDomain(row), nil
}

func ToDomain(row PersonaRow) *personadomain.Persona {
	return &personadomain.Persona{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		CountryCode: row.CountryCode,
		BirthDate:   row.BirthDate,
	}
}

func FromDomain(p personadomain.Persona) PersonaRow {
	return PersonaRow{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		CountryCode: p.CountryCode,
		BirthDate:   p.BirthDate,
	}
}
