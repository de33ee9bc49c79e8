package domain

import "time"

// Persona is the profile attached to an account.
type Persona struct {
	ID          string     `json:"id"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	CountryCode *string    `json:"country_code,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
}
