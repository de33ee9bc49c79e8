package domain

import (
	"context"
	"errors"
)

// Repository loads personas. A missing persona is (nil, nil).
type Repository interface {
	FindByID(ctx context.Context, id string) (*Persona, error)
}

type Service interface {
	GetPersonaData(ctx context.Context, id string) (*Persona, error)
}

var ErrInvalidPersonaID = errors.New("invalid_persona_id")
