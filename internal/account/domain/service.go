package domain

import (
	"context"
	"errors"
)

// Repository loads accounts with their persona and subscription references.
// A missing account is (nil, nil); a non-nil error is a storage failure.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
}

type Service interface {
	// GetAccount loads an account and, for privileged tiers, attaches a fresh
	// subscription record carrying the same tier.
	GetAccount(ctx context.Context, id string) (*Account, error)
}

var (
	ErrInvalidAccountID = errors.New("invalid_account_id")
	ErrTierRequired     = errors.New("subscription_tier_required")
)
