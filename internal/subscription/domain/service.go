package domain

import (
	"context"
	"errors"
)

// Mode selects how the subscription service treats absence.
type Mode string

const (
	// ModeLenient substitutes defaults for absent values.
	ModeLenient Mode = "lenient"
	// ModeStrict reports absent values as ErrNotFound.
	ModeStrict Mode = "strict"
)

// ParseMode returns the mode for raw, defaulting to lenient when raw is blank.
func ParseMode(raw string) (Mode, error) {
	switch Mode(normalize(raw)) {
	case "", ModeLenient:
		return ModeLenient, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", ErrInvalidMode
	}
}

// Service resolves subscription tiers and records for callers.
type Service interface {
	// FindSubscriptionType resolves the tier of the holder's subscription.
	FindSubscriptionType(ctx context.Context, holder Holder) (Tier, error)
	// FindSubscriptionData loads a subscription record through the tiered store.
	FindSubscriptionData(ctx context.Context, id string) (*Subscription, error)
}

var (
	// ErrNotFound is the strict-resolution signal that a required value is absent.
	ErrNotFound              = errors.New("not_found")
	ErrInvalidSubscriptionID = errors.New("invalid_subscription_id")
	ErrInvalidTier           = errors.New("invalid_tier")
	ErrInvalidMode           = errors.New("invalid_resolution_mode")
)

// Specific not-found signals; errors.Is(err, ErrNotFound) holds for both.
var (
	ErrSubscriptionNotFound error = &notFoundError{code: "subscription_not_found"}
	ErrTierNotFound         error = &notFoundError{code: "subscription_tier_not_found"}
)
