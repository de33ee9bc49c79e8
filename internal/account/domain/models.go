// Package domain holds the account aggregate and its lookup contracts.
package domain

import (
	"time"

	personadomain "github.com/smallbiznis/accountresolver/internal/persona/domain"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
)

// Account is a user account with optional persona and subscription references.
type Account struct {
	ID             string                           `json:"id"`
	Username       string                           `json:"username"`
	ProfileID      *string                          `json:"profile_id,omitempty"`
	Profile        *personadomain.Persona           `json:"profile,omitempty"`
	SubscriptionID *string                          `json:"subscription_id,omitempty"`
	Subscription   *subscriptiondomain.Subscription `json:"subscription,omitempty"`
	CreatedAt      time.Time                        `json:"created_at"`
	UpdatedAt      *time.Time                       `json:"updated_at,omitempty"`
}

// SubscriptionRef returns the attached subscription; nil for a nil account.
func (a *Account) SubscriptionRef() *subscriptiondomain.Subscription {
	if a == nil {
		return nil
	}
	return a.Subscription
}

// AttachSubscription replaces the subscription reference. The record must
// carry a tier. SubscriptionID follows the record's id and is cleared for a
// record that was never persisted.
func (a *Account) AttachSubscription(sub *subscriptiondomain.Subscription) error {
	if sub == nil || sub.Tier == nil {
		return ErrTierRequired
	}
	a.Subscription = sub
	a.SubscriptionID = nil
	if sub.ID != nil {
		id := *sub.ID
		a.SubscriptionID = &id
	}
	return nil
}

var _ subscriptiondomain.Holder = (*Account)(nil)
