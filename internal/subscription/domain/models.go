// Package domain contains the subscription record, tiers and the store contracts
// used on the subscription read path.
package domain

import (
	"sort"
	"strings"
	"time"
)

// Tier is the subscription level attached to an account.
type Tier string

const (
	TierFree     Tier = "FREE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

var knownTiers = map[Tier]struct{}{
	TierFree:     {},
	TierSilver:   {},
	TierGold:     {},
	TierPlatinum: {},
}

// Valid reports whether t is one of the closed set of tiers.
func (t Tier) Valid() bool {
	_, ok := knownTiers[t]
	return ok
}

func (t Tier) String() string { return string(t) }

// ParseTier normalizes raw and returns the matching tier.
func ParseTier(raw string) (Tier, error) {
	tier := Tier(strings.ToUpper(strings.TrimSpace(raw)))
	if !tier.Valid() {
		return "", ErrInvalidTier
	}
	return tier, nil
}

// Tiers returns every known tier in lexical order.
func Tiers() []Tier {
	out := make([]Tier, 0, len(knownTiers))
	for tier := range knownTiers {
		out = append(out, tier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Subscription is a detached subscription record. Every field is optional: a
// freshly built record may only carry a tier until it is persisted elsewhere.
type Subscription struct {
	ID        *string    `json:"id,omitempty"`
	Tier      *Tier      `json:"tier,omitempty"`
	Code      *string    `json:"code,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Holder is anything carrying an optional subscription reference.
// Implementations must tolerate a nil receiver.
type Holder interface {
	SubscriptionRef() *Subscription
}
