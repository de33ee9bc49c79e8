package policy

import (
	"sort"

	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
)

// TierSet is an immutable set of tiers, used for the privileged tiers that
// receive a freshly attached subscription on enrichment.
type TierSet struct {
	members map[subscriptiondomain.Tier]struct{}
}

// NewTierSet builds a set from tiers. Duplicates are ignored.
func NewTierSet(tiers ...subscriptiondomain.Tier) TierSet {
	members := make(map[subscriptiondomain.Tier]struct{}, len(tiers))
	for _, tier := range tiers {
		members[tier] = struct{}{}
	}
	return TierSet{members: members}
}

// DefaultPrivileged is {GOLD, SILVER}.
func DefaultPrivileged() TierSet {
	return NewTierSet(subscriptiondomain.TierGold, subscriptiondomain.TierSilver)
}

// ParseTierSet parses tier names. An unknown name fails the whole set.
func ParseTierSet(names []string) (TierSet, error) {
	tiers := make([]subscriptiondomain.Tier, 0, len(names))
	for _, name := range names {
		tier, err := subscriptiondomain.ParseTier(name)
		if err != nil {
			return TierSet{}, err
		}
		tiers = append(tiers, tier)
	}
	return NewTierSet(tiers...), nil
}

func (s TierSet) Contains(tier subscriptiondomain.Tier) bool {
	_, ok := s.members[tier]
	return ok
}

func (s TierSet) Len() int { return len(s.members) }

// Tiers returns the members in lexical order.
func (s TierSet) Tiers() []subscriptiondomain.Tier {
	out := make([]subscriptiondomain.Tier, 0, len(s.members))
	for tier := range s.members {
		out = append(out, tier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
