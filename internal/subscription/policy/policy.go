// Package policy resolves an account's subscription tier. Every function is pure
// and takes the account explicitly; absence at any step of
// account -> subscription -> tier resolves to absent.
package policy

import (
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/pkg/optional"
)

// ExtractTier returns the tier reachable from holder, if any.
func ExtractTier(holder subscriptiondomain.Holder) (subscriptiondomain.Tier, bool) {
	return optional.Get(tierOf(holder))
}

// ExtractTierOr returns the tier reachable from holder or fallback when absent.
func ExtractTierOr(holder subscriptiondomain.Holder, fallback subscriptiondomain.Tier) subscriptiondomain.Tier {
	return optional.OrElse(tierOf(holder), fallback)
}

// ResolveOrFail returns the tier reachable from holder or ErrTierNotFound.
func ResolveOrFail(holder subscriptiondomain.Holder) (subscriptiondomain.Tier, error) {
	tier, ok := ExtractTier(holder)
	if !ok {
		return "", subscriptiondomain.ErrTierNotFound
	}
	return tier, nil
}

// IsTierAbsent is the negation of ExtractTier's presence.
func IsTierAbsent(holder subscriptiondomain.Holder) bool {
	_, ok := ExtractTier(holder)
	return !ok
}

func tierOf(holder subscriptiondomain.Holder) *subscriptiondomain.Tier {
	return optional.Map(subscriptionOf(holder), func(s *subscriptiondomain.Subscription) *subscriptiondomain.Tier {
		return s.Tier
	})
}

func subscriptionOf(holder subscriptiondomain.Holder) *subscriptiondomain.Subscription {
	if holder == nil {
		return nil
	}
	return holder.SubscriptionRef()
}
