package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/accountresolver/internal/config"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holder struct {
	sub *subscriptiondomain.Subscription
}

func (h *holder) SubscriptionRef() *subscriptiondomain.Subscription {
	if h == nil {
		return nil
	}
	return h.sub
}

func withTier(t subscriptiondomain.Tier) *holder {
	return &holder{sub: &subscriptiondomain.Subscription{Tier: &t}}
}

type mapStore map[string]*subscriptiondomain.Subscription

func (m mapStore) Find(_ context.Context, id string) (*subscriptiondomain.Subscription, error) {
	return m[id], nil
}

func failingStore(err error) subscriptiondomain.RecordStore {
	return subscriptiondomain.RecordStoreFunc(func(context.Context, string) (*subscriptiondomain.Subscription, error) {
		return nil, err
	})
}

func strPtr(s string) *string { return &s }

func TestStrictFindSubscriptionType(t *testing.T) {
	svc := NewStrictService(mapStore{}, nil)
	ctx := context.Background()

	tier, err := svc.FindSubscriptionType(ctx, withTier(subscriptiondomain.TierGold))
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.TierGold, tier)

	for name, h := range map[string]subscriptiondomain.Holder{
		"nil holder":        nil,
		"no subscription":   &holder{},
		"subscription bare": &holder{sub: &subscriptiondomain.Subscription{}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.FindSubscriptionType(ctx, h)
			assert.ErrorIs(t, err, subscriptiondomain.ErrTierNotFound)
			assert.True(t, subscriptiondomain.IsNotFound(err))
		})
	}
}

func TestStrictFindSubscriptionData(t *testing.T) {
	stored := &subscriptiondomain.Subscription{ID: strPtr("sub-1")}
	svc := NewStrictService(mapStore{"sub-1": stored}, nil)
	ctx := context.Background()

	sub, err := svc.FindSubscriptionData(ctx, "sub-1")
	require.NoError(t, err)
	assert.Same(t, stored, sub)

	sub, err = svc.FindSubscriptionData(ctx, "missing")
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, subscriptiondomain.ErrSubscriptionNotFound)
	assert.ErrorIs(t, err, subscriptiondomain.ErrNotFound)

	_, err = svc.FindSubscriptionData(ctx, "  ")
	assert.ErrorIs(t, err, subscriptiondomain.ErrInvalidSubscriptionID)
	assert.False(t, subscriptiondomain.IsNotFound(err))
}

func TestFindSubscriptionDataForwardsIDUnchanged(t *testing.T) {
	stored := &subscriptiondomain.Subscription{ID: strPtr("sub-1")}
	store := mapStore{"sub-1": stored}
	ctx := context.Background()

	_, err := NewStrictService(store, nil).FindSubscriptionData(ctx, "sub-1 ")
	assert.ErrorIs(t, err, subscriptiondomain.ErrSubscriptionNotFound)

	sub, err := NewLenientService(store, nil, nil).FindSubscriptionData(ctx, " sub-1")
	require.NoError(t, err)
	assert.NotSame(t, stored, sub)
	assert.Nil(t, sub.ID)
}

func TestLenientFindSubscriptionType(t *testing.T) {
	ctx := context.Background()

	svc := NewLenientService(mapStore{}, nil, nil)
	tier, err := svc.FindSubscriptionType(ctx, withTier(subscriptiondomain.TierPlatinum))
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.TierPlatinum, tier)

	tier, err = svc.FindSubscriptionType(ctx, &holder{})
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.TierFree, tier)

	res := config.DefaultResolution()
	res.DefaultTier = subscriptiondomain.TierSilver
	svc = NewLenientService(mapStore{}, config.NewStaticResolutionHolder(res), nil)
	tier, err = svc.FindSubscriptionType(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.TierSilver, tier)
}

func TestLenientFindSubscriptionData(t *testing.T) {
	stored := &subscriptiondomain.Subscription{ID: strPtr("sub-1")}
	svc := NewLenientService(mapStore{"sub-1": stored}, nil, nil)
	ctx := context.Background()

	sub, err := svc.FindSubscriptionData(ctx, "sub-1")
	require.NoError(t, err)
	assert.Same(t, stored, sub)

	sub, err = svc.FindSubscriptionData(ctx, "missing")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, subscriptiondomain.Subscription{}, *sub)

	_, err = svc.FindSubscriptionData(ctx, "")
	assert.ErrorIs(t, err, subscriptiondomain.ErrInvalidSubscriptionID)
}

func TestStoreFailurePropagatesInBothModes(t *testing.T) {
	boom := errors.New("db down")
	services := map[string]subscriptiondomain.Service{
		"strict":  NewStrictService(failingStore(boom), nil),
		"lenient": NewLenientService(failingStore(boom), nil, nil),
	}
	for name, svc := range services {
		t.Run(name, func(t *testing.T) {
			sub, err := svc.FindSubscriptionData(context.Background(), "sub-1")
			assert.Nil(t, sub)
			assert.Same(t, boom, err)
			assert.False(t, subscriptiondomain.IsNotFound(err))
		})
	}
}

func TestNewServiceSelectsByMode(t *testing.T) {
	strict := config.DefaultResolution()
	strict.Mode = subscriptiondomain.ModeStrict

	svc := NewService(ServiceParam{
		Store:      mapStore{},
		Resolution: config.NewStaticResolutionHolder(strict),
	})
	assert.IsType(t, &StrictService{}, svc)

	svc = NewService(ServiceParam{
		Store:      mapStore{},
		Resolution: config.NewStaticResolutionHolder(config.DefaultResolution()),
	})
	assert.IsType(t, &LenientService{}, svc)
}

func TestStrictAndLenientAgreeWhenTierPresent(t *testing.T) {
	ctx := context.Background()
	strict := NewStrictService(mapStore{}, nil)
	lenient := NewLenientService(mapStore{}, nil, nil)

	for _, tier := range subscriptiondomain.Tiers() {
		h := withTier(tier)
		a, err := strict.FindSubscriptionType(ctx, h)
		require.NoError(t, err)
		b, err := lenient.FindSubscriptionType(ctx, h)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.False(t, policy.IsTierAbsent(h))
	}
}
