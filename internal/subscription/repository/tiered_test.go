package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/smallbiznis/accountresolver/internal/cache"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) Find(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*subscriptiondomain.Subscription)
	return sub, args.Error(1)
}

func record(id string, tier subscriptiondomain.Tier) *subscriptiondomain.Subscription {
	return &subscriptiondomain.Subscription{ID: &id, Tier: &tier}
}

func TestTieredStoreCacheHitSkipsAuthoritative(t *testing.T) {
	cached := record("sub-1", subscriptiondomain.TierGold)
	front := new(mockRecordStore)
	authoritative := new(mockRecordStore)
	front.On("Find", mock.Anything, "sub-1").Return(cached, nil).Once()

	got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Same(t, cached, got)
	front.AssertNumberOfCalls(t, "Find", 1)
	authoritative.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestTieredStoreCacheWinsOverStaleAuthoritative(t *testing.T) {
	front := new(mockRecordStore)
	authoritative := new(mockRecordStore)
	front.On("Find", mock.Anything, "sub-1").Return(record("sub-1", subscriptiondomain.TierSilver), nil)
	authoritative.On("Find", mock.Anything, "sub-1").Return(record("sub-1", subscriptiondomain.TierPlatinum), nil)

	got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, subscriptiondomain.TierSilver, *got.Tier)
	authoritative.AssertNumberOfCalls(t, "Find", 0)
}

func TestTieredStoreFallsBackOnCacheMiss(t *testing.T) {
	stored := record("sub-2", subscriptiondomain.TierFree)
	front := new(mockRecordStore)
	authoritative := new(mockRecordStore)
	front.On("Find", mock.Anything, "sub-2").Return(nil, nil).Once()
	authoritative.On("Find", mock.Anything, "sub-2").Return(stored, nil).Once()

	got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-2")
	require.NoError(t, err)
	assert.Same(t, stored, got)
	front.AssertExpectations(t)
	authoritative.AssertExpectations(t)
}

func TestTieredStoreBothMissIsAbsentNotFailure(t *testing.T) {
	front := new(mockRecordStore)
	authoritative := new(mockRecordStore)
	front.On("Find", mock.Anything, "sub-3").Return(nil, nil)
	authoritative.On("Find", mock.Anything, "sub-3").Return(nil, nil)

	got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-3")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTieredStorePropagatesFailuresUnchanged(t *testing.T) {
	errCache := errors.New("redis: connection refused")
	errStore := errors.New("database is closed")

	t.Run("cache failure stops the lookup", func(t *testing.T) {
		front := new(mockRecordStore)
		authoritative := new(mockRecordStore)
		front.On("Find", mock.Anything, "sub-4").Return(nil, errCache)

		got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-4")
		assert.Same(t, errCache, err)
		assert.Nil(t, got)
		authoritative.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("authoritative failure after a miss", func(t *testing.T) {
		front := new(mockRecordStore)
		authoritative := new(mockRecordStore)
		front.On("Find", mock.Anything, "sub-4").Return(nil, nil)
		authoritative.On("Find", mock.Anything, "sub-4").Return(nil, errStore)

		got, err := NewTieredStore(front, authoritative, nil, nil).Find(context.Background(), "sub-4")
		assert.Same(t, errStore, err)
		assert.Nil(t, got)
	})
}

func TestTieredStoreDoesNotFillCache(t *testing.T) {
	front := new(mockRecordStore)
	authoritative := new(mockRecordStore)
	front.On("Find", mock.Anything, "sub-5").Return(nil, nil).Twice()
	authoritative.On("Find", mock.Anything, "sub-5").Return(record("sub-5", subscriptiondomain.TierGold), nil).Twice()

	store := NewTieredStore(front, authoritative, nil, nil)
	for range 2 {
		_, err := store.Find(context.Background(), "sub-5")
		require.NoError(t, err)
	}
	authoritative.AssertNumberOfCalls(t, "Find", 2)
}

func TestTieredStoreMatchesIDsExactly(t *testing.T) {
	ctx := context.Background()
	memory := cache.NewMemoryStore()
	require.NoError(t, memory.Put(ctx, "sub-abc", record("sub-abc", subscriptiondomain.TierGold)))

	authoritative := new(mockRecordStore)
	authoritative.On("Find", mock.Anything, "SUB-ABC").Return(nil, nil).Once()

	store := NewTieredStore(memory, authoritative, nil, nil)
	got, err := store.Find(ctx, "SUB-ABC")
	require.NoError(t, err)
	assert.Nil(t, got)
	authoritative.AssertExpectations(t)

	got, err = store.Find(ctx, "sub-abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sub-abc", *got.ID)
	authoritative.AssertNumberOfCalls(t, "Find", 1)
}
