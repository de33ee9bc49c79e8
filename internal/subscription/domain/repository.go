package domain

import "context"

// RecordStore looks subscription records up by identifier.
// A miss is reported as (nil, nil); a non-nil error is a storage failure.
type RecordStore interface {
	Find(ctx context.Context, id string) (*Subscription, error)
}

// RecordStoreFunc adapts a function to RecordStore.
type RecordStoreFunc func(ctx context.Context, id string) (*Subscription, error)

func (f RecordStoreFunc) Find(ctx context.Context, id string) (*Subscription, error) {
	return f(ctx, id)
}
