package repository

import (
	"context"

	"github.com/smallbiznis/accountresolver/internal/observability/metrics"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// TieredStore reads through a fast cache tier before the authoritative tier.
// The cache tier always wins when it has a value; nothing is written back to it.
type TieredStore struct {
	cache         subscriptiondomain.RecordStore
	authoritative subscriptiondomain.RecordStore
	log           *zap.Logger
	metrics       *metrics.Metrics
}

func NewTieredStore(cache, authoritative subscriptiondomain.RecordStore, log *zap.Logger, m *metrics.Metrics) *TieredStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TieredStore{
		cache:         cache,
		authoritative: authoritative,
		log:           log.Named("subscription.tiered"),
		metrics:       m,
	}
}

// Find returns the cached record, else the authoritative one, else (nil, nil).
// Store failures are returned unchanged and never downgraded to a miss.
func (s *TieredStore) Find(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	ctx, span := otel.Tracer("accountresolver/subscription").Start(ctx, "subscription.tiered.find")
	defer span.End()

	outcome, sub, err := s.find(ctx, id)
	span.SetAttributes(attribute.String("lookup.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
	}
	s.metrics.RecordLookup(ctx, outcome)
	return sub, err
}

func (s *TieredStore) find(ctx context.Context, id string) (string, *subscriptiondomain.Subscription, error) {
	sub, err := s.cache.Find(ctx, id)
	if err != nil {
		s.log.Warn("cache tier lookup failed", zap.Error(err))
		return metrics.LookupError, nil, err
	}
	if sub != nil {
		return metrics.LookupCacheHit, sub, nil
	}

	sub, err = s.authoritative.Find(ctx, id)
	if err != nil {
		s.log.Warn("authoritative tier lookup failed", zap.Error(err))
		return metrics.LookupError, nil, err
	}
	if sub != nil {
		return metrics.LookupStoreHit, sub, nil
	}
	return metrics.LookupMiss, nil, nil
}

var _ subscriptiondomain.RecordStore = (*TieredStore)(nil)
