package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/accountresolver/internal/config"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/policy"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Store      subscriptiondomain.RecordStore
	Resolution *config.ResolutionHolder
}

// NewService picks the strict or lenient variant from the resolution mode
// in effect at startup.
func NewService(p ServiceParam) subscriptiondomain.Service {
	if p.Resolution.Get().Mode == subscriptiondomain.ModeStrict {
		return NewStrictService(p.Store, p.Log)
	}
	return NewLenientService(p.Store, p.Resolution, p.Log)
}

// StrictService reports every absence as a not-found error.
type StrictService struct {
	store subscriptiondomain.RecordStore
	log   *zap.Logger
}

func NewStrictService(store subscriptiondomain.RecordStore, log *zap.Logger) *StrictService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StrictService{store: store, log: log.Named("subscription.service.strict")}
}

func (s *StrictService) FindSubscriptionType(_ context.Context, holder subscriptiondomain.Holder) (subscriptiondomain.Tier, error) {
	return policy.ResolveOrFail(holder)
}

func (s *StrictService) FindSubscriptionData(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	sub, err := find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		s.log.Debug("subscription not found")
		return nil, subscriptiondomain.ErrSubscriptionNotFound
	}
	return sub, nil
}

// LenientService substitutes defaults for absent values.
type LenientService struct {
	store      subscriptiondomain.RecordStore
	resolution *config.ResolutionHolder
	log        *zap.Logger
}

func NewLenientService(store subscriptiondomain.RecordStore, resolution *config.ResolutionHolder, log *zap.Logger) *LenientService {
	if log == nil {
		log = zap.NewNop()
	}
	if resolution == nil {
		resolution = config.NewStaticResolutionHolder(config.DefaultResolution())
	}
	return &LenientService{store: store, resolution: resolution, log: log.Named("subscription.service.lenient")}
}

// FindSubscriptionType returns the holder's tier or the configured default tier.
func (s *LenientService) FindSubscriptionType(_ context.Context, holder subscriptiondomain.Holder) (subscriptiondomain.Tier, error) {
	return policy.ExtractTierOr(holder, s.resolution.Get().DefaultTier), nil
}

// FindSubscriptionData returns an empty record when nothing is stored under id.
func (s *LenientService) FindSubscriptionData(ctx context.Context, id string) (*subscriptiondomain.Subscription, error) {
	sub, err := find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &subscriptiondomain.Subscription{}, nil
	}
	return sub, nil
}

func find(ctx context.Context, store subscriptiondomain.RecordStore, id string) (*subscriptiondomain.Subscription, error) {
	if strings.TrimSpace(id) == "" {
		return nil, subscriptiondomain.ErrInvalidSubscriptionID
	}
	return store.Find(ctx, id)
}

var (
	_ subscriptiondomain.Service = (*StrictService)(nil)
	_ subscriptiondomain.Service = (*LenientService)(nil)
)
