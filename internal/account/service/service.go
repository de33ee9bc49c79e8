package service

import (
	"context"
	"strings"

	accountdomain "github.com/smallbiznis/accountresolver/internal/account/domain"
	"github.com/smallbiznis/accountresolver/internal/clock"
	"github.com/smallbiznis/accountresolver/internal/config"
	obscontext "github.com/smallbiznis/accountresolver/internal/observability/context"
	"github.com/smallbiznis/accountresolver/internal/observability/logger"
	"github.com/smallbiznis/accountresolver/internal/observability/metrics"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/policy"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log        *zap.Logger
	repo       accountdomain.Repository
	clock      clock.Clock
	resolution *config.ResolutionHolder
	metrics    *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Repo       accountdomain.Repository
	Clock      clock.Clock
	Resolution *config.ResolutionHolder
	Metrics    *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) accountdomain.Service {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := p.Clock
	if c == nil {
		c = clock.NewSystemClock()
	}
	resolution := p.Resolution
	if resolution == nil {
		resolution = config.NewStaticResolutionHolder(config.DefaultResolution())
	}
	return &Service{
		log:        log.Named("account.service"),
		repo:       p.Repo,
		clock:      c,
		resolution: resolution,
		metrics:    p.Metrics,
	}
}

// GetAccount loads the account and, when its tier is privileged, replaces the
// subscription reference with a fresh record stamped now. The tier is read once
// and used for both the membership test and the new record.
func (s *Service) GetAccount(ctx context.Context, id string) (*accountdomain.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, accountdomain.ErrInvalidAccountID
	}
	ctx = obscontext.WithAccountID(ctx, id)
	log := logger.WithContext(ctx, s.log)

	acc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		log.Info("account not found")
		s.metrics.RecordEnrichment(ctx, metrics.EnrichmentAbsent, "")
		return nil, nil
	}

	tier, ok := policy.ExtractTier(acc)
	if !ok || !s.resolution.Get().Privileged.Contains(tier) {
		s.metrics.RecordEnrichment(ctx, metrics.EnrichmentSkipped, tier.String())
		return acc, nil
	}

	now := s.clock.Now()
	if err := acc.AttachSubscription(&subscriptiondomain.Subscription{
		Tier:      &tier,
		CreatedAt: &now,
	}); err != nil {
		return nil, err
	}
	log.Debug("attached subscription", zap.String("tier", tier.String()))
	s.metrics.RecordEnrichment(ctx, metrics.EnrichmentAttached, tier.String())
	return acc, nil
}
