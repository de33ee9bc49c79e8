package subscription

import (
	"github.com/smallbiznis/accountresolver/internal/cache"
	"github.com/smallbiznis/accountresolver/internal/observability/metrics"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/repository"
	"github.com/smallbiznis/accountresolver/internal/subscription/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.NewStore),
	fx.Provide(provideRecordStore),
	fx.Provide(service.NewService),
)

func provideRecordStore(tier cache.Writer, store *repository.Store, log *zap.Logger, m *metrics.Metrics) subscriptiondomain.RecordStore {
	return repository.NewTieredStore(tier, store, log, m)
}
