package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/accountresolver/internal/account"
	accountdomain "github.com/smallbiznis/accountresolver/internal/account/domain"
	"github.com/smallbiznis/accountresolver/internal/cache"
	"github.com/smallbiznis/accountresolver/internal/config"
	"github.com/smallbiznis/accountresolver/internal/observability"
	obsmiddleware "github.com/smallbiznis/accountresolver/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/accountresolver/internal/observability/metrics"
	obstracing "github.com/smallbiznis/accountresolver/internal/observability/tracing"
	"github.com/smallbiznis/accountresolver/internal/persona"
	personadomain "github.com/smallbiznis/accountresolver/internal/persona/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	cache.Module,
	subscription.Module,
	persona.Module,
	account.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	accountSvc      accountdomain.Service
	subscriptionSvc subscriptiondomain.Service
	personaSvc      personadomain.Service
}

type ServerParam struct {
	fx.In

	Engine          *gin.Engine
	AccountSvc      accountdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	PersonaSvc      personadomain.Service
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		engine:          p.Engine,
		accountSvc:      p.AccountSvc,
		subscriptionSvc: p.SubscriptionSvc,
		personaSvc:      p.PersonaSvc,
	}
	s.RegisterRoutes()
	return s
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.GET("/accounts/:id", s.GetAccount)
	api.GET("/accounts/:id/tier", s.GetAccountTier)
	api.GET("/subscriptions/:id", s.GetSubscription)
	api.GET("/personas/:id", s.GetPersona)
}
