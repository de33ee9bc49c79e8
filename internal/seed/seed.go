package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	accountrepo "github.com/smallbiznis/accountresolver/internal/account/repository"
	"github.com/smallbiznis/accountresolver/internal/cache"
	"github.com/smallbiznis/accountresolver/internal/clock"
	personarepo "github.com/smallbiznis/accountresolver/internal/persona/repository"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	subscriptionrepo "github.com/smallbiznis/accountresolver/internal/subscription/repository"
	"github.com/smallbiznis/accountresolver/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoAccount struct {
	FirstName   string
	LastName    string
	CountryCode string
	// Tier is empty for an account without a subscription.
	Tier subscriptiondomain.Tier
}

const (
	seedLockKey = "seed:demo-accounts"
	seedLockTTL = 30 * time.Second
)

var demoAccounts = []demoAccount{
	{FirstName: "Ada", LastName: "Lovelace", CountryCode: "GB", Tier: subscriptiondomain.TierGold},
	{FirstName: "Grace", LastName: "Hopper", CountryCode: "US", Tier: subscriptiondomain.TierSilver},
	{FirstName: "Alan", LastName: "Turing", CountryCode: "GB", Tier: subscriptiondomain.TierPlatinum},
	{FirstName: "Edsger", LastName: "Dijkstra", CountryCode: "NL", Tier: subscriptiondomain.TierFree},
	{FirstName: "Barbara", LastName: "Liskov", CountryCode: "US"},
}

// EnsureDemoAccounts seeds one account per tier plus one without a
// subscription, and warms the cache tier with the seeded subscriptions.
// Accounts that already exist by username are left alone. With a locker, only
// one instance seeds at a time.
func EnsureDemoAccounts(ctx context.Context, conn *gorm.DB, tier cache.Writer, locker *cache.Locker, c clock.Clock, log *zap.Logger) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("seed")

	if locker != nil {
		token, ok, err := locker.TryLock(ctx, seedLockKey, seedLockTTL)
		if err != nil {
			return fmt.Errorf("acquire seed lock: %w", err)
		}
		if !ok {
			log.Info("demo accounts seeded by another instance, skipping")
			return nil
		}
		defer func() {
			if err := locker.Release(ctx, seedLockKey, token); err != nil {
				log.Warn("release seed lock failed", zap.Error(err))
			}
		}()
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	var seeded []subscriptionrepo.SubscriptionRow
	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seeded = seeded[:0]
		for _, demo := range demoAccounts {
			sub, err := ensureDemoAccountTx(ctx, tx, node, c, demo)
			if err != nil {
				return err
			}
			if sub != nil {
				seeded = append(seeded, *sub)
			}
		}
		return nil
	})
	if db.IsDuplicateKeyErr(err) {
		log.Info("demo accounts seeded concurrently, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed demo accounts: %w", err)
	}

	if tier != nil {
		for _, row := range seeded {
			sub, err := subscriptionrepo.ToDomain(row)
			if err != nil {
				return err
			}
			if err := tier.Put(ctx, row.ID, sub); err != nil {
				log.Warn("cache warm failed", zap.String("subscription_id", row.ID), zap.Error(err))
			}
		}
	}
	log.Info("demo accounts ensured", zap.Int("subscriptions_created", len(seeded)))
	return nil
}

// ensureDemoAccountTx returns the subscription it created, if any.
func ensureDemoAccountTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, c clock.Clock, demo demoAccount) (*subscriptionrepo.SubscriptionRow, error) {
	username := slug.Make(demo.FirstName + " " + demo.LastName)

	var existing accountrepo.AccountRow
	err := tx.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := c.Now()
	persona := personarepo.PersonaRow{
		ID:          node.Generate().String(),
		FirstName:   &demo.FirstName,
		LastName:    &demo.LastName,
		CountryCode: &demo.CountryCode,
	}
	if err := tx.WithContext(ctx).Create(&persona).Error; err != nil {
		return nil, err
	}

	account := accountrepo.AccountRow{
		ID:        node.Generate().String(),
		Username:  username,
		ProfileID: &persona.ID,
		CreatedAt: now,
	}

	var sub *subscriptionrepo.SubscriptionRow
	if demo.Tier != "" {
		tierName := demo.Tier.String()
		code := slug.Make(tierName + " monthly")
		sub = &subscriptionrepo.SubscriptionRow{
			ID:        node.Generate().String(),
			Tier:      &tierName,
			Code:      &code,
			CreatedAt: &now,
		}
		if err := tx.WithContext(ctx).Create(sub).Error; err != nil {
			return nil, err
		}
		account.SubscriptionID = &sub.ID
	}

	if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return sub, nil
}
