package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/policy"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	keyPrivilegedTiers = "resolution.privilegedTiers"
	keyDefaultTier     = "resolution.defaultTier"
	keyMode            = "resolution.mode"
)

// Resolution is the validated tier resolution policy.
type Resolution struct {
	// Privileged tiers get a fresh subscription attached on account enrichment.
	Privileged policy.TierSet
	// DefaultTier substitutes an absent tier in lenient mode.
	DefaultTier domain.Tier
	Mode        domain.Mode
}

// DefaultResolution is {GOLD, SILVER} privileged, FREE default, lenient.
func DefaultResolution() Resolution {
	return Resolution{
		Privileged:  policy.DefaultPrivileged(),
		DefaultTier: domain.TierFree,
		Mode:        domain.ModeLenient,
	}
}

// ResolutionHolder serves the current Resolution and swaps it on file changes.
type ResolutionHolder struct {
	current atomic.Value // holds Resolution
}

// NewStaticResolutionHolder returns a holder that never reloads.
func NewStaticResolutionHolder(r Resolution) *ResolutionHolder {
	holder := &ResolutionHolder{}
	holder.Set(r)
	return holder
}

// NewResolutionHolder reads resolution.yml and watches it for changes. A
// missing file yields the defaults; an invalid reload keeps the last good value.
func NewResolutionHolder(cfg Config, log *zap.Logger) (*ResolutionHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.resolution")

	v := newResolutionViper(cfg.ResolutionConfigFile)
	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read resolution config: %w", err)
		}
		fileLoaded = false
	}

	resolution, err := loadResolution(v)
	if err != nil {
		return nil, err
	}
	holder := NewStaticResolutionHolder(resolution)

	if fileLoaded {
		v.OnConfigChange(func(e fsnotify.Event) {
			updated, err := loadResolution(v)
			if err != nil {
				log.Warn("invalid resolution config ignored", zap.String("file", e.Name), zap.Error(err))
				return
			}
			holder.Set(updated)
			log.Info("resolution config reloaded", zap.String("file", e.Name), zap.Strings("privileged", tierNames(updated.Privileged)))
		})
		v.WatchConfig()
	}

	log.Info("resolution config loaded",
		zap.Bool("from_file", fileLoaded),
		zap.Strings("privileged", tierNames(resolution.Privileged)),
		zap.String("default_tier", resolution.DefaultTier.String()),
		zap.String("mode", string(resolution.Mode)),
	)
	return holder, nil
}

// Get returns the current resolution policy.
func (h *ResolutionHolder) Get() Resolution {
	return h.current.Load().(Resolution)
}

// Set swaps the current resolution policy.
func (h *ResolutionHolder) Set(r Resolution) {
	h.current.Store(r)
}

func newResolutionViper(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("resolution")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/accountresolver")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ACCOUNTRESOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultResolution()
	v.SetDefault(keyPrivilegedTiers, tierNames(defaults.Privileged))
	v.SetDefault(keyDefaultTier, defaults.DefaultTier.String())
	v.SetDefault(keyMode, string(defaults.Mode))
	return v
}

func loadResolution(v *viper.Viper) (Resolution, error) {
	privileged, err := policy.ParseTierSet(splitList(v.GetStringSlice(keyPrivilegedTiers)))
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", keyPrivilegedTiers, err)
	}
	defaultTier, err := domain.ParseTier(v.GetString(keyDefaultTier))
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", keyDefaultTier, err)
	}
	mode, err := domain.ParseMode(v.GetString(keyMode))
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", keyMode, err)
	}
	return Resolution{Privileged: privileged, DefaultTier: defaultTier, Mode: mode}, nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func tierNames(set policy.TierSet) []string {
	tiers := set.Tiers()
	out := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, tier.String())
	}
	return out
}
