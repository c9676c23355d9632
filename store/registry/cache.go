package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blue/core"
	"blue/pkg/logger"

	"github.com/bluele/gcache"
	"github.com/holiman/uint256"
	"golang.org/x/sync/singleflight"
)

// Cache wraps registry with an lru cache, misses fall back to fetcher
// and the fetched entries are saved into registry
func Cache(registry core.IRegistry, fetcher core.IFetcher, size int, exp time.Duration) core.IRegistry {
	builder := gcache.New(size).LRU()
	if exp > 0 {
		builder = builder.Expiration(exp)
	}

	return &cacheRegistry{
		IRegistry: registry,
		fetcher:   fetcher,
		cache:     builder.Build(),
		sf:        &singleflight.Group{},
	}
}

type cacheRegistry struct {
	core.IRegistry
	fetcher core.IFetcher
	cache   gcache.Cache
	sf      *singleflight.Group
}

func (s *cacheRegistry) MarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	key := s.marketKey(id)
	if v, err := s.cache.Get(key); err == nil {
		if params, ok := v.(*core.MarketParams); ok {
			return params.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		params, err := s.IRegistry.MarketParams(ctx, id)
		var miss *core.UnknownMarketParamsError
		if errors.As(err, &miss) && s.fetcher != nil {
			params, err = s.fetchMarketParams(ctx, id)
		}

		if err != nil {
			return nil, err
		}

		s.cache.Set(key, params)
		return params, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.MarketParams).Clone(), nil
}

func (s *cacheRegistry) fetchMarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	log := logger.FromContext(ctx).WithField("market", id.Hex())

	params, err := s.fetcher.FetchMarketParams(ctx, id)
	if err != nil {
		log.WithError(err).Debugln("fetch market params")
		return nil, err
	}

	if params.ID() != id {
		return nil, fmt.Errorf("fetched params hash to %s: %w", params.ID(), core.ErrInvalidInput)
	}

	if err := s.IRegistry.SaveMarketParams(ctx, params); err != nil {
		log.WithError(err).Errorln("save fetched market params")
		return nil, err
	}

	return params, nil
}

func (s *cacheRegistry) SaveMarketParams(ctx context.Context, params *core.MarketParams) error {
	if err := s.IRegistry.SaveMarketParams(ctx, params); err != nil {
		return err
	}

	s.cache.Set(s.marketKey(params.ID()), params.Clone())
	return nil
}

func (s *cacheRegistry) VaultConfig(ctx context.Context, address core.Address) (*core.VaultConfig, error) {
	key := s.vaultKey(address)
	if v, err := s.cache.Get(key); err == nil {
		if config, ok := v.(*core.VaultConfig); ok {
			c := *config
			return &c, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		config, err := s.IRegistry.VaultConfig(ctx, address)
		var miss *core.UnknownVaultConfigError
		if errors.As(err, &miss) && s.fetcher != nil {
			if config, err = s.fetcher.FetchVaultConfig(ctx, address); err == nil {
				err = s.IRegistry.SaveVaultConfig(ctx, config)
			}
		}

		if err != nil {
			return nil, err
		}

		s.cache.Set(key, config)
		return config, nil
	})
	if err != nil {
		return nil, err
	}

	c := *v.(*core.VaultConfig)
	return &c, nil
}

func (s *cacheRegistry) SaveVaultConfig(ctx context.Context, config *core.VaultConfig) error {
	if err := s.IRegistry.SaveVaultConfig(ctx, config); err != nil {
		return err
	}

	c := *config
	s.cache.Set(s.vaultKey(config.Address), &c)
	return nil
}

func (s *cacheRegistry) PreLiquidationParams(ctx context.Context, lltv *uint256.Int) (*core.PreLiquidationParams, error) {
	key := s.preLiquidationKey(lltv)
	if v, err := s.cache.Get(key); err == nil {
		if params, ok := v.(*core.PreLiquidationParams); ok {
			return params.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		params, err := s.IRegistry.PreLiquidationParams(ctx, lltv)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, params)
		return params, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.PreLiquidationParams).Clone(), nil
}

func (s *cacheRegistry) SavePreLiquidationParams(ctx context.Context, lltv *uint256.Int, params *core.PreLiquidationParams) error {
	if err := s.IRegistry.SavePreLiquidationParams(ctx, lltv, params); err != nil {
		return err
	}

	s.cache.Set(s.preLiquidationKey(lltv), params.Clone())
	return nil
}

func (s *cacheRegistry) marketKey(id core.MarketID) string {
	return fmt.Sprintf("market:%s", id.Hex())
}

func (s *cacheRegistry) vaultKey(address core.Address) string {
	return fmt.Sprintf("vault:%s", address.Hex())
}

func (s *cacheRegistry) preLiquidationKey(lltv *uint256.Int) string {
	return fmt.Sprintf("pre_liquidation:%s", lltv.Dec())
}
