package vault

import (
	"context"
	"errors"
	"fmt"

	"blue/core"
	"blue/pkg/blue"
	"blue/pkg/logger"
	"blue/pkg/mathlib"
	"blue/pkg/vault"
	"blue/pkg/vaultv2"

	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"
)

// maxNesting depth of adapter vaults allocating into adapter vaults
const maxNesting = 4

type service struct {
	registry core.IRegistry
	fetcher  core.IFetcher
}

// New new vault service
func New(registry core.IRegistry, fetcher core.IFetcher) core.IVaultService {
	return &service{
		registry: registry,
		fetcher:  fetcher,
	}
}

func (s *service) market(ctx context.Context, id core.MarketID) (*blue.Market, error) {
	params, err := s.registry.MarketParams(ctx, id)
	if err != nil {
		return nil, err
	}

	state, err := s.fetcher.FetchMarket(ctx, id)
	if err != nil {
		return nil, err
	}

	return blue.NewMarket(params, state), nil
}

// position of user on market id, empty when the user never interacted
func (s *service) position(ctx context.Context, user core.Address, id core.MarketID) (*blue.AccrualPosition, error) {
	m, err := s.market(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.fetcher.FetchPosition(ctx, user, id)
	var miss *core.UnknownPositionError
	if errors.As(err, &miss) {
		p, err = &core.Position{User: user, MarketID: id}, nil
	}

	if err != nil {
		return nil, err
	}

	return blue.NewAccrualPosition(p, m), nil
}

func (s *service) accrualVault(ctx context.Context, address core.Address) (*vault.AccrualVault, error) {
	log := logger.FromContext(ctx).WithField("vault", address.Hex())

	config, err := s.registry.VaultConfig(ctx, address)
	if err != nil {
		log.WithError(err).Debugln("registry.VaultConfig")
		return nil, err
	}

	state, err := s.fetcher.FetchVault(ctx, address)
	if err != nil {
		log.WithError(err).Errorln("fetcher.FetchVault")
		return nil, err
	}

	allocations := make([]*vault.Allocation, len(state.WithdrawQueue))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range state.WithdrawQueue {
		i, id := i, id
		g.Go(func() error {
			mc, err := s.fetcher.FetchVaultMarketConfig(ctx, address, id)
			if err != nil {
				return err
			}

			position, err := s.position(ctx, address, id)
			if err != nil {
				return err
			}

			allocations[i] = &vault.Allocation{Config: mc, Position: position}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Errorln("fetch allocations")
		return nil, err
	}

	return vault.NewAccrualVault(vault.NewVault(config, state), allocations)
}

func (s *service) Vault(ctx context.Context, address core.Address, timestamp uint64) (*core.VaultView, error) {
	log := logger.FromContext(ctx).WithField("timestamp", timestamp)
	ctx = logger.WithContext(ctx, log)

	av, err := s.accrualVault(ctx, address)
	if err != nil {
		return nil, err
	}

	result, err := av.AccrueInterest(timestamp)
	if err != nil {
		log.WithError(err).Errorln("AccrueInterest")
		return nil, err
	}

	var view *core.VaultView
	if err := mathlib.Try(func() { view = VaultView(result, timestamp) }); err != nil {
		log.WithError(err).Errorln("VaultView")
		return nil, err
	}

	return view, nil
}

func (s *service) adapter(ctx context.Context, parent *core.VaultV2State, address core.Address, depth int) (vaultv2.Adapter, error) {
	a, err := s.fetcher.FetchVaultV2Adapter(ctx, address)
	if err != nil {
		return nil, err
	}

	switch a.Type {
	case core.AdapterMarketV1:
		positions := make([]*blue.AccrualPosition, len(a.MarketIDs))
		for i, id := range a.MarketIDs {
			if positions[i], err = s.position(ctx, a.Address, id); err != nil {
				return nil, err
			}
		}

		var liquidityMarket *core.MarketParams
		if a.Address == parent.LiquidityAdapter && len(positions) > 0 {
			liquidityMarket = positions[0].Market.Params
		}

		return vaultv2.NewMarketAdapter(a.Address, positions, liquidityMarket), nil
	case core.AdapterVaultV1:
		av, err := s.accrualVault(ctx, a.Vault)
		if err != nil {
			return nil, err
		}

		return vaultv2.NewVaultV1Adapter(a.Address, av, adapterShares(a)), nil
	case core.AdapterVaultV2:
		av, err := s.accrualVaultV2(ctx, a.Vault, depth+1)
		if err != nil {
			return nil, err
		}

		return vaultv2.NewVaultV2Adapter(a.Address, av, adapterShares(a)), nil
	default:
		return nil, fmt.Errorf("adapter %s of type %q: %w", a.Address, a.Type, core.ErrInvalidInput)
	}
}

func adapterShares(a *core.VaultV2AdapterState) *uint256.Int {
	if a.Shares == nil {
		return mathlib.Zero()
	}

	return a.Shares
}

func (s *service) accrualVaultV2(ctx context.Context, address core.Address, depth int) (*vaultv2.AccrualVaultV2, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("vault %s nested deeper than %d: %w", address, maxNesting, core.ErrInvalidAllocation)
	}

	log := logger.FromContext(ctx).WithField("vault_v2", address.Hex())

	state, err := s.fetcher.FetchVaultV2(ctx, address)
	if err != nil {
		log.WithError(err).Errorln("fetcher.FetchVaultV2")
		return nil, err
	}

	adapters := make([]vaultv2.Adapter, len(state.Adapters))
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range state.Adapters {
		i, a := i, a
		g.Go(func() (err error) {
			adapters[i], err = s.adapter(ctx, state, a, depth)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Errorln("fetch adapters")
		return nil, err
	}

	return vaultv2.NewAccrualVaultV2(vaultv2.NewVaultV2(state), adapters)
}

func (s *service) VaultV2(ctx context.Context, address core.Address, timestamp uint64) (*core.VaultV2View, error) {
	log := logger.FromContext(ctx).WithField("timestamp", timestamp)
	ctx = logger.WithContext(ctx, log)

	av, err := s.accrualVaultV2(ctx, address, 0)
	if err != nil {
		return nil, err
	}

	result, err := av.AccrueInterest(timestamp)
	if err != nil {
		log.WithError(err).Errorln("AccrueInterest")
		return nil, err
	}

	var view *core.VaultV2View
	if err := mathlib.Try(func() { view = VaultV2View(result, timestamp) }); err != nil {
		log.WithError(err).Errorln("VaultV2View")
		return nil, err
	}

	return view, nil
}
