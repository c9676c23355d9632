package core

import (
	"context"

	"github.com/holiman/uint256"
)

// IRegistry configuration lookups, misses fail with the named Unknown*/Unsupported* errors
type IRegistry interface {
	MarketParams(ctx context.Context, id MarketID) (*MarketParams, error)
	VaultConfig(ctx context.Context, address Address) (*VaultConfig, error)
	PreLiquidationParams(ctx context.Context, lltv *uint256.Int) (*PreLiquidationParams, error)
	SaveMarketParams(ctx context.Context, params *MarketParams) error
	SaveVaultConfig(ctx context.Context, config *VaultConfig) error
	SavePreLiquidationParams(ctx context.Context, lltv *uint256.Int, params *PreLiquidationParams) error
}

// IFetcher producer of on-chain snapshots
type IFetcher interface {
	FetchMarketParams(ctx context.Context, id MarketID) (*MarketParams, error)
	FetchMarket(ctx context.Context, id MarketID) (*MarketState, error)
	FetchPosition(ctx context.Context, user Address, id MarketID) (*Position, error)
	FetchPositions(ctx context.Context, id MarketID) ([]*Position, error)
	FetchPreLiquidation(ctx context.Context, user Address, id MarketID) (*PreLiquidationParams, *uint256.Int, error)
	FetchVaultConfig(ctx context.Context, address Address) (*VaultConfig, error)
	FetchVault(ctx context.Context, address Address) (*VaultState, error)
	FetchVaultMarketConfig(ctx context.Context, vault Address, id MarketID) (*VaultMarketConfig, error)
	FetchVaultV2(ctx context.Context, address Address) (*VaultV2State, error)
	FetchVaultV2Adapter(ctx context.Context, address Address) (*VaultV2AdapterState, error)
}
