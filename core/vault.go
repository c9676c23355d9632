package core

import (
	"context"

	"github.com/holiman/uint256"
)

// VaultConfig immutable configuration of a queue vault
type VaultConfig struct {
	Address        Address `json:"address" yaml:"address"`
	Asset          Address `json:"asset" yaml:"asset"`
	Symbol         string  `json:"symbol" yaml:"symbol"`
	Name           string  `json:"name" yaml:"name"`
	Decimals       uint8   `json:"decimals" yaml:"decimals"`
	DecimalsOffset uint8   `json:"decimals_offset" yaml:"decimals_offset"`
}

// VaultState mutable state of a queue vault
type VaultState struct {
	Address         Address      `json:"address" yaml:"address"`
	Curator         Address      `json:"curator" yaml:"curator"`
	Owner           Address      `json:"owner" yaml:"owner"`
	Guardian        Address      `json:"guardian" yaml:"guardian"`
	FeeRecipient    Address      `json:"fee_recipient" yaml:"fee_recipient"`
	SkimRecipient   Address      `json:"skim_recipient" yaml:"skim_recipient"`
	Fee             *uint256.Int `json:"fee" yaml:"fee"`
	Timelock        uint64       `json:"timelock" yaml:"timelock"`
	SupplyQueue     []MarketID   `json:"supply_queue" yaml:"supply_queue"`
	WithdrawQueue   []MarketID   `json:"withdraw_queue" yaml:"withdraw_queue"`
	TotalSupply     *uint256.Int `json:"total_supply" yaml:"total_supply"`
	TotalAssets     *uint256.Int `json:"total_assets" yaml:"total_assets"`
	LastTotalAssets *uint256.Int `json:"last_total_assets" yaml:"last_total_assets"`
	// LostAssets nil on vaults that don't track realized bad debt
	LostAssets *uint256.Int `json:"lost_assets,omitempty" yaml:"lost_assets,omitempty"`
}

// Clone deep copy
func (s *VaultState) Clone() *VaultState {
	c := *s
	c.Fee = zeroIfNil(s.Fee)
	c.SupplyQueue = append([]MarketID(nil), s.SupplyQueue...)
	c.WithdrawQueue = append([]MarketID(nil), s.WithdrawQueue...)
	c.TotalSupply = zeroIfNil(s.TotalSupply)
	c.TotalAssets = zeroIfNil(s.TotalAssets)
	c.LastTotalAssets = zeroIfNil(s.LastTotalAssets)
	c.LostAssets = clone(s.LostAssets)
	return &c
}

// VaultMarketConfig a vault's configuration of one market
type VaultMarketConfig struct {
	Vault             Address      `json:"vault" yaml:"vault"`
	MarketID          MarketID     `json:"market_id" yaml:"market_id"`
	Cap               *uint256.Int `json:"cap" yaml:"cap"`
	PendingCap        *uint256.Int `json:"pending_cap,omitempty" yaml:"pending_cap,omitempty"`
	PendingCapValidAt uint64       `json:"pending_cap_valid_at,omitempty" yaml:"pending_cap_valid_at,omitempty"`
	RemovableAt       uint64       `json:"removable_at" yaml:"removable_at"`
	Enabled           bool         `json:"enabled" yaml:"enabled"`
}

// Clone deep copy
func (c *VaultMarketConfig) Clone() *VaultMarketConfig {
	n := *c
	n.Cap = zeroIfNil(c.Cap)
	n.PendingCap = clone(c.PendingCap)
	return &n
}

// AdapterType kind of vault v2 adapter
type AdapterType string

const (
	// AdapterMarketV1 supplies to a set of markets
	AdapterMarketV1 AdapterType = "morphoMarketV1"
	// AdapterVaultV1 holds shares of a queue vault
	AdapterVaultV1 AdapterType = "morphoVaultV1"
	// AdapterVaultV2 holds shares of another adapter vault
	AdapterVaultV2 AdapterType = "vaultV2"
)

// VaultV2Cap absolute and relative caps of an allocation id
type VaultV2Cap struct {
	ID          Hash         `json:"id" yaml:"id"`
	AbsoluteCap *uint256.Int `json:"absolute_cap" yaml:"absolute_cap"`
	RelativeCap *uint256.Int `json:"relative_cap" yaml:"relative_cap"`
	Allocation  *uint256.Int `json:"allocation" yaml:"allocation"`
}

// VaultV2State state of an adapter vault
type VaultV2State struct {
	Address  Address `json:"address" yaml:"address"`
	Asset    Address `json:"asset" yaml:"asset"`
	Decimals uint8   `json:"decimals" yaml:"decimals"`
	// TotalAssets stored total assets as of LastUpdate
	TotalAssets   *uint256.Int `json:"total_assets" yaml:"total_assets"`
	TotalSupply   *uint256.Int `json:"total_supply" yaml:"total_supply"`
	VirtualShares *uint256.Int `json:"virtual_shares" yaml:"virtual_shares"`
	// MaxRate max per-second growth of total assets
	MaxRate                 *uint256.Int  `json:"max_rate" yaml:"max_rate"`
	LastUpdate              uint64        `json:"last_update" yaml:"last_update"`
	PerformanceFee          *uint256.Int  `json:"performance_fee" yaml:"performance_fee"`
	ManagementFee           *uint256.Int  `json:"management_fee" yaml:"management_fee"`
	PerformanceFeeRecipient Address       `json:"performance_fee_recipient" yaml:"performance_fee_recipient"`
	ManagementFeeRecipient  Address       `json:"management_fee_recipient" yaml:"management_fee_recipient"`
	Adapters                []Address     `json:"adapters" yaml:"adapters"`
	LiquidityAdapter        Address       `json:"liquidity_adapter" yaml:"liquidity_adapter"`
	Caps                    []*VaultV2Cap `json:"caps" yaml:"caps"`
	// AssetBalance idle assets held by the vault itself
	AssetBalance *uint256.Int `json:"asset_balance" yaml:"asset_balance"`
}

// Clone deep copy
func (s *VaultV2State) Clone() *VaultV2State {
	c := *s
	c.TotalAssets = zeroIfNil(s.TotalAssets)
	c.TotalSupply = zeroIfNil(s.TotalSupply)
	c.VirtualShares = zeroIfNil(s.VirtualShares)
	c.MaxRate = zeroIfNil(s.MaxRate)
	c.PerformanceFee = zeroIfNil(s.PerformanceFee)
	c.ManagementFee = zeroIfNil(s.ManagementFee)
	c.AssetBalance = zeroIfNil(s.AssetBalance)
	c.Adapters = append([]Address(nil), s.Adapters...)
	c.Caps = make([]*VaultV2Cap, len(s.Caps))
	for i, cp := range s.Caps {
		c.Caps[i] = &VaultV2Cap{
			ID:          cp.ID,
			AbsoluteCap: zeroIfNil(cp.AbsoluteCap),
			RelativeCap: zeroIfNil(cp.RelativeCap),
			Allocation:  zeroIfNil(cp.Allocation),
		}
	}
	return &c
}

// VaultV2AdapterState raw adapter snapshot
type VaultV2AdapterState struct {
	Address     Address     `json:"address" yaml:"address"`
	ParentVault Address     `json:"parent_vault" yaml:"parent_vault"`
	Type        AdapterType `json:"type" yaml:"type"`
	// MarketIDs markets supplied by a market adapter
	MarketIDs []MarketID `json:"market_ids,omitempty" yaml:"market_ids,omitempty"`
	// Vault underlying vault of a vault adapter
	Vault Address `json:"vault,omitempty" yaml:"vault,omitempty"`
	// Shares held in the underlying vault
	Shares *uint256.Int `json:"shares,omitempty" yaml:"shares,omitempty"`
}

// IVaultService vault views at a given timestamp
type IVaultService interface {
	Vault(ctx context.Context, address Address, timestamp uint64) (*VaultView, error)
	VaultV2(ctx context.Context, address Address, timestamp uint64) (*VaultV2View, error)
}
