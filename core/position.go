package core

import (
	"github.com/holiman/uint256"
)

// Position a user's supply, borrow and collateral on one market
type Position struct {
	User         Address      `json:"user" yaml:"user"`
	MarketID     MarketID     `json:"market_id" yaml:"market_id"`
	SupplyShares *uint256.Int `json:"supply_shares" yaml:"supply_shares"`
	BorrowShares *uint256.Int `json:"borrow_shares" yaml:"borrow_shares"`
	Collateral   *uint256.Int `json:"collateral" yaml:"collateral"`
}

// Clone deep copy, missing fields become zero
func (p *Position) Clone() *Position {
	return &Position{
		User:         p.User,
		MarketID:     p.MarketID,
		SupplyShares: zeroIfNil(p.SupplyShares),
		BorrowShares: zeroIfNil(p.BorrowShares),
		Collateral:   zeroIfNil(p.Collateral),
	}
}

// PreLiquidationParams secondary liquidation threshold and its
// close/incentive factor curves between PreLltv and the market lltv.
type PreLiquidationParams struct {
	PreLltv              *uint256.Int `json:"pre_lltv" yaml:"pre_lltv"`
	PreLCF1              *uint256.Int `json:"pre_lcf_1" yaml:"pre_lcf_1"`
	PreLCF2              *uint256.Int `json:"pre_lcf_2" yaml:"pre_lcf_2"`
	PreLIF1              *uint256.Int `json:"pre_lif_1" yaml:"pre_lif_1"`
	PreLIF2              *uint256.Int `json:"pre_lif_2" yaml:"pre_lif_2"`
	PreLiquidationOracle Address      `json:"pre_liquidation_oracle" yaml:"pre_liquidation_oracle"`
}

// Clone deep copy
func (p *PreLiquidationParams) Clone() *PreLiquidationParams {
	return &PreLiquidationParams{
		PreLltv:              zeroIfNil(p.PreLltv),
		PreLCF1:              zeroIfNil(p.PreLCF1),
		PreLCF2:              zeroIfNil(p.PreLCF2),
		PreLIF1:              zeroIfNil(p.PreLIF1),
		PreLIF2:              zeroIfNil(p.PreLIF2),
		PreLiquidationOracle: p.PreLiquidationOracle,
	}
}
