package core

import (
	"context"

	"github.com/holiman/uint256"
)

// MarketID keccak256 of the abi-encoded market params
type MarketID = Hash

// MarketParams immutable identity of a market
type MarketParams struct {
	LoanToken       Address      `json:"loan_token" yaml:"loan_token"`
	CollateralToken Address      `json:"collateral_token" yaml:"collateral_token"`
	Oracle          Address      `json:"oracle" yaml:"oracle"`
	Irm             Address      `json:"irm" yaml:"irm"`
	Lltv            *uint256.Int `json:"lltv" yaml:"lltv"`
}

// ID keccak256(abi.encode(loanToken, collateralToken, oracle, irm, lltv))
func (p *MarketParams) ID() MarketID {
	word := func(a Address) []byte {
		b := make([]byte, 32)
		copy(b[12:], a[:])
		return b
	}

	lltv := p.Lltv.Bytes32()
	return Keccak256(
		word(p.LoanToken),
		word(p.CollateralToken),
		word(p.Oracle),
		word(p.Irm),
		lltv[:],
	)
}

// IsIdle market without collateral, used by vaults to park liquidity
func (p *MarketParams) IsIdle() bool {
	return p.CollateralToken.IsZero()
}

// MarketState mutable accounting of a market, as stored by the contract
// plus the optional oracle price and rate at target.
type MarketState struct {
	TotalSupplyAssets *uint256.Int `json:"total_supply_assets" yaml:"total_supply_assets"`
	TotalSupplyShares *uint256.Int `json:"total_supply_shares" yaml:"total_supply_shares"`
	TotalBorrowAssets *uint256.Int `json:"total_borrow_assets" yaml:"total_borrow_assets"`
	TotalBorrowShares *uint256.Int `json:"total_borrow_shares" yaml:"total_borrow_shares"`
	LastUpdate        uint64       `json:"last_update" yaml:"last_update"`
	Fee               *uint256.Int `json:"fee" yaml:"fee"`
	// Price nil when the oracle price is unknown
	Price *uint256.Int `json:"price,omitempty" yaml:"price,omitempty"`
	// RateAtTarget nil when the market has no adaptive irm, 0 before its first interaction
	RateAtTarget *uint256.Int `json:"rate_at_target,omitempty" yaml:"rate_at_target,omitempty"`
}

func clone(x *uint256.Int) *uint256.Int {
	if x == nil {
		return nil
	}

	return x.Clone()
}

func zeroIfNil(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}

	return x.Clone()
}

// Clone deep copy, missing totals become zero
func (s *MarketState) Clone() *MarketState {
	return &MarketState{
		TotalSupplyAssets: zeroIfNil(s.TotalSupplyAssets),
		TotalSupplyShares: zeroIfNil(s.TotalSupplyShares),
		TotalBorrowAssets: zeroIfNil(s.TotalBorrowAssets),
		TotalBorrowShares: zeroIfNil(s.TotalBorrowShares),
		LastUpdate:        s.LastUpdate,
		Fee:               zeroIfNil(s.Fee),
		Price:             clone(s.Price),
		RateAtTarget:      clone(s.RateAtTarget),
	}
}

// Clone deep copy
func (p *MarketParams) Clone() *MarketParams {
	c := *p
	c.Lltv = zeroIfNil(p.Lltv)
	return &c
}

// IMarketService market views at a given timestamp
type IMarketService interface {
	Market(ctx context.Context, id MarketID, timestamp uint64) (*MarketView, error)
	Position(ctx context.Context, user Address, id MarketID, timestamp uint64) (*PositionView, error)
	Positions(ctx context.Context, id MarketID, timestamp uint64) ([]*PositionView, error)
	PreLiquidation(ctx context.Context, user Address, id MarketID, timestamp uint64) (*PreLiquidationView, error)
}
