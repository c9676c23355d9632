package core

import (
	"github.com/holiman/uint256"
)

// CapacityLimitReason what bounds an operation
type CapacityLimitReason string

const (
	// LimiterBalance the requested amount itself
	LimiterBalance CapacityLimitReason = "balance"
	// LimiterLiquidity the market or vault liquidity
	LimiterLiquidity CapacityLimitReason = "liquidity"
	// LimiterPosition the user's position
	LimiterPosition CapacityLimitReason = "position"
	// LimiterCollateral the user's collateral
	LimiterCollateral CapacityLimitReason = "collateral"
	// LimiterCap a vault supply cap
	LimiterCap CapacityLimitReason = "cap"
	// LimiterAbsoluteCap a vault v2 absolute cap
	LimiterAbsoluteCap CapacityLimitReason = "absoluteCap"
	// LimiterRelativeCap a vault v2 relative cap
	LimiterRelativeCap CapacityLimitReason = "relativeCap"
)

// CapacityLimit maximum volume of an operation and its limiter
type CapacityLimit struct {
	Value   *uint256.Int        `json:"value" yaml:"value"`
	Limiter CapacityLimitReason `json:"limiter" yaml:"limiter"`
}
