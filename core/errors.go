package core

import (
	"errors"
	"fmt"
	"strconv"

	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidInput invalid input
	ErrInvalidInput ErrorCode = 100001
	// ErrArithmetic overflow or division by zero
	ErrArithmetic ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrVaultNotFound no vault
	ErrVaultNotFound ErrorCode = 100101
	// ErrPreLiquidationParamsNotFound no pre-liquidation params for the lltv
	ErrPreLiquidationParamsNotFound ErrorCode = 100102
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100103

	// ErrInsufficientPosition position would go negative
	ErrInsufficientPosition ErrorCode = 100200
	// ErrInsufficientCollateral position would be unhealthy
	ErrInsufficientCollateral ErrorCode = 100201
	// ErrInsufficientLiquidity borrows would exceed supply
	ErrInsufficientLiquidity ErrorCode = 100202
	// ErrInvalidInterestAccrual accrual to a timestamp before the last update
	ErrInvalidInterestAccrual ErrorCode = 100203
	// ErrUnknownOraclePrice price required but unknown
	ErrUnknownOraclePrice ErrorCode = 100204
	// ErrHealthyPosition liquidation of a healthy position
	ErrHealthyPosition ErrorCode = 100205
	// ErrNotPreLiquidatable pre-liquidation outside (preLltv, lltv)
	ErrNotPreLiquidatable ErrorCode = 100206
	// ErrPreLiquidationTooLarge repaid shares above the close factor
	ErrPreLiquidationTooLarge ErrorCode = 100207
	// ErrInvalidAllocation allocation position not owned by the vault
	ErrInvalidAllocation ErrorCode = 100208
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Coder errors carrying an ErrorCode
type Coder interface {
	Code() ErrorCode
}

// CodeOf error code of err, ErrUnknown if none
func CodeOf(err error) ErrorCode {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}

	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	var mathErr *mathlib.Error
	if errors.As(err, &mathErr) {
		return ErrArithmetic
	}

	return ErrUnknown
}

var (
	// ErrInconsistentInput exactly one of assets and shares must be zero
	ErrInconsistentInput = errors.New("inconsistent input: exactly one of assets and shares must be zero")
)

// InsufficientPositionError withdraw/repay beyond the position
type InsufficientPositionError struct {
	User     Address
	MarketID MarketID
}

func (e *InsufficientPositionError) Error() string {
	return fmt.Sprintf("insufficient position for user %s on market %s", e.User, e.MarketID)
}

// Code ErrInsufficientPosition
func (e *InsufficientPositionError) Code() ErrorCode { return ErrInsufficientPosition }

// InsufficientCollateralError resulting position is unhealthy
type InsufficientCollateralError struct {
	User     Address
	MarketID MarketID
}

func (e *InsufficientCollateralError) Error() string {
	return fmt.Sprintf("insufficient collateral for user %s on market %s", e.User, e.MarketID)
}

// Code ErrInsufficientCollateral
func (e *InsufficientCollateralError) Code() ErrorCode { return ErrInsufficientCollateral }

// InsufficientLiquidityError borrows would exceed supply
type InsufficientLiquidityError struct {
	MarketID MarketID
}

func (e *InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("insufficient liquidity on market %s", e.MarketID)
}

// Code ErrInsufficientLiquidity
func (e *InsufficientLiquidityError) Code() ErrorCode { return ErrInsufficientLiquidity }

// InvalidInterestAccrualError accrual before the last update
type InvalidInterestAccrualError struct {
	// Subject market id or vault address
	Subject    string
	Timestamp  uint64
	LastUpdate uint64
}

func (e *InvalidInterestAccrualError) Error() string {
	return fmt.Sprintf("invalid interest accrual on %s: accrual timestamp %d can't be prior to last update %d", e.Subject, e.Timestamp, e.LastUpdate)
}

// Code ErrInvalidInterestAccrual
func (e *InvalidInterestAccrualError) Code() ErrorCode { return ErrInvalidInterestAccrual }

// UnknownOraclePriceError price required but unknown
type UnknownOraclePriceError struct {
	MarketID MarketID
}

func (e *UnknownOraclePriceError) Error() string {
	return fmt.Sprintf("unknown oracle price of market %s", e.MarketID)
}

// Code ErrUnknownOraclePrice
func (e *UnknownOraclePriceError) Code() ErrorCode { return ErrUnknownOraclePrice }

// UnknownMarketParamsError registry miss
type UnknownMarketParamsError struct {
	MarketID MarketID
}

func (e *UnknownMarketParamsError) Error() string {
	return fmt.Sprintf("unknown config for market %s", e.MarketID)
}

// Code ErrMarketNotFound
func (e *UnknownMarketParamsError) Code() ErrorCode { return ErrMarketNotFound }

// UnknownVaultConfigError registry miss
type UnknownVaultConfigError struct {
	Vault Address
}

func (e *UnknownVaultConfigError) Error() string {
	return fmt.Sprintf("unknown config for vault %s", e.Vault)
}

// Code ErrVaultNotFound
func (e *UnknownVaultConfigError) Code() ErrorCode { return ErrVaultNotFound }

// UnsupportedPreLiquidationParamsError no default params for the lltv
type UnsupportedPreLiquidationParamsError struct {
	Lltv *uint256.Int
}

func (e *UnsupportedPreLiquidationParamsError) Error() string {
	return fmt.Sprintf("unsupported pre-liquidation params for lltv %s", e.Lltv.Dec())
}

// Code ErrPreLiquidationParamsNotFound
func (e *UnsupportedPreLiquidationParamsError) Code() ErrorCode {
	return ErrPreLiquidationParamsNotFound
}

// UnknownPositionError fetcher miss
type UnknownPositionError struct {
	User     Address
	MarketID MarketID
}

func (e *UnknownPositionError) Error() string {
	return fmt.Sprintf("unknown position of user %s on market %s", e.User, e.MarketID)
}

// Code ErrPositionNotFound
func (e *UnknownPositionError) Code() ErrorCode { return ErrPositionNotFound }

// HealthyPositionError liquidation of a healthy position
type HealthyPositionError struct {
	User     Address
	MarketID MarketID
}

func (e *HealthyPositionError) Error() string {
	return fmt.Sprintf("position of user %s on market %s is healthy", e.User, e.MarketID)
}

// Code ErrHealthyPosition
func (e *HealthyPositionError) Code() ErrorCode { return ErrHealthyPosition }
