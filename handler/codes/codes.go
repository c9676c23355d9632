package codes

import (
	"net/http"

	"blue/core"
)

// HTTPStatus http status of an error code
func HTTPStatus(code core.ErrorCode) int {
	switch code {
	case core.ErrInvalidInput, core.ErrInvalidInterestAccrual:
		return http.StatusBadRequest
	case core.ErrMarketNotFound,
		core.ErrVaultNotFound,
		core.ErrPreLiquidationParamsNotFound,
		core.ErrPositionNotFound:
		return http.StatusNotFound
	case core.ErrArithmetic,
		core.ErrInsufficientPosition,
		core.ErrInsufficientCollateral,
		core.ErrInsufficientLiquidity,
		core.ErrUnknownOraclePrice,
		core.ErrHealthyPosition,
		core.ErrNotPreLiquidatable,
		core.ErrPreLiquidationTooLarge,
		core.ErrInvalidAllocation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
