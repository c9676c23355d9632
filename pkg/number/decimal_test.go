package number

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func TestFromWad(t *testing.T) {
	assert.Equal(t, "0.86", FromWad(uint256.NewInt(86e16)).String())
	assert.Equal(t, "0", FromWad(nil).String())
	assert.Equal(t, "1.5", FromUnits(uint256.NewInt(1_500_000), 6).String())
}

func TestApy(t *testing.T) {
	assert.Equal(t, true, Apy(uint256.NewInt(0)).IsZero())

	// 4% apr compounds to e^0.04 - 1
	rate := uint256.NewInt(1268391679)
	apr := Apr(rate)
	assert.Equal(t, "0.04", apr.Round(6).String())

	apy := Apy(rate)
	assert.Equal(t, "0.040811", apy.Round(6).String())
	assert.Equal(t, true, apy.GreaterThan(apr))
	assert.Equal(t, true, apy.LessThan(decimal.RequireFromString("0.0409")))
}
