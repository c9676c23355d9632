package vaultv2

import (
	"blue/core"
)

func word(a core.Address) []byte {
	b := make([]byte, 32)
	copy(b[12:], a[:])
	return b
}

func uintWord(v uint64) []byte {
	b := make([]byte, 32)
	for i := 0; i < 8; i++ {
		b[31-i] = byte(v >> (8 * i))
	}

	return b
}

// abi encoding of a string tail: length word then right-padded data
func stringTail(s string) []byte {
	padded := make([]byte, (len(s)+31)/32*32)
	copy(padded, s)
	return append(uintWord(uint64(len(s))), padded...)
}

// AdapterID keccak256(abi.encode("this", adapter))
func AdapterID(adapter core.Address) core.Hash {
	return core.Keccak256(uintWord(2*32), word(adapter), stringTail("this"))
}

// CollateralTokenID keccak256(abi.encode("collateralToken", token))
func CollateralTokenID(token core.Address) core.Hash {
	return core.Keccak256(uintWord(2*32), word(token), stringTail("collateralToken"))
}

// MarketParamsID keccak256(abi.encode("this/marketParams", adapter, params))
func MarketParamsID(adapter core.Address, params *core.MarketParams) core.Hash {
	lltv := params.Lltv.Bytes32()
	return core.Keccak256(
		uintWord(7*32),
		word(adapter),
		word(params.LoanToken),
		word(params.CollateralToken),
		word(params.Oracle),
		word(params.Irm),
		lltv[:],
		stringTail("this/marketParams"),
	)
}
