package tokenomics

import (
	sdkmath "cosmossdk.io/math"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// MerchantFee returns floor(amount * feeBasisPoints / 10000).
//
// Basis points are not range checked, a rate at or above 100% is reported here
// as FeeExceedsAmount rather than when the rate is configured.
func MerchantFee(amount, feeBasisPoints uint64) (uint64, *types.Error) {
	if amount == 0 {
		return 0, types.NewZeroAmountError()
	}

	fee := sdkmath.NewIntFromUint64(amount).
		Mul(sdkmath.NewIntFromUint64(feeBasisPoints)).
		Quo(sdkmath.NewIntFromUint64(BasisPointsPrecision))

	// also covers fees that do not fit in 64 bits
	if fee.GTE(sdkmath.NewIntFromUint64(amount)) {
		return 0, types.NewFeeExceedsAmountError(amount, feeBasisPoints)
	}

	return fee.Uint64(), nil
}
