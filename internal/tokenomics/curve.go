// Package tokenomics holds the settlement arithmetic: the merchant fee, the
// reward curve and how a reward budget is clamped and split.
//
// All intermediate products are computed on sdkmath.Int so that no step can
// wrap around 64 bits; results that are handed back as uint64 are guaranteed
// to fit.
package tokenomics

import (
	sdkmath "cosmossdk.io/math"
)

const (
	// BasisPointsPrecision is the denominator of every basis-point rate.
	BasisPointsPrecision uint64 = 10_000
	// OneRewardToken is one whole reward token in minor units.
	OneRewardToken uint64 = 1_000_000

	// InitialReward is paid per fee-bearing settlement while nothing has moved yet.
	InitialReward = OneRewardToken
	// TargetReward is the floor reached once TargetMovedAmount has been settled.
	TargetReward uint64 = 1
	// TargetMovedAmount is the cumulative volume at which the curve bottoms out.
	TargetMovedAmount uint64 = 1_000_000_000
)

// RewardRate maps the cumulative settled volume to the reward budget of a
// single settlement. It interpolates linearly from InitialReward at zero
// volume down to TargetReward at TargetMovedAmount and stays there.
func RewardRate(cumulativeVolume uint64) uint64 {
	if cumulativeVolume >= TargetMovedAmount {
		return TargetReward
	}

	decay := sdkmath.NewIntFromUint64(InitialReward - TargetReward).
		Mul(sdkmath.NewIntFromUint64(cumulativeVolume)).
		Quo(sdkmath.NewIntFromUint64(TargetMovedAmount))

	// decay < InitialReward - TargetReward because cumulativeVolume < TargetMovedAmount
	return InitialReward - decay.Uint64()
}
