package tokenomics

import (
	"math"
	"testing"

	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantFee(t *testing.T) {
	tests := []struct {
		name        string
		amount      uint64
		bps         uint64
		expectedFee uint64
		expectedErr types.ErrorCode
	}{
		{name: "one percent", amount: 10_000, bps: 100, expectedFee: 100},
		{name: "rounds down", amount: 199, bps: 100, expectedFee: 1},
		{name: "too small to carry a fee", amount: 99, bps: 100, expectedFee: 0},
		{name: "zero rate", amount: 10_000, bps: 0, expectedFee: 0},
		{name: "just under full rate", amount: 10_000, bps: 9_999, expectedFee: 9_999},
		{name: "zero amount", amount: 0, bps: 100, expectedErr: types.ZeroAmount},
		{name: "zero amount with zero rate", amount: 0, bps: 0, expectedErr: types.ZeroAmount},
		{name: "full rate", amount: 10_000, bps: 10_000, expectedErr: types.FeeExceedsAmount},
		{name: "above full rate", amount: 10_000, bps: 25_000, expectedErr: types.FeeExceedsAmount},
		{name: "fee wider than 64 bits", amount: math.MaxUint64, bps: math.MaxUint64, expectedErr: types.FeeExceedsAmount},
		{name: "product wider than 64 bits", amount: math.MaxUint64, bps: 100, expectedFee: math.MaxUint64 / 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := MerchantFee(tt.amount, tt.bps)
			if tt.expectedErr != "" {
				require.NotNil(t, err)
				assert.Equal(t, tt.expectedErr, err.ErrorCode)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.expectedFee, fee)
			assert.Less(t, fee, tt.amount)
		})
	}
}
