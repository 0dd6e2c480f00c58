package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToError(nil))
	})
	t.Run("plain error becomes internal", func(t *testing.T) {
		err := ToError(errors.New("boom"))
		require.NotNil(t, err)
		assert.Equal(t, InternalServiceError, err.ErrorCode)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "boom", err.Error())
	})
	t.Run("wrapped typed error is kept", func(t *testing.T) {
		wrapped := fmt.Errorf("transfer failed: %w", NewZeroAmountError())
		err := ToError(wrapped)
		require.NotNil(t, err)
		assert.Equal(t, ZeroAmount, err.ErrorCode)
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	})
}

func TestHasErrorCode(t *testing.T) {
	var account Address
	account[0] = 1

	err := fmt.Errorf("leg 2: %w", NewInsufficientFundsError(account, 5, 10))
	assert.True(t, HasErrorCode(err, InsufficientFunds))
	assert.False(t, HasErrorCode(err, AssetMismatch))
	assert.False(t, HasErrorCode(errors.New("plain"), InsufficientFunds))
	assert.Contains(t, err.Error(), "holds 5, cannot debit 10")
}
