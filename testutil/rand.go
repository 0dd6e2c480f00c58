package testutil

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// RandomAddress returns 32 random bytes as an address.
func RandomAddress(t testing.TB) types.Address {
	t.Helper()

	var a types.Address
	_, err := rand.Read(a[:])
	require.NoError(t, err)
	return a
}
