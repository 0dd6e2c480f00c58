package pkg

import (
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const addressLength = 32

// ValidateAddress checks that address is the base58 text of a 32 byte key.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("empty address")
	}
	bz := base58.Decode(address)
	if len(bz) != addressLength {
		return fmt.Errorf("address %q decodes to %d bytes, expected %d", address, len(bz), addressLength)
	}
	return nil
}

// RandomAddressString returns the text form of 32 random bytes.
func RandomAddressString() (string, error) {
	bz := make([]byte, addressLength)
	if _, err := rand.Read(bz); err != nil {
		return "", err
	}
	return base58.Encode(bz), nil
}
