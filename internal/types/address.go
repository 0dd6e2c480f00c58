package types

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/shekel-labs/shekel-settlement/pkg"
)

const AddressLength = 32

// Address identifies an account holder, a token account or the program itself.
// Its text form is base58.
type Address [AddressLength]byte

var EmptyAddress Address

func ParseAddress(s string) (Address, error) {
	var a Address
	if err := pkg.ValidateAddress(s); err != nil {
		return a, err
	}
	copy(a[:], base58.Decode(s))
	return a, nil
}

// MustParseAddress is ParseAddress that panics, for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, fmt.Errorf("invalid length: expected %d bytes, got %d bytes", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsEmpty() bool {
	return bytes.Equal(a[:], EmptyAddress[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// addresses are stored in mongo as their base58 string so documents stay readable
func (a Address) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.String())
}

func (a *Address) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("cannot decode address from bson type %s", t)
	}
	return a.UnmarshalText([]byte(s))
}
