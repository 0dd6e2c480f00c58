package pkg

import "math/rand/v2"

const alphaNum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString returns n random alphanumeric characters. Not for secrets.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphaNum[rand.IntN(len(alphaNum))] //nolint:gosec
	}
	return string(b)
}
