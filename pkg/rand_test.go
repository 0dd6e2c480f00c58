package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	for _, length := range []int{0, 1, 4, 32} {
		s := RandString(length)
		assert.Len(t, s, length)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(alphaNum, r), "unexpected rune %q", r)
		}
	}
}
