package code_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shared-api/pkg/code"
)

func TestRandom(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, 10},
		{0, 1},
		{-5, 1},
		{40, 32},
	}
	for _, tc := range tests {
		t.Run(strconv.Itoa(tc.in), func(t *testing.T) {
			c, err := code.Random(tc.in)
			require.NoError(t, err)
			assert.Len(t, c, tc.want)
			for _, r := range c {
				assert.True(t, strings.ContainsRune(code.Alphabet, r), "carácter fuera del alfabeto: %q", r)
			}
		})
	}
}

func TestFromUUID(t *testing.T) {
	assert.Len(t, code.FromUUID(10), 10)
	assert.Len(t, code.FromUUID(100), 32)
	assert.Len(t, code.FromUUID(0), 1)
	assert.NotContains(t, code.FromUUID(32), "-")
	assert.NotEqual(t, code.FromUUID(32), code.FromUUID(32))
}
