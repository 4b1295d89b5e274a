package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerAlnum(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9]{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		s, err := LowerAlnum(4)
		require.NoError(t, err)
		assert.Regexp(t, re, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}
