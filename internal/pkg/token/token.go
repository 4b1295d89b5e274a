package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"

// LowerAlnum returns n cryptographically random characters from [a-z0-9].
func LowerAlnum(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(lowerAlnum))))
		if err != nil {
			return "", fmt.Errorf("generate random suffix: %w", err)
		}
		b[i] = lowerAlnum[idx.Int64()]
	}
	return string(b), nil
}
