// Package codegen produces random human-readable coupon codes.
//
// The alphabet drops glyphs that are easy to misread when a code is typed
// from a printed voucher (0/O, 1/I/L). Uniqueness is NOT guaranteed here;
// the issuing side must detect duplicate-key violations and retry.
package codegen

import (
	"crypto/rand"
	"math/big"
)

const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const DefaultLength = 8

// Generate returns a random code of the given length drawn uniformly from
// Alphabet. A non-positive length falls back to DefaultLength.
func Generate(length int) string {
	if length <= 0 {
		length = DefaultLength
	}

	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform RNG is broken;
			// nothing sensible to degrade to.
			panic("codegen: crypto/rand unavailable: " + err.Error())
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf)
}
