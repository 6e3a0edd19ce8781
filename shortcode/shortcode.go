// Package shortcode generates and validates the six-character codes that
// identify shortened links.
package shortcode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// Length is the fixed length of every generated code.
	Length = 6

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type empty struct{}

var (
	errInvalidLength  = errors.New("invalid length")
	errUnexpectedChar = errors.New("unexpected char")

	alphabetSize = big.NewInt(int64(len(alphabet)))
	validChars   = makeValidChars()
)

// Generate returns a random six-character alphanumeric code. Uniqueness is
// not guaranteed here; the store's unique index is the arbiter, and callers
// retry with a fresh code on a duplicate.
func Generate() string {
	code := make([]byte, Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// rand.Reader only fails when the OS entropy source is gone.
			panic("shortcode: " + err.Error())
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code)
}

// Validate reports whether code could have been produced by Generate.
func Validate(code string) error {
	if len(code) != Length {
		return errInvalidLength
	}
	for _, r := range code {
		if _, ok := validChars[r]; !ok {
			return errUnexpectedChar
		}
	}
	return nil
}

func makeValidChars() map[rune]empty {
	set := make(map[rune]empty, len(alphabet))
	for _, c := range alphabet {
		set[c] = empty{}
	}
	return set
}
