package quill

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// SizeClass selects how long a generated identifier is.
type SizeClass int

const (
	SizeSmall  SizeClass = iota // 8 characters
	SizeMedium                  // 16 characters
	SizeLarge                   // 24 characters
	SizeMax                     // 32 characters, UUID-derived
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SizeFromString maps the caller-supplied size parameter onto a class.
// Anything unrecognized falls through to the maximal class.
func SizeFromString(size string) SizeClass {
	switch strings.ToLower(size) {
	case "sm":
		return SizeSmall
	case "md":
		return SizeMedium
	case "lg":
		return SizeLarge
	default:
		return SizeMax
	}
}

// NewID generates a fresh random identifier of the given size class.
func NewID(size SizeClass) string {
	switch size {
	case SizeSmall:
		return randomID(8)
	case SizeMedium:
		return randomID(16)
	case SizeLarge:
		return randomID(24)
	default:
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}

func randomID(length int) string {
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a UUID-derived character.
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:length]
		}
		b.WriteByte(idAlphabet[n.Int64()])
	}
	return b.String()
}
