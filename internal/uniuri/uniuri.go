package uniuri

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// byteRange is the number of distinct values of a random byte.
const byteRange = 256

var (
	// HexChars is the alphabet of lower case hex keys.
	HexChars = []byte("0123456789abcdef") //nolint:gochecknoglobals

	// ErrCharset is returned for alphabets with fewer than 2 or more than 256 characters.
	ErrCharset = errors.New("uniuri: charset must have between 2 and 256 characters")
)

// NewLenChars returns a random string of length characters taken from chars.
func NewLenChars(length int, chars []byte) (string, error) {
	n := len(chars)
	if n < 2 || n > byteRange {
		return "", ErrCharset
	}

	if length <= 0 {
		return "", nil
	}

	// bytes >= limit would favor the first characters of chars
	limit := byteRange - byteRange%n
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("uniuri: can't read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// Hex returns a random lower case hex string of length characters.
func Hex(length int) (string, error) {
	return NewLenChars(length, HexChars)
}
