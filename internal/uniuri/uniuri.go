package uniuri

import (
	"crypto/rand"
	"math"
)

// StdLen is the default string length, roughly 95 bits of entropy over
// StdChars.
const StdLen = 16

// StdChars is the default alphabet: ASCII letters and digits.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters from StdChars.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of the given length from StdChars.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

const (
	// maxBufLen caps the scratch buffer requested from crypto/rand.
	maxBufLen = 2048

	// minRegenBufLen is the smallest follow-up read when rejection left the
	// result incomplete; reading fewer bytes than this is not worth a call.
	minRegenBufLen = 16

	maxByteValue = 255
	byteRange    = 256
)

// estimatedBufLen estimates how many random bytes to request so that, after
// rejecting values above maxByte, roughly need bytes survive.
func estimatedBufLen(need, maxByte int) int {
	return int(math.Ceil(float64(need) * (maxByteValue / float64(maxByte))))
}

// NewLenCharsBytes returns length random bytes drawn from chars, which must
// hold between 2 and 256 distinct values.
func NewLenCharsBytes(length int, chars []byte) []byte {
	if length == 0 {
		return nil
	}

	clen := len(chars)
	if clen < 2 || clen > byteRange {
		panic("uniuri: charset must hold between 2 and 256 characters")
	}

	// Reject bytes above maxRb so chars[c%clen] stays uniform.
	maxRb := maxByteValue - (byteRange % clen)

	bufLen := estimatedBufLen(length, maxRb)
	if bufLen < length {
		bufLen = length
	}
	if bufLen > maxBufLen {
		bufLen = maxBufLen
	}

	buf := make([]byte, bufLen)
	out := make([]byte, length)

	var i int
	for {
		if _, err := rand.Read(buf[:bufLen]); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf[:bufLen] {
			c := int(rb)
			if c > maxRb {
				continue
			}

			out[i] = chars[c%clen]
			i++
			if i == length {
				return out
			}
		}

		bufLen = estimatedBufLen(length-i, maxRb)
		if bufLen < minRegenBufLen && minRegenBufLen < cap(buf) {
			bufLen = minRegenBufLen
		}
		if bufLen > maxBufLen {
			bufLen = maxBufLen
		}
	}
}

// NewLenChars is NewLenCharsBytes returning a string.
func NewLenChars(length int, chars []byte) string {
	return string(NewLenCharsBytes(length, chars))
}
