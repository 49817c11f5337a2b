// Package bech32 implements the base32 encoding with BCH checksum defined in
// BIP-173, relaxed for BOLT 11 payment requests: strings may be longer than
// 90 characters and input case is normalized instead of rejected.
package bech32

import (
	"errors"
	"fmt"
	"strings"
)

// charset is the set of characters used in the data section. The values
// 0..31 map to the characters in order.
const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// checksumLen is the number of characters the checksum occupies at the end
// of the data section.
const checksumLen = 6

// gen contains the generator coefficients of the BCH code.
var gen = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// charsetRev maps ASCII characters back to their 5-bit values, -1 marking
// characters outside the charset.
var charsetRev [128]int8

func init() {
	for i := range charsetRev {
		charsetRev[i] = -1
	}
	for i := 0; i < len(charset); i++ {
		charsetRev[charset[i]] = int8(i)
	}
}

var (
	// ErrNoSeparator is returned when a string contains no "1" separator
	// between the human-readable part and the data.
	ErrNoSeparator = errors.New("no separator character")

	// ErrEmptyHRP is returned when the part before the separator is empty.
	ErrEmptyHRP = errors.New("empty human-readable part")

	// ErrTooShort is returned when fewer than six data characters follow
	// the separator, which cannot even hold the checksum.
	ErrTooShort = errors.New("data section too short")

	// ErrInvalidChar is returned when a data character is not part of the
	// bech32 charset.
	ErrInvalidChar = errors.New("invalid bech32 character")

	// ErrInvalidChecksum is returned when the checksum does not verify
	// over the human-readable part and data.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrInvalidWord is returned when a 5-bit value passed to Encode is
	// out of range.
	ErrInvalidWord = errors.New("data value exceeds 5 bits")
)

// polymod computes the BCH checksum state over a sequence of 5-bit values.
func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// hrpExpand splits each character of the human-readable part into its high
// and low bits, with a zero separator in between, as input to the checksum.
func hrpExpand(hrp string) []byte {
	expanded := make([]byte, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		expanded[i] = hrp[i] >> 5
		expanded[i+len(hrp)+1] = hrp[i] & 31
	}
	return expanded
}

// verifyChecksum reports whether the data ends in a valid checksum for the
// given human-readable part.
func verifyChecksum(hrp string, data []byte) bool {
	return polymod(append(hrpExpand(hrp), data...)) == 1
}

// createChecksum computes the six checksum words for the given
// human-readable part and data.
func createChecksum(hrp string, data []byte) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, make([]byte, checksumLen)...)
	mod := polymod(values) ^ 1
	checksum := make([]byte, checksumLen)
	for i := 0; i < checksumLen; i++ {
		checksum[i] = byte(mod >> uint(5*(5-i)) & 31)
	}
	return checksum
}

// Encode converts the human-readable part and a sequence of 5-bit words into
// a bech32 string with a trailing checksum. Unlike BIP-173 no upper bound is
// placed on the total length, as BOLT 11 requires.
func Encode(hrp string, data []byte) (string, error) {
	hrp = strings.ToLower(hrp)

	for _, v := range data {
		if v >= 32 {
			return "", fmt.Errorf("%w: %d", ErrInvalidWord, v)
		}
	}

	combined := append(data, createChecksum(hrp, data)...)

	var builder strings.Builder
	builder.Grow(len(hrp) + 1 + len(combined))
	builder.WriteString(hrp)
	builder.WriteByte('1')
	for _, v := range combined {
		builder.WriteByte(charset[v])
	}

	return builder.String(), nil
}

// Decode parses a bech32 string into its human-readable part and data words,
// with the checksum stripped. The input is lowercased before decoding, so
// upper and even mixed case inputs are accepted. The last "1" in the string
// acts as the separator.
func Decode(encoded string) (string, []byte, error) {
	encoded = strings.ToLower(encoded)

	separator := strings.LastIndexByte(encoded, '1')
	if separator < 0 {
		return "", nil, ErrNoSeparator
	}
	if separator == 0 {
		return "", nil, ErrEmptyHRP
	}
	if len(encoded)-separator-1 < checksumLen {
		return "", nil, ErrTooShort
	}

	hrp := encoded[:separator]
	dataPart := encoded[separator+1:]

	data := make([]byte, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		c := dataPart[i]
		if c >= 128 || charsetRev[c] < 0 {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidChar, c)
		}
		data[i] = byte(charsetRev[c])
	}

	if !verifyChecksum(hrp, data) {
		return "", nil, ErrInvalidChecksum
	}

	return hrp, data[:len(data)-checksumLen], nil
}
