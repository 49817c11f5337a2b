package bolt11

import (
	"encoding/hex"
	"fmt"
)

// HexToBytes decodes a lowercase or uppercase hex string without prefix.
func HexToBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %d digits", ErrOddHexLength, len(s))
	}
	return hex.DecodeString(s)
}

// HexTo32Bytes decodes a hex string that must contain exactly 32 bytes,
// the size of payment hashes, payment secrets and purpose commit hashes.
func HexTo32Bytes(s string) ([32]byte, error) {
	var out [32]byte

	decoded, err := HexToBytes(s)
	if err != nil {
		return out, err
	}
	if len(decoded) != 32 {
		return out, fmt.Errorf("expected 32 bytes, got %d", len(decoded))
	}

	copy(out[:], decoded)
	return out, nil
}
