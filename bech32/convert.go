package bech32

import "fmt"

// ConvertBits regroups the given values from fromBits-wide groups into
// toBits-wide groups. With pad set, any remaining bits are zero-extended
// into a final group; this is the form BOLT 11 mandates when building the
// signing pre-image and when packing byte payloads into 5-bit words.
// Without pad, remaining bits are discarded, which recovers the original
// byte sequence from a padded 5-bit encoding.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, fmt.Errorf("bit groups must be 1 to 8 bits, got %d to %d",
			fromBits, toBits)
	}

	regrouped := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	maxVal := byte(1<<toBits - 1)

	var acc uint32
	var bits uint8
	for _, v := range data {
		if v>>fromBits != 0 {
			return nil, fmt.Errorf("value %d exceeds %d bits", v, fromBits)
		}
		acc = acc<<fromBits | uint32(v)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			regrouped = append(regrouped, byte(acc>>bits)&maxVal)
		}
	}

	if pad && bits > 0 {
		regrouped = append(regrouped, byte(acc<<(toBits-bits))&maxVal)
	}

	return regrouped, nil
}
