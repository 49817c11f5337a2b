package bolt11

import (
	"fmt"
	"math"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
)

// MilliSatoshi is an amount in thousandths of a satoshi, the unit invoice
// amounts are expressed in internally. 1 BTC is 10^11 millisatoshis.
type MilliSatoshi uint64

const (
	mSatPerBtc MilliSatoshi = 100_000_000_000
	mSatPerSat MilliSatoshi = 1_000
)

// multipliers maps the SI suffixes of the amount grammar to their value in
// millisatoshis. The pico multiplier is worth a tenth of a millisatoshi and
// is handled separately.
var multipliers = map[byte]MilliSatoshi{
	'm': 100_000_000,
	'u': 100_000,
	'n': 100,
}

// Satoshis returns the amount as whole satoshis. The second return value is
// false when the amount has a fractional satoshi part.
func (m MilliSatoshi) Satoshis() (btcutil.Amount, bool) {
	if m%mSatPerSat != 0 {
		return 0, false
	}
	return btcutil.Amount(m / mSatPerSat), true
}

func (m MilliSatoshi) String() string {
	return strconv.FormatUint(uint64(m), 10) + " msat"
}

// decodeAmount parses the amount token of the human-readable part into
// millisatoshis. The token is digits followed by an optional multiplier
// suffix; without a suffix the digits denote whole bitcoin.
func decodeAmount(token string) (MilliSatoshi, error) {
	if token == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	digits := token
	var suffix byte
	if last := token[len(token)-1]; last < '0' || last > '9' {
		suffix = last
		digits = token[:len(token)-1]
	}

	if digits == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrInvalidAmount, token)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, fmt.Errorf("%w: %q has a leading zero", ErrInvalidAmount, token)
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, token)
	}

	switch suffix {
	case 0:
		if value > uint64(math.MaxUint64)/uint64(mSatPerBtc) {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, token)
		}
		return MilliSatoshi(value) * mSatPerBtc, nil

	case 'p':
		if value%10 != 0 {
			return 0, fmt.Errorf("%w: %q", ErrPicoNotMultipleOfTen, token)
		}
		return MilliSatoshi(value / 10), nil

	case 'm', 'u', 'n':
		multiplier := multipliers[suffix]
		if value > uint64(math.MaxUint64)/uint64(multiplier) {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, token)
		}
		return MilliSatoshi(value) * multiplier, nil

	default:
		return 0, fmt.Errorf("%w: unknown multiplier %q", ErrInvalidAmount, suffix)
	}
}

// encodeAmount renders an amount as the shortest token the grammar allows,
// trying the milli, micro and nano multipliers in order and falling back to
// pico, which can express any whole millisatoshi value.
func encodeAmount(msat MilliSatoshi) string {
	for _, suffix := range []byte{'m', 'u', 'n'} {
		multiplier := multipliers[suffix]
		if msat >= multiplier && msat%multiplier == 0 {
			return strconv.FormatUint(uint64(msat/multiplier), 10) + string(suffix)
		}
	}
	return strconv.FormatUint(uint64(msat)*10, 10) + "p"
}

// MilliSatoshisToHRP renders an amount in millisatoshis as an amount token
// for the human-readable part.
func MilliSatoshisToHRP(msat MilliSatoshi) string {
	return encodeAmount(msat)
}

// SatoshisToHRP renders an amount in satoshis as an amount token for the
// human-readable part.
func SatoshisToHRP(sat btcutil.Amount) string {
	return encodeAmount(MilliSatoshi(sat) * mSatPerSat)
}

// HRPToMilliSatoshis parses an amount token into millisatoshis.
func HRPToMilliSatoshis(token string) (MilliSatoshi, error) {
	return decodeAmount(token)
}

// HRPToSatoshis parses an amount token into whole satoshis, failing when the
// amount has a fractional satoshi part.
func HRPToSatoshis(token string) (btcutil.Amount, error) {
	msat, err := decodeAmount(token)
	if err != nil {
		return 0, err
	}
	sat, ok := msat.Satoshis()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrFractionalSatoshis, msat)
	}
	return sat, nil
}
