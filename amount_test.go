package bolt11

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/require"
)

func TestDecodeAmount(t *testing.T) {
	tests := []struct {
		token string
		msat  MilliSatoshi
	}{
		{"1", 100_000_000_000},
		{"2", 200_000_000_000},
		{"20m", 2_000_000_000},
		{"2500u", 250_000_000},
		{"1000n", 100_000},
		{"10n", 1_000},
		{"9678785340p", 967_878_534},
		{"10p", 1},
		{"0", 0},
		{"25m", 2_500_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			msat, err := decodeAmount(tt.token)
			require.NoError(t, err)
			require.Equal(t, tt.msat, msat)
		})
	}
}

func TestDecodeAmountInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		err   error
	}{
		{"Empty", "", ErrInvalidAmount},
		{"LeadingZero", "0100u", ErrInvalidAmount},
		{"OnlySuffix", "m", ErrInvalidAmount},
		{"UnknownSuffix", "100x", ErrInvalidAmount},
		{"NonDigit", "1a00u", ErrInvalidAmount},
		{"PicoNotMultipleOfTen", "1234p", ErrPicoNotMultipleOfTen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAmount(tt.token)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestEncodeAmountShortestForm(t *testing.T) {
	tests := []struct {
		msat  MilliSatoshi
		token string
	}{
		{2_000_000_000, "20m"},
		{250_000_000, "2500u"},
		{100_000, "1u"},
		{967_878_534, "9678785340p"},
		{1, "10p"},
		{100_000_000_000, "1000m"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			require.Equal(t, tt.token, encodeAmount(tt.msat))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, msat := range []MilliSatoshi{1, 10, 999, 1_000, 123_123, 100_000_000,
		967_878_534, 250_000_000, 100_000_000_000} {

		decoded, err := decodeAmount(encodeAmount(msat))
		require.NoError(t, err)
		require.Equal(t, msat, decoded)
	}
}

func TestHRPToSatoshis(t *testing.T) {
	sat, err := HRPToSatoshis("2500u")
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(250_000), sat)

	sat, err = HRPToSatoshis("20m")
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(2_000_000), sat)

	// A fractional satoshi amount is representable in millisatoshis but
	// not in whole satoshis.
	_, err = HRPToSatoshis("9678785340p")
	require.ErrorIs(t, err, ErrFractionalSatoshis)

	msat, err := HRPToMilliSatoshis("9678785340p")
	require.NoError(t, err)
	require.Equal(t, MilliSatoshi(967_878_534), msat)
}

func TestSatoshisToHRPRoundTrip(t *testing.T) {
	for _, sat := range []btcutil.Amount{1, 250_000, 2_000_000, 100_000_000} {
		restored, err := HRPToSatoshis(SatoshisToHRP(sat))
		require.NoError(t, err)
		require.Equal(t, sat, restored)
	}
}

func TestSatoshisView(t *testing.T) {
	sat, ok := MilliSatoshi(250_000_000).Satoshis()
	require.True(t, ok)
	require.Equal(t, btcutil.Amount(250_000), sat)

	_, ok = MilliSatoshi(967_878_534).Satoshis()
	require.False(t, ok)
}
