package bolt11

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// featureTestWords returns a 20-word field with bits 8, 14 and 99 set, the
// layout of the feature vector used by the BOLT 11 examples.
func featureTestWords() []byte {
	words := make([]byte, 20)
	setBit(words, 8)
	setBit(words, 14)
	setBit(words, 99)
	return words
}

func TestParseFeatureBits(t *testing.T) {
	features := parseFeatureBits(featureTestWords())

	require.Equal(t, 20, features.WordLength)

	varOnion, ok := features.Features[FeatureVarOnionOptin]
	require.True(t, ok)
	require.True(t, varOnion.Required)
	require.True(t, varOnion.Supported)

	paymentSecret, ok := features.Features[FeaturePaymentSecret]
	require.True(t, ok)
	require.True(t, paymentSecret.Required)
	require.True(t, paymentSecret.Supported)

	// Unset pairs are omitted entirely.
	_, ok = features.Features[FeatureBasicMPP]
	require.False(t, ok)

	require.Equal(t, extraBitsStart, features.Extra.StartBit)
	require.Equal(t, []int{99}, features.Extra.Bits)
	require.False(t, features.Extra.HasRequired)
}

func TestFeatureBitsRoundTrip(t *testing.T) {
	original := featureTestWords()

	words, err := featureWords(parseFeatureBits(original))
	require.NoError(t, err)
	require.Equal(t, original, words)
}

func TestFeatureBitsSupportedOnly(t *testing.T) {
	words := make([]byte, 2)
	setBit(words, 9)

	features := parseFeatureBits(words)
	varOnion := features.Features[FeatureVarOnionOptin]
	require.False(t, varOnion.Required)
	require.True(t, varOnion.Supported)

	restored, err := featureWords(features)
	require.NoError(t, err)
	require.Equal(t, words, restored)
}

func TestFeatureBitsExtraRequired(t *testing.T) {
	words := make([]byte, 5)
	setBit(words, 22)

	features := parseFeatureBits(words)
	require.True(t, features.Extra.HasRequired)
	require.Equal(t, []int{22}, features.Extra.Bits)
}

func TestFeatureWordsDerivesLength(t *testing.T) {
	words, err := featureWords(FeatureBits{
		Features: map[FeatureName]FeaturePair{
			FeaturePaymentSecret: {Supported: true},
		},
	})
	require.NoError(t, err)

	// Bit 15 needs four words.
	require.Len(t, words, 4)
	require.True(t, bitAt(words, 15))
}

func TestFeatureWordsRejectsOverflow(t *testing.T) {
	_, err := featureWords(FeatureBits{
		WordLength: 1,
		Extra:      ExtraBits{Bits: []int{30}},
	})
	require.Error(t, err)
}
