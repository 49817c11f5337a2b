package bolt11

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

func testPubKey(t *testing.T) *btcec.PublicKey {
	t.Helper()
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return key.PubKey()
}

func testHopHint(t *testing.T) HopHint {
	t.Helper()
	var nodeID [33]byte
	copy(nodeID[:], testPubKey(t).SerializeCompressed())
	return HopHint{
		NodeID:                    nodeID,
		ChannelID:                 0x0102030405060708,
		FeeBaseMSat:               1,
		FeeProportionalMillionths: 20,
		CLTVExpiryDelta:           3,
	}
}

func TestTagRoundTrip(t *testing.T) {
	var hash [32]byte
	for i := range hash {
		hash[i] = byte(i)
	}
	var secret [32]byte
	for i := range secret {
		secret[i] = 0x11
	}

	payee := testPubKey(t)

	tags := []Tag{
		PaymentHashTag(hash),
		PaymentSecretTag(secret),
		DescriptionTag("1 cup coffee"),
		PurposeCommitHashTag(hash),
		PayeeTag(payee),
		ExpireTimeTag(60),
		MinFinalCltvExpiryTag(10),
		FallbackAddressTag(FallbackAddress{
			Version: fallbackVersionP2PKH,
			Hash:    hash[:20],
		}),
		RouteHintTag([]HopHint{testHopHint(t), testHopHint(t)}),
		FeatureBitsTag(parseFeatureBits(featureTestWords())),
		MetadataTag([]byte{0x01, 0xfa}),
	}

	words, err := writeTaggedFields(nil, tags)
	require.NoError(t, err)

	parsed, err := parseTaggedFields(words)
	require.NoError(t, err)
	require.Equal(t, tags, parsed)
}

func TestTagWordLengths(t *testing.T) {
	var hash [32]byte
	words, err := tagDataWords(PaymentHashTag(hash))
	require.NoError(t, err)
	require.Len(t, words, 52)

	words, err = tagDataWords(PayeeTag(testPubKey(t)))
	require.NoError(t, err)
	require.Len(t, words, 53)

	// The zero value of an integer tag still occupies one word.
	words, err = tagDataWords(ExpireTimeTag(0))
	require.NoError(t, err)
	require.Equal(t, []byte{0}, words)

	words, err = tagDataWords(MinFinalCltvExpiryTag(144))
	require.NoError(t, err)
	require.Equal(t, []byte{4, 16}, words)
}

func TestParseSkipsUnknownTags(t *testing.T) {
	var hash [32]byte
	known, err := writeTaggedFields(nil, []Tag{PaymentHashTag(hash)})
	require.NoError(t, err)

	// An unknown type code carrying three words of payload.
	unknown := []byte{2, 0, 3, 1, 2, 3}

	parsed, err := parseTaggedFields(append(unknown, known...))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, TagPaymentHash, parsed[0].Type)
}

func TestParseSkipsWrongLengths(t *testing.T) {
	// A payment hash of 51 words instead of 52 must be dropped, not
	// rejected.
	malformed := append([]byte{byte(TagPaymentHash), 1, 19}, make([]byte, 51)...)

	parsed, err := parseTaggedFields(malformed)
	require.NoError(t, err)
	require.Empty(t, parsed)

	// Same for a payee key that does not span 53 words.
	malformed = append([]byte{byte(TagPayee), 1, 20}, make([]byte, 52)...)

	parsed, err = parseTaggedFields(malformed)
	require.NoError(t, err)
	require.Empty(t, parsed)
}

func TestParseMalformedLengths(t *testing.T) {
	// A field whose declared length runs past the data.
	_, err := parseTaggedFields([]byte{byte(TagDescription), 0, 10, 1, 2})
	require.ErrorIs(t, err, ErrTagExtendsBeyondData)

	// A trailing fragment too short to hold a type and length.
	_, err = parseTaggedFields([]byte{byte(TagDescription), 0})
	require.ErrorIs(t, err, ErrBrokenTaggedField)
}

func TestIntegerWords(t *testing.T) {
	tests := []struct {
		value uint64
		words []byte
	}{
		{0, []byte{0}},
		{31, []byte{31}},
		{32, []byte{1, 0}},
		{60, []byte{1, 28}},
		{1024, []byte{1, 0, 0}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.words, uint64ToBase32(tt.value))

		restored, err := base32ToUint64(tt.words)
		require.NoError(t, err)
		require.Equal(t, tt.value, restored)
	}
}
