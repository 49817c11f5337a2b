package bolt11

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/BoltzExchange/go-bolt11/bech32"
)

// TagType is the 5-bit type code of a tagged field.
type TagType byte

const (
	// TagPaymentHash is the payment hash the payment preimage must match.
	TagPaymentHash TagType = 1

	// TagRouteHint carries hop hints for a private route to the payee.
	TagRouteHint TagType = 3

	// TagFeatureBits signals features supported or required by the payee.
	TagFeatureBits TagType = 5

	// TagExpireTime is the invoice validity period in seconds.
	TagExpireTime TagType = 6

	// TagFallbackAddress is an on-chain address to pay if the Lightning
	// payment cannot be completed.
	TagFallbackAddress TagType = 9

	// TagDescription is a short description of the payment purpose.
	TagDescription TagType = 13

	// TagPaymentSecret is the secret included in the final hop payload to
	// prevent probing by intermediaries.
	TagPaymentSecret TagType = 16

	// TagPayee is the compressed public key of the payee node.
	TagPayee TagType = 19

	// TagPurposeCommitHash is the hash of a longer description of the
	// payment purpose.
	TagPurposeCommitHash TagType = 23

	// TagMinFinalCltvExpiry is the CLTV delta the payee expects on the
	// final HTLC.
	TagMinFinalCltvExpiry TagType = 24

	// TagMetadata is opaque payment metadata to include in the payment.
	TagMetadata TagType = 27
)

const (
	// hashWordLen is the exact word count of a packed 32-byte hash.
	hashWordLen = 52

	// pubKeyWordLen is the exact word count of a packed 33-byte key.
	pubKeyWordLen = 53

	// hopHintLen is the byte length of a single route hint hop.
	hopHintLen = 51
)

// tagNames maps type codes to their canonical field names.
var tagNames = map[TagType]string{
	TagPaymentHash:        "payment_hash",
	TagRouteHint:          "route_hint",
	TagFeatureBits:        "feature_bits",
	TagExpireTime:         "expire_time",
	TagFallbackAddress:    "fallback_address",
	TagDescription:        "description",
	TagPaymentSecret:      "payment_secret",
	TagPayee:              "payee",
	TagPurposeCommitHash:  "purpose_commit_hash",
	TagMinFinalCltvExpiry: "min_final_cltv_expiry",
	TagMetadata:           "metadata",
}

// Name returns the canonical field name of the type code.
func (t TagType) Name() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown_%d", byte(t))
}

// TagValue is implemented by every tagged field payload type.
type TagValue interface {
	taggedFieldValue()
}

// Tag is one tagged field of an invoice.
type Tag struct {
	Type  TagType
	Value TagValue
}

// The typed payloads of the tagged field union.
type (
	// PaymentHash is the 32-byte payment hash.
	PaymentHash [32]byte

	// PaymentSecret is the 32-byte payment secret.
	PaymentSecret [32]byte

	// PurposeCommitHash is the 32-byte hash of the payment description.
	PurposeCommitHash [32]byte

	// Payee is the 33-byte compressed public key of the payee.
	Payee [33]byte

	// Description is a UTF-8 description of the payment purpose.
	Description string

	// Metadata is opaque payment metadata.
	Metadata []byte

	// ExpireTime is the invoice validity period in seconds.
	ExpireTime uint64

	// MinFinalCltvExpiry is the CLTV delta for the final HTLC.
	MinFinalCltvExpiry uint64

	// RouteHint is an ordered list of hops reaching the payee through
	// private channels.
	RouteHint []HopHint
)

func (PaymentHash) taggedFieldValue()        {}
func (PaymentSecret) taggedFieldValue()      {}
func (PurposeCommitHash) taggedFieldValue()  {}
func (Payee) taggedFieldValue()              {}
func (Description) taggedFieldValue()        {}
func (Metadata) taggedFieldValue()           {}
func (ExpireTime) taggedFieldValue()         {}
func (MinFinalCltvExpiry) taggedFieldValue() {}
func (RouteHint) taggedFieldValue()          {}

// PubKey parses the payee key into a secp256k1 point.
func (p Payee) PubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(p[:])
}

// HopHint describes a single hop of a private route. The integers are
// big-endian on the wire; the whole hop occupies exactly 51 bytes.
type HopHint struct {
	NodeID                    [33]byte
	ChannelID                 uint64
	FeeBaseMSat               uint32
	FeeProportionalMillionths uint32
	CLTVExpiryDelta           uint16
}

// NodeKey parses the hop node id into a secp256k1 point.
func (h *HopHint) NodeKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(h.NodeID[:])
}

// Convenience constructors for the tagged field union.

func PaymentHashTag(hash [32]byte) Tag {
	return Tag{Type: TagPaymentHash, Value: PaymentHash(hash)}
}

func PaymentSecretTag(secret [32]byte) Tag {
	return Tag{Type: TagPaymentSecret, Value: PaymentSecret(secret)}
}

func PurposeCommitHashTag(hash [32]byte) Tag {
	return Tag{Type: TagPurposeCommitHash, Value: PurposeCommitHash(hash)}
}

func PayeeTag(pubKey *btcec.PublicKey) Tag {
	var payee Payee
	copy(payee[:], pubKey.SerializeCompressed())
	return Tag{Type: TagPayee, Value: payee}
}

func DescriptionTag(description string) Tag {
	return Tag{Type: TagDescription, Value: Description(description)}
}

func MetadataTag(metadata []byte) Tag {
	return Tag{Type: TagMetadata, Value: Metadata(metadata)}
}

func ExpireTimeTag(seconds uint64) Tag {
	return Tag{Type: TagExpireTime, Value: ExpireTime(seconds)}
}

func MinFinalCltvExpiryTag(delta uint64) Tag {
	return Tag{Type: TagMinFinalCltvExpiry, Value: MinFinalCltvExpiry(delta)}
}

func RouteHintTag(hops []HopHint) Tag {
	return Tag{Type: TagRouteHint, Value: RouteHint(hops)}
}

func FallbackAddressTag(fallback FallbackAddress) Tag {
	return Tag{Type: TagFallbackAddress, Value: fallback}
}

func FeatureBitsTag(features FeatureBits) Tag {
	return Tag{Type: TagFeatureBits, Value: features}
}

// tagDataWords serializes a tag payload into 5-bit words, without the type
// and length header.
func tagDataWords(tag Tag) ([]byte, error) {
	switch value := tag.Value.(type) {
	case PaymentHash:
		return packExact(value[:], hashWordLen)
	case PaymentSecret:
		return packExact(value[:], hashWordLen)
	case PurposeCommitHash:
		return packExact(value[:], hashWordLen)
	case Payee:
		return packExact(value[:], pubKeyWordLen)
	case Description:
		return bech32.ConvertBits([]byte(value), 8, 5, true)
	case Metadata:
		return bech32.ConvertBits(value, 8, 5, true)
	case ExpireTime:
		return uint64ToBase32(uint64(value)), nil
	case MinFinalCltvExpiry:
		return uint64ToBase32(uint64(value)), nil
	case FallbackAddress:
		hashWords, err := bech32.ConvertBits(value.Hash, 8, 5, true)
		if err != nil {
			return nil, err
		}
		return append([]byte{value.Version & 31}, hashWords...), nil
	case RouteHint:
		serialized := make([]byte, 0, hopHintLen*len(value))
		for _, hop := range value {
			buf := make([]byte, hopHintLen)
			copy(buf[:33], hop.NodeID[:])
			binary.BigEndian.PutUint64(buf[33:41], hop.ChannelID)
			binary.BigEndian.PutUint32(buf[41:45], hop.FeeBaseMSat)
			binary.BigEndian.PutUint32(buf[45:49], hop.FeeProportionalMillionths)
			binary.BigEndian.PutUint16(buf[49:51], hop.CLTVExpiryDelta)
			serialized = append(serialized, buf...)
		}
		return bech32.ConvertBits(serialized, 8, 5, true)
	case FeatureBits:
		return featureWords(value)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTagName, tag.Value)
	}
}

// packExact packs bytes into 5-bit words and checks the result has exactly
// the word count the wire format requires for the field.
func packExact(data []byte, wordLen int) ([]byte, error) {
	words, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return nil, err
	}
	if len(words) != wordLen {
		return nil, fmt.Errorf("payload packs into %d words, need %d",
			len(words), wordLen)
	}
	return words, nil
}

// writeTaggedFields appends the wire form of all tags, in order, to words.
func writeTaggedFields(words []byte, tags []Tag) ([]byte, error) {
	for _, tag := range tags {
		data, err := tagDataWords(tag)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", tag.Type.Name(), err)
		}
		if len(data) > 1023 {
			return nil, fmt.Errorf("tag %s: payload of %d words exceeds 10-bit length",
				tag.Type.Name(), len(data))
		}
		words = append(words, byte(tag.Type), byte(len(data)>>5), byte(len(data)&31))
		words = append(words, data...)
	}
	return words, nil
}

// parseTaggedFields walks the tagged fields of the data part and decodes
// every known field into its typed form. Unknown type codes and known
// fields with unexpected payload lengths are skipped, as BOLT 11 requires
// of forward-compatible readers. Field order is preserved.
func parseTaggedFields(fields []byte) ([]Tag, error) {
	var tags []Tag

	index := 0
	for len(fields)-index > 0 {
		// A field needs at least the type word and two length words.
		if len(fields)-index < 3 {
			return nil, ErrBrokenTaggedField
		}

		typ := TagType(fields[index])
		dataLength := int(fields[index+1])<<5 | int(fields[index+2])
		if len(fields) < index+3+dataLength {
			return nil, ErrTagExtendsBeyondData
		}
		data := fields[index+3 : index+3+dataLength]
		index += 3 + dataLength

		value, err := parseTagValue(typ, data)
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", typ.Name(), err)
		}
		if value == nil {
			// Unknown type code or a known field of the wrong
			// length, skipped without failing the decode.
			continue
		}

		tags = append(tags, Tag{Type: typ, Value: value})
	}

	return tags, nil
}

// parseTagValue decodes a single tagged field payload. It returns a nil
// value without an error when the field should be skipped.
func parseTagValue(typ TagType, data []byte) (TagValue, error) {
	switch typ {
	case TagPaymentHash:
		hash, err := unpackExact32(data)
		if err != nil || hash == nil {
			return nil, err
		}
		return PaymentHash(*hash), nil

	case TagPaymentSecret:
		secret, err := unpackExact32(data)
		if err != nil || secret == nil {
			return nil, err
		}
		return PaymentSecret(*secret), nil

	case TagPurposeCommitHash:
		hash, err := unpackExact32(data)
		if err != nil || hash == nil {
			return nil, err
		}
		return PurposeCommitHash(*hash), nil

	case TagPayee:
		if len(data) != pubKeyWordLen {
			return nil, nil
		}
		keyBytes, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, err
		}
		var payee Payee
		copy(payee[:], keyBytes)
		return payee, nil

	case TagDescription:
		description, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, err
		}
		return Description(description), nil

	case TagMetadata:
		metadata, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, err
		}
		return Metadata(metadata), nil

	case TagExpireTime:
		seconds, err := base32ToUint64(data)
		if err != nil {
			return nil, nil
		}
		return ExpireTime(seconds), nil

	case TagMinFinalCltvExpiry:
		delta, err := base32ToUint64(data)
		if err != nil {
			return nil, nil
		}
		return MinFinalCltvExpiry(delta), nil

	case TagFallbackAddress:
		if len(data) < 1 {
			return nil, nil
		}
		hash, err := bech32.ConvertBits(data[1:], 5, 8, false)
		if err != nil {
			return nil, err
		}
		return FallbackAddress{Version: data[0], Hash: hash}, nil

	case TagRouteHint:
		serialized, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, err
		}
		if len(serialized)%hopHintLen != 0 {
			return nil, nil
		}
		hint := make(RouteHint, 0, len(serialized)/hopHintLen)
		for len(serialized) > 0 {
			var hop HopHint
			copy(hop.NodeID[:], serialized[:33])
			hop.ChannelID = binary.BigEndian.Uint64(serialized[33:41])
			hop.FeeBaseMSat = binary.BigEndian.Uint32(serialized[41:45])
			hop.FeeProportionalMillionths = binary.BigEndian.Uint32(serialized[45:49])
			hop.CLTVExpiryDelta = binary.BigEndian.Uint16(serialized[49:51])
			hint = append(hint, hop)
			serialized = serialized[hopHintLen:]
		}
		return hint, nil

	case TagFeatureBits:
		return parseFeatureBits(data), nil

	default:
		return nil, nil
	}
}

// unpackExact32 converts a 52-word payload back into 32 bytes, returning nil
// for payloads of any other length so the caller skips the field.
func unpackExact32(data []byte) (*[32]byte, error) {
	if len(data) != hashWordLen {
		return nil, nil
	}
	unpacked, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}
	var out [32]byte
	copy(out[:], unpacked)
	return &out, nil
}

// base32ToUint64 interprets big-endian 5-bit words as an unsigned integer.
func base32ToUint64(data []byte) (uint64, error) {
	// 13 words hold up to 65 bits; anything longer cannot fit.
	if len(data) > 13 {
		return 0, fmt.Errorf("cannot parse %d words as uint64", len(data))
	}

	value := uint64(0)
	for _, word := range data {
		value = value<<5 | uint64(word)
	}
	return value, nil
}

// uint64ToBase32 renders an unsigned integer as big-endian 5-bit words using
// as few words as possible. Zero encodes to a single zero word.
func uint64ToBase32(num uint64) []byte {
	if num == 0 {
		return []byte{0}
	}

	words := make([]byte, 13)
	i := 13
	for num > 0 {
		i--
		words[i] = byte(num & 31)
		num >>= 5
	}
	return words[i:]
}
