package bolt11

import "fmt"

// FeatureName is the canonical name of a known feature bit pair.
type FeatureName string

const (
	FeatureDataLossProtect       FeatureName = "option_data_loss_protect"
	FeatureInitialRoutingSync    FeatureName = "initial_routing_sync"
	FeatureUpfrontShutdownScript FeatureName = "option_upfront_shutdown_script"
	FeatureGossipQueries         FeatureName = "gossip_queries"
	FeatureVarOnionOptin         FeatureName = "var_onion_optin"
	FeatureGossipQueriesEx       FeatureName = "gossip_queries_ex"
	FeatureStaticRemoteKey       FeatureName = "option_static_remotekey"
	FeaturePaymentSecret         FeatureName = "payment_secret"
	FeatureBasicMPP              FeatureName = "basic_mpp"
	FeatureSupportLargeChannel   FeatureName = "option_support_large_channel"
)

// featureOrder lists the known feature pairs; the pair at index k occupies
// bits 2k (required) and 2k+1 (supported).
var featureOrder = []FeatureName{
	FeatureDataLossProtect,
	FeatureInitialRoutingSync,
	FeatureUpfrontShutdownScript,
	FeatureGossipQueries,
	FeatureVarOnionOptin,
	FeatureGossipQueriesEx,
	FeatureStaticRemoteKey,
	FeaturePaymentSecret,
	FeatureBasicMPP,
	FeatureSupportLargeChannel,
}

// extraBitsStart is the first bit position past the known feature pairs.
const extraBitsStart = 20

// FeaturePair is the decoded state of one feature bit pair. The even bit
// makes the feature required; the odd bit alone marks it as supported.
type FeaturePair struct {
	Required  bool
	Supported bool
}

// ExtraBits collects set bits at positions past the known pairs.
type ExtraBits struct {
	StartBit int
	Bits     []int

	// HasRequired is true when any even (required) extra bit is set.
	HasRequired bool
}

// FeatureBits is the decoded feature bitfield of an invoice. Bit 0 is the
// least significant bit of the last wire word; the word length is preserved
// so the field round-trips bit for bit.
type FeatureBits struct {
	WordLength int
	Features   map[FeatureName]FeaturePair
	Extra      ExtraBits
}

func (FeatureBits) taggedFieldValue() {}

// bitAt reports whether bit position bit is set in the big-endian word view.
func bitAt(words []byte, bit int) bool {
	word := len(words) - 1 - bit/5
	return words[word]>>(uint(bit)%5)&1 == 1
}

// setBit sets bit position bit in the big-endian word view.
func setBit(words []byte, bit int) {
	word := len(words) - 1 - bit/5
	words[word] |= 1 << (uint(bit) % 5)
}

// parseFeatureBits decodes a feature bitfield payload.
func parseFeatureBits(words []byte) FeatureBits {
	totalBits := len(words) * 5

	features := FeatureBits{
		WordLength: len(words),
		Features:   make(map[FeatureName]FeaturePair),
		Extra:      ExtraBits{StartBit: extraBitsStart},
	}

	for k, name := range featureOrder {
		even := 2*k < totalBits && bitAt(words, 2*k)
		odd := 2*k+1 < totalBits && bitAt(words, 2*k+1)
		if !even && !odd {
			continue
		}
		features.Features[name] = FeaturePair{
			Required:  even,
			Supported: odd || even,
		}
	}

	for bit := extraBitsStart; bit < totalBits; bit++ {
		if !bitAt(words, bit) {
			continue
		}
		features.Extra.Bits = append(features.Extra.Bits, bit)
		if bit%2 == 0 {
			features.Extra.HasRequired = true
		}
	}

	return features
}

// featureWords serializes a feature bitfield back into 5-bit words, keeping
// the caller-provided word length. A zero word length is widened to the
// highest set bit.
func featureWords(features FeatureBits) ([]byte, error) {
	wordLength := features.WordLength
	if wordLength == 0 {
		wordLength = (highestFeatureBit(features) + 5) / 5
	}

	words := make([]byte, wordLength)
	totalBits := wordLength * 5

	set := func(bit int) error {
		if bit >= totalBits {
			return fmt.Errorf("feature bit %d exceeds %d-word field",
				bit, wordLength)
		}
		setBit(words, bit)
		return nil
	}

	for k, name := range featureOrder {
		pair, ok := features.Features[name]
		if !ok {
			continue
		}
		if pair.Required {
			if err := set(2 * k); err != nil {
				return nil, err
			}
		}
		if pair.Supported && !pair.Required {
			if err := set(2*k + 1); err != nil {
				return nil, err
			}
		}
	}

	for _, bit := range features.Extra.Bits {
		if err := set(bit); err != nil {
			return nil, err
		}
	}

	return words, nil
}

// highestFeatureBit returns the largest bit position the field sets, or -1
// for an empty field.
func highestFeatureBit(features FeatureBits) int {
	highest := -1
	for k, name := range featureOrder {
		pair, ok := features.Features[name]
		if !ok {
			continue
		}
		bit := 2 * k
		if pair.Supported && !pair.Required {
			bit = 2*k + 1
		}
		if bit > highest {
			highest = bit
		}
	}
	for _, bit := range features.Extra.Bits {
		if bit > highest {
			highest = bit
		}
	}
	return highest
}
