package bolt11

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/BoltzExchange/go-bolt11/bech32"
)

// Decode parses a payment request with the btcec-backed default provider.
func Decode(paymentRequest string) (*Invoice, error) {
	return DecodeWithProvider(paymentRequest, DefaultProvider)
}

// DecodeWithProvider parses and verifies the bech32 envelope of a payment
// request and decodes its timestamp, tagged fields and signature. The payee
// node key comes from the payee tag when present, otherwise it is recovered
// from the signature; a failed recovery leaves it nil without failing the
// decode.
func DecodeWithProvider(paymentRequest string, provider Secp256k1) (*Invoice, error) {
	hrp, data, err := bech32.Decode(paymentRequest)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(hrp, "ln") {
		return nil, fmt.Errorf("%w: human-readable part %q does not start with \"ln\"",
			ErrUnknownNetwork, hrp)
	}

	network, amountToken, err := networkFromHRP(hrp[2:])
	if err != nil {
		return nil, err
	}

	invoice := &Invoice{
		Network:        network,
		PaymentRequest: strings.ToLower(paymentRequest),
		Complete:       true,
	}

	if amountToken != "" {
		msat, err := decodeAmount(amountToken)
		if err != nil {
			return nil, err
		}
		invoice.MilliSat = &msat
	}

	// The data section must at least hold the timestamp and the
	// signature envelope.
	if len(data) < timestampWordLen+signatureWordLen {
		return nil, fmt.Errorf("%w: %d words", ErrTooShort, len(data))
	}

	signedData := data[:len(data)-signatureWordLen]

	timestamp, err := base32ToUint64(signedData[:timestampWordLen])
	if err != nil {
		return nil, err
	}
	invoice.Timestamp = timestamp

	invoice.Tags, err = parseTaggedFields(signedData[timestampWordLen:])
	if err != nil {
		return nil, err
	}

	// The last 104 words are 103 words of compact signature followed by
	// one word carrying the recovery id in its low two bits.
	sigWords := data[len(data)-signatureWordLen:]
	sigBytes, err := bech32.ConvertBits(sigWords[:signatureWordLen-1], 5, 8, false)
	if err != nil {
		return nil, err
	}

	var sig [64]byte
	copy(sig[:], sigBytes)
	invoice.Signature = append([]byte(nil), sig[:]...)
	invoice.RecoveryFlag = sigWords[signatureWordLen-1] & 0x03

	invoice.PayeeNodeKey = derivePayeeKey(invoice, provider, hrp, signedData, sig)

	return invoice, nil
}

// derivePayeeKey resolves the payee node key of a decoded invoice. A payee
// tag takes precedence; otherwise the key is recovered from the signature.
// Both paths degrade to nil rather than failing the decode.
func derivePayeeKey(invoice *Invoice, provider Secp256k1, hrp string,
	signedData []byte, sig [64]byte) *btcec.PublicKey {

	if payee := invoice.Payee(); payee != nil {
		if key, err := payee.PubKey(); err == nil {
			return key
		}
	}

	hash, err := preimageHash(hrp, signedData, provider)
	if err != nil {
		return nil
	}

	key, err := recoverPayeeKey(provider, hash, sig, invoice.RecoveryFlag)
	if err != nil {
		return nil
	}
	return key
}
