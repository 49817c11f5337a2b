package bolt11

import (
	"fmt"
	"time"
)

const (
	// timestampWordLen is the number of 5-bit words holding the
	// timestamp.
	timestampWordLen = 7

	// signatureWordLen is the number of 5-bit words holding the compact
	// signature and the recovery id word.
	signatureWordLen = 104

	// maxTimestamp is the largest creation time the 35 timestamp bits
	// can hold.
	maxTimestamp = 1<<(timestampWordLen*5) - 1
)

// Encode validates an invoice under construction and returns its unsigned
// form: timestamp defaulted, human-readable part derivable, signature still
// empty. Signing is a separate step so the private key never has to touch
// the code assembling the invoice.
func Encode(invoice *Invoice) (*Invoice, error) {
	if invoice.Network == nil {
		return nil, fmt.Errorf("%w: no network set", ErrUnknownNetwork)
	}

	if err := validateRequiredTags(invoice.Tags); err != nil {
		return nil, err
	}

	// Serializing the tags now surfaces unknown tag values and oversized
	// payloads before the caller gets an allegedly encodable invoice.
	if _, err := writeTaggedFields(nil, invoice.Tags); err != nil {
		return nil, err
	}

	unsigned := *invoice
	if unsigned.Timestamp == 0 {
		unsigned.Timestamp = uint64(time.Now().Unix())
	}
	if unsigned.Timestamp > maxTimestamp {
		return nil, fmt.Errorf("%w: %d", ErrTimestampTooLarge, unsigned.Timestamp)
	}

	unsigned.Signature = nil
	unsigned.RecoveryFlag = 0
	unsigned.PaymentRequest = ""
	unsigned.Complete = false

	return &unsigned, nil
}

// validateRequiredTags checks the invariants BOLT 11 places on a
// to-be-signed invoice: a payment hash, a payment secret, and either a
// description or a purpose commit hash.
func validateRequiredTags(tags []Tag) error {
	var hasHash, hasSecret, hasDescription bool
	for _, tag := range tags {
		switch tag.Value.(type) {
		case PaymentHash:
			hasHash = true
		case PaymentSecret:
			hasSecret = true
		case Description, PurposeCommitHash:
			hasDescription = true
		}
	}

	if !hasHash {
		return ErrMissingPaymentHash
	}
	if !hasSecret {
		return ErrMissingPaymentSecret
	}
	if !hasDescription {
		return ErrMissingDescription
	}
	return nil
}

// HRP builds the human-readable part of the invoice: "ln", the network
// prefix, and the amount token when an amount is set.
func (invoice *Invoice) HRP() (string, error) {
	if invoice.Network == nil {
		return "", fmt.Errorf("%w: no network set", ErrUnknownNetwork)
	}

	hrp := "ln" + invoice.Network.Bech32Prefix
	if invoice.MilliSat != nil {
		hrp += encodeAmount(*invoice.MilliSat)
	}
	return hrp, nil
}

// dataWords serializes the timestamp and tagged fields into 5-bit words,
// the part of the data section the signature commits to.
func (invoice *Invoice) dataWords() ([]byte, error) {
	if invoice.Timestamp > maxTimestamp {
		return nil, fmt.Errorf("%w: %d", ErrTimestampTooLarge, invoice.Timestamp)
	}

	// The timestamp occupies exactly 7 words, zero-padded at the front.
	timestamp := uint64ToBase32(invoice.Timestamp)
	words := make([]byte, timestampWordLen-len(timestamp), timestampWordLen+64)
	words = append(words, timestamp...)

	return writeTaggedFields(words, invoice.Tags)
}
