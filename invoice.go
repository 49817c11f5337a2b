package bolt11

import (
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

// DefaultExpirySeconds is the expiry implied when an invoice carries no
// expire_time tag.
const DefaultExpirySeconds = 3600

// Invoice is a BOLT 11 payment request, either under construction, signed,
// or decoded from its bech32 form.
//
// Tags preserves the order fields appear in on the wire, duplicates
// included; TagsObject and the typed accessors expose the last occurrence
// per field.
type Invoice struct {
	// Network is the chain the invoice pays on.
	Network *Network

	// MilliSat is the invoice amount. Nil for donation invoices that let
	// the payer choose an amount.
	MilliSat *MilliSatoshi

	// Timestamp is the creation time in seconds since the Unix epoch.
	Timestamp uint64

	// Tags are the tagged fields in wire order.
	Tags []Tag

	// Signature is the 64-byte compact R‖S signature. Empty until the
	// invoice is signed or decoded.
	Signature []byte

	// RecoveryFlag is the recovery id of the signature, in 0..3.
	RecoveryFlag byte

	// PayeeNodeKey is the public key of the payee, recovered from the
	// signature or taken from a payee tag. Nil when recovery failed.
	PayeeNodeKey *btcec.PublicKey

	// PaymentRequest is the serialized bech32 form. Empty until the
	// invoice is signed.
	PaymentRequest string

	// Complete is true once the invoice has been signed or decoded. Decoding
	// sets it without verifying the signature.
	Complete bool
}

// InvoiceOption configures an invoice under construction.
type InvoiceOption func(*Invoice)

// WithAmount sets the invoice amount in millisatoshis.
func WithAmount(msat MilliSatoshi) InvoiceOption {
	return func(invoice *Invoice) {
		invoice.MilliSat = &msat
	}
}

// WithAmountSat sets the invoice amount in whole satoshis.
func WithAmountSat(sat btcutil.Amount) InvoiceOption {
	return func(invoice *Invoice) {
		msat := MilliSatoshi(sat) * mSatPerSat
		invoice.MilliSat = &msat
	}
}

// WithTimestamp sets the creation time, overriding the default of now.
func WithTimestamp(timestamp uint64) InvoiceOption {
	return func(invoice *Invoice) {
		invoice.Timestamp = timestamp
	}
}

// NewInvoice assembles an unsigned invoice from its network and tags.
func NewInvoice(network *Network, tags []Tag, options ...InvoiceOption) *Invoice {
	invoice := &Invoice{
		Network: network,
		Tags:    tags,
	}
	for _, option := range options {
		option(invoice)
	}
	return invoice
}

// TagsObject returns the tags keyed by canonical field name. When a field
// occurs more than once the last occurrence wins.
func (invoice *Invoice) TagsObject() map[string]TagValue {
	object := make(map[string]TagValue, len(invoice.Tags))
	for _, tag := range invoice.Tags {
		object[tag.Type.Name()] = tag.Value
	}
	return object
}

// lastTag returns the last occurrence of the given field, or nil.
func (invoice *Invoice) lastTag(typ TagType) TagValue {
	for i := len(invoice.Tags) - 1; i >= 0; i-- {
		if invoice.Tags[i].Type == typ {
			return invoice.Tags[i].Value
		}
	}
	return nil
}

// PaymentHash returns the payment hash tag, or nil.
func (invoice *Invoice) PaymentHash() *[32]byte {
	if value, ok := invoice.lastTag(TagPaymentHash).(PaymentHash); ok {
		hash := [32]byte(value)
		return &hash
	}
	return nil
}

// PaymentSecret returns the payment secret tag, or nil.
func (invoice *Invoice) PaymentSecret() *[32]byte {
	if value, ok := invoice.lastTag(TagPaymentSecret).(PaymentSecret); ok {
		secret := [32]byte(value)
		return &secret
	}
	return nil
}

// PurposeCommitHash returns the description hash tag, or nil.
func (invoice *Invoice) PurposeCommitHash() *[32]byte {
	if value, ok := invoice.lastTag(TagPurposeCommitHash).(PurposeCommitHash); ok {
		hash := [32]byte(value)
		return &hash
	}
	return nil
}

// Description returns the description tag. The second return value is false
// when the invoice has none.
func (invoice *Invoice) Description() (string, bool) {
	if value, ok := invoice.lastTag(TagDescription).(Description); ok {
		return string(value), true
	}
	return "", false
}

// Payee returns the payee tag, or nil.
func (invoice *Invoice) Payee() *Payee {
	if value, ok := invoice.lastTag(TagPayee).(Payee); ok {
		return &value
	}
	return nil
}

// Metadata returns the metadata tag, or nil.
func (invoice *Invoice) Metadata() []byte {
	if value, ok := invoice.lastTag(TagMetadata).(Metadata); ok {
		return []byte(value)
	}
	return nil
}

// Expiry returns the expire_time tag, or the 3600 second default.
func (invoice *Invoice) Expiry() uint64 {
	if value, ok := invoice.lastTag(TagExpireTime).(ExpireTime); ok {
		return uint64(value)
	}
	return DefaultExpirySeconds
}

// MinFinalCltvExpiry returns the min_final_cltv_expiry tag. The second
// return value is false when the invoice has none.
func (invoice *Invoice) MinFinalCltvExpiry() (uint64, bool) {
	if value, ok := invoice.lastTag(TagMinFinalCltvExpiry).(MinFinalCltvExpiry); ok {
		return uint64(value), true
	}
	return 0, false
}

// FallbackAddress returns the fallback address tag. The second return value
// is false when the invoice has none.
func (invoice *Invoice) FallbackAddress() (FallbackAddress, bool) {
	if value, ok := invoice.lastTag(TagFallbackAddress).(FallbackAddress); ok {
		return value, true
	}
	return FallbackAddress{}, false
}

// RouteHints returns all route hint tags in wire order.
func (invoice *Invoice) RouteHints() []RouteHint {
	var hints []RouteHint
	for _, tag := range invoice.Tags {
		if hint, ok := tag.Value.(RouteHint); ok {
			hints = append(hints, hint)
		}
	}
	return hints
}

// FeatureBits returns the feature bits tag. The second return value is
// false when the invoice has none.
func (invoice *Invoice) FeatureBits() (FeatureBits, bool) {
	if value, ok := invoice.lastTag(TagFeatureBits).(FeatureBits); ok {
		return value, true
	}
	return FeatureBits{}, false
}

// Satoshis returns the invoice amount in whole satoshis. The second return
// value is false for donation invoices and for amounts with a fractional
// satoshi part.
func (invoice *Invoice) Satoshis() (btcutil.Amount, bool) {
	if invoice.MilliSat == nil {
		return 0, false
	}
	return invoice.MilliSat.Satoshis()
}

// Time returns the creation time.
func (invoice *Invoice) Time() time.Time {
	return time.Unix(int64(invoice.Timestamp), 0).UTC()
}

// TimestampString renders the creation time as ISO-8601 UTC.
func (invoice *Invoice) TimestampString() string {
	return invoice.Time().Format(time.RFC3339)
}

// TimeExpireDate returns the instant the invoice expires.
func (invoice *Invoice) TimeExpireDate() time.Time {
	return time.Unix(int64(invoice.Timestamp+invoice.Expiry()), 0).UTC()
}

// TimeExpireDateString renders the expiry instant as ISO-8601 UTC.
func (invoice *Invoice) TimeExpireDateString() string {
	return invoice.TimeExpireDate().Format(time.RFC3339)
}
