package bolt11

import "errors"

var (
	// ErrTooShort is returned when the data part of an invoice cannot hold
	// the timestamp and signature envelope.
	ErrTooShort = errors.New("invoice data too short")

	// ErrUnknownNetwork is returned when the prefix after "ln" matches no
	// known network.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidAmount is returned when the amount token of the
	// human-readable part does not follow the BOLT 11 grammar.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPicoNotMultipleOfTen is returned for pico-bitcoin amounts that
	// are not multiples of 10 and therefore not expressible in whole
	// millisatoshis.
	ErrPicoNotMultipleOfTen = errors.New("pico amount must be a multiple of 10")

	// ErrUnknownTagName is returned at encode time for a tag value of a
	// type the codec does not know how to serialize.
	ErrUnknownTagName = errors.New("unknown tag")

	// ErrBrokenTaggedField is returned when the final tagged field does
	// not have enough words left for its type and length.
	ErrBrokenTaggedField = errors.New("last tagged field is broken")

	// ErrTagExtendsBeyondData is returned when a tagged field declares a
	// length larger than the remaining data.
	ErrTagExtendsBeyondData = errors.New("tagged field extends beyond data")

	// ErrOddHexLength is returned when a hex string with an odd number of
	// digits is given where a byte payload is expected.
	ErrOddHexLength = errors.New("hex string must have an even length")

	// ErrMissingPaymentHash is returned when signing an invoice without a
	// payment hash tag.
	ErrMissingPaymentHash = errors.New("missing payment hash tag")

	// ErrMissingPaymentSecret is returned when signing an invoice without
	// a payment secret tag.
	ErrMissingPaymentSecret = errors.New("missing payment secret tag")

	// ErrMissingDescription is returned when an invoice carries neither a
	// description nor a purpose commit hash.
	ErrMissingDescription = errors.New("either description or purpose commit hash must be set")

	// ErrTimestampTooLarge is returned when the timestamp does not fit the
	// 35 bits the wire format reserves for it.
	ErrTimestampTooLarge = errors.New("timestamp does not fit in 35 bits")

	// ErrFractionalSatoshis is returned by HRPToSatoshis when the amount
	// is not a whole number of satoshis.
	ErrFractionalSatoshis = errors.New("amount is not a whole number of satoshis")
)
