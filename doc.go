// Package bolt11 encodes, signs and decodes BOLT 11 Lightning Network
// payment requests.
//
// An invoice goes through three states. Encode assembles and validates an
// unsigned invoice from its network, amount and tagged fields. Sign
// consumes the unsigned invoice together with a private key and produces
// the completed invoice with its serialized bech32 payment request. Decode
// reverses the process, verifying the checksum and recovering the payee
// node key from the signature.
//
// The codec is pure: it keeps no state between calls and is safe for
// concurrent use. Cryptographic operations go through the Secp256k1
// interface; DefaultProvider backs it with btcec.
package bolt11
