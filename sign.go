package bolt11

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/BoltzExchange/go-bolt11/bech32"
)

// Sign signs an invoice with the btcec-backed default provider and returns
// its completed form, including the serialized payment request.
func Sign(invoice *Invoice, privKey *btcec.PrivateKey) (*Invoice, error) {
	return SignWithProvider(invoice, privKey.Serialize(), DefaultProvider)
}

// SignWithProvider validates and signs an invoice. The signature commits to
// the human-readable part and the data words through the SHA-256 pre-image
// of §5 of BOLT 11; the serialized form appends the compact signature and
// the recovery id word to the data section.
func SignWithProvider(invoice *Invoice, privKey []byte, provider Secp256k1) (*Invoice, error) {
	unsigned, err := Encode(invoice)
	if err != nil {
		return nil, err
	}

	hrp, err := unsigned.HRP()
	if err != nil {
		return nil, err
	}
	words, err := unsigned.dataWords()
	if err != nil {
		return nil, err
	}

	hash, err := preimageHash(hrp, words, provider)
	if err != nil {
		return nil, err
	}

	sig, recoveryID, err := provider.SignRecoverable(hash[:], privKey)
	if err != nil {
		return nil, fmt.Errorf("sign invoice: %w", err)
	}

	payeeKeyBytes, err := provider.PublicKey(privKey)
	if err != nil {
		return nil, fmt.Errorf("derive payee key: %w", err)
	}
	payeeKey, err := btcec.ParsePubKey(payeeKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("derive payee key: %w", err)
	}

	sigWords, err := bech32.ConvertBits(append(sig[:], recoveryID), 8, 5, true)
	if err != nil {
		return nil, err
	}

	paymentRequest, err := bech32.Encode(hrp, append(words, sigWords...))
	if err != nil {
		return nil, err
	}

	signed := *unsigned
	signed.Signature = append([]byte(nil), sig[:]...)
	signed.RecoveryFlag = recoveryID
	signed.PayeeNodeKey = payeeKey
	signed.PaymentRequest = paymentRequest
	signed.Complete = true

	return &signed, nil
}

// preimageHash hashes the signing pre-image: the human-readable part as
// UTF-8 bytes followed by the data words expanded to bytes with zero bit
// padding.
func preimageHash(hrp string, words []byte, provider Secp256k1) ([32]byte, error) {
	expanded, err := bech32.ConvertBits(words, 5, 8, true)
	if err != nil {
		return [32]byte{}, err
	}

	var preimage strings.Builder
	preimage.Grow(len(hrp) + len(expanded))
	preimage.WriteString(hrp)
	preimage.Write(expanded)

	return provider.SHA256([]byte(preimage.String())), nil
}

// recoverPayeeKey recovers the signer's public key from the signature. A
// non-canonical S is tolerated: the original signature is tried first, then
// S is normalized to n−S with the recovery id's low bit flipped, which maps
// a high-S signature onto its canonical twin.
func recoverPayeeKey(provider Secp256k1, hash [32]byte, sig [64]byte,
	recoveryID byte) (*btcec.PublicKey, error) {

	keyBytes, err := provider.Recover(hash[:], sig, recoveryID)
	if err == nil {
		return btcec.ParsePubKey(keyBytes)
	}

	normalized, wasHighS := normalizeHighS(sig)
	if !wasHighS {
		return nil, err
	}

	keyBytes, err = provider.Recover(hash[:], normalized, recoveryID^1)
	if err != nil {
		return nil, err
	}
	return btcec.ParsePubKey(keyBytes)
}

// normalizeHighS replaces a high S component by n−S. The second return
// value reports whether the signature actually carried a high S.
func normalizeHighS(sig [64]byte) ([64]byte, bool) {
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return sig, false
	}
	if !s.IsOverHalfOrder() {
		return sig, false
	}

	s.Negate()
	sBytes := s.Bytes()

	normalized := sig
	copy(normalized[32:], sBytes[:])
	return normalized, true
}
