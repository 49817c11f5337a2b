package bolt11

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Secp256k1 is the cryptographic backend the codec signs and recovers with.
// Signatures are 64-byte compact R concatenated with S; public keys are
// 33-byte compressed SEC1 encodings. Implementations must produce canonical
// low-S signatures; Recover may reject non-canonical S, the decoder handles
// normalization itself.
type Secp256k1 interface {
	// SHA256 hashes the message.
	SHA256(message []byte) [32]byte

	// SignRecoverable signs the 32-byte hash with the 32-byte private
	// key, returning the compact signature and a recovery id in 0..3.
	SignRecoverable(hash []byte, privKey []byte) (sig [64]byte, recoveryID byte, err error)

	// Recover reconstructs the compressed public key that produced the
	// signature over the hash.
	Recover(hash []byte, sig [64]byte, recoveryID byte) ([]byte, error)

	// PublicKey derives the compressed public key of a private key.
	PublicKey(privKey []byte) ([]byte, error)
}

// compactHeaderOffset is the value the recovery id is offset by in the
// header byte of a compact signature over a compressed key.
const compactHeaderOffset = 27 + 4

// DefaultProvider is the btcec-backed Secp256k1 used by Decode and Sign.
var DefaultProvider Secp256k1 = btcecProvider{}

// btcecProvider implements Secp256k1 on top of btcec.
type btcecProvider struct{}

func (btcecProvider) SHA256(message []byte) [32]byte {
	var hash [32]byte
	copy(hash[:], chainhash.HashB(message))
	return hash
}

func (btcecProvider) SignRecoverable(hash []byte, privKey []byte) ([64]byte, byte, error) {
	var sig [64]byte

	if len(privKey) != 32 {
		return sig, 0, fmt.Errorf("private key must be 32 bytes, got %d",
			len(privKey))
	}

	key, _ := btcec.PrivKeyFromBytes(privKey)
	compact, err := ecdsa.SignCompact(key, hash, true)
	if err != nil {
		return sig, 0, err
	}

	copy(sig[:], compact[1:])
	return sig, compact[0] - compactHeaderOffset, nil
}

func (btcecProvider) Recover(hash []byte, sig [64]byte, recoveryID byte) ([]byte, error) {
	compact := make([]byte, 65)
	compact[0] = compactHeaderOffset + recoveryID
	copy(compact[1:], sig[:])

	pubKey, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, err
	}
	return pubKey.SerializeCompressed(), nil
}

func (btcecProvider) PublicKey(privKey []byte) ([]byte, error) {
	if len(privKey) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d",
			len(privKey))
	}

	_, pubKey := btcec.PrivKeyFromBytes(privKey)
	return pubKey.SerializeCompressed(), nil
}
