package bolt11

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	// fallbackVersionP2PKH is the fallback address version of a
	// pay-to-pubkey-hash address.
	fallbackVersionP2PKH = 17

	// fallbackVersionP2SH is the fallback address version of a
	// pay-to-script-hash address.
	fallbackVersionP2SH = 18
)

// FallbackAddress is an on-chain address to pay when the Lightning payment
// cannot be completed. Versions 0 through 16 are segwit witness versions,
// 17 is P2PKH and 18 is P2SH. The raw hash is the canonical representation;
// Address renders it for a concrete network.
type FallbackAddress struct {
	Version byte
	Hash    []byte
}

func (FallbackAddress) taggedFieldValue() {}

// Address renders the fallback as a btcutil address on the given network.
func (f FallbackAddress) Address(network *Network) (btcutil.Address, error) {
	switch f.Version {
	case fallbackVersionP2PKH:
		return btcutil.NewAddressPubKeyHash(f.Hash, network.Params)

	case fallbackVersionP2SH:
		return btcutil.NewAddressScriptHashFromHash(f.Hash, network.Params)

	case 0:
		switch len(f.Hash) {
		case 20:
			return btcutil.NewAddressWitnessPubKeyHash(f.Hash, network.Params)
		case 32:
			return btcutil.NewAddressWitnessScriptHash(f.Hash, network.Params)
		default:
			return nil, fmt.Errorf("unknown witness program length %d",
				len(f.Hash))
		}

	case 1:
		return btcutil.NewAddressTaproot(f.Hash, network.Params)

	default:
		return nil, fmt.Errorf("no address form for witness version %d",
			f.Version)
	}
}

// NewFallbackAddress builds the fallback representation of a btcutil
// address.
func NewFallbackAddress(address btcutil.Address) (FallbackAddress, error) {
	var version byte
	switch addr := address.(type) {
	case *btcutil.AddressPubKeyHash:
		version = fallbackVersionP2PKH
	case *btcutil.AddressScriptHash:
		version = fallbackVersionP2SH
	case *btcutil.AddressWitnessPubKeyHash:
		version = addr.WitnessVersion()
	case *btcutil.AddressWitnessScriptHash:
		version = addr.WitnessVersion()
	case *btcutil.AddressTaproot:
		version = addr.WitnessVersion()
	default:
		return FallbackAddress{}, fmt.Errorf("unsupported fallback address type %T",
			address)
	}

	return FallbackAddress{
		Version: version,
		Hash:    address.ScriptAddress(),
	}, nil
}
