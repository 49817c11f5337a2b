package bolt11

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network identifies the chain an invoice pays on. The bech32 prefix is the
// part of the human-readable part between "ln" and the amount; the version
// bytes and witness versions describe how fallback addresses of the network
// are rendered.
type Network struct {
	Name                 string
	Bech32Prefix         string
	P2pkhVersion         byte
	P2shVersion          byte
	ValidWitnessVersions []byte

	// Params are the btcd chain parameters backing this network, used
	// when converting fallback addresses into btcutil addresses.
	Params *chaincfg.Params
}

var (
	MainNet = &Network{
		Name:                 "bitcoin",
		Bech32Prefix:         "bc",
		P2pkhVersion:         chaincfg.MainNetParams.PubKeyHashAddrID,
		P2shVersion:          chaincfg.MainNetParams.ScriptHashAddrID,
		ValidWitnessVersions: []byte{0, 1},
		Params:               &chaincfg.MainNetParams,
	}

	TestNet = &Network{
		Name:                 "testnet",
		Bech32Prefix:         "tb",
		P2pkhVersion:         chaincfg.TestNet3Params.PubKeyHashAddrID,
		P2shVersion:          chaincfg.TestNet3Params.ScriptHashAddrID,
		ValidWitnessVersions: []byte{0, 1},
		Params:               &chaincfg.TestNet3Params,
	}

	// SigNet shares the "tb" segwit prefix with testnet3 on-chain, so
	// BOLT 11 gave it the distinct "tbs" invoice prefix.
	SigNet = &Network{
		Name:                 "signet",
		Bech32Prefix:         "tbs",
		P2pkhVersion:         chaincfg.SigNetParams.PubKeyHashAddrID,
		P2shVersion:          chaincfg.SigNetParams.ScriptHashAddrID,
		ValidWitnessVersions: []byte{0, 1},
		Params:               &chaincfg.SigNetParams,
	}

	Regtest = &Network{
		Name:                 "regtest",
		Bech32Prefix:         "bcrt",
		P2pkhVersion:         chaincfg.RegressionNetParams.PubKeyHashAddrID,
		P2shVersion:          chaincfg.RegressionNetParams.ScriptHashAddrID,
		ValidWitnessVersions: []byte{0, 1},
		Params:               &chaincfg.RegressionNetParams,
	}

	SimNet = &Network{
		Name:                 "simnet",
		Bech32Prefix:         "sb",
		P2pkhVersion:         chaincfg.SimNetParams.PubKeyHashAddrID,
		P2shVersion:          chaincfg.SimNetParams.ScriptHashAddrID,
		ValidWitnessVersions: []byte{0, 1},
		Params:               &chaincfg.SimNetParams,
	}
)

// networks is ordered longest prefix first so that "bcrt" matches before
// "bc" and "tbs" before "tb".
var networks = []*Network{Regtest, SigNet, TestNet, SimNet, MainNet}

// ParseNetwork returns the predefined network with the given name.
func ParseNetwork(name string) (*Network, error) {
	for _, network := range networks {
		if network.Name == name {
			return network, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// networkFromHRP matches the part of the human-readable part after "ln"
// against the known network prefixes and returns the network together with
// the remaining amount token, which may be empty.
func networkFromHRP(hrp string) (*Network, string, error) {
	for _, network := range networks {
		if strings.HasPrefix(hrp, network.Bech32Prefix) {
			return network, hrp[len(network.Bech32Prefix):], nil
		}
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownNetwork, hrp)
}
