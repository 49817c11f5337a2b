package bolt11

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkFromHRP(t *testing.T) {
	tests := []struct {
		hrp     string
		network *Network
		token   string
	}{
		{"bc", MainNet, ""},
		{"bc2500u", MainNet, "2500u"},
		{"tb20m", TestNet, "20m"},
		{"tbs10n", SigNet, "10n"},
		{"bcrt1m", Regtest, "1m"},
		{"sb", SimNet, ""},
		// The regtest prefix must win over the shorter mainnet one.
		{"bcrt", Regtest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.hrp, func(t *testing.T) {
			network, token, err := networkFromHRP(tt.hrp)
			require.NoError(t, err)
			require.Equal(t, tt.network, network)
			require.Equal(t, tt.token, token)
		})
	}
}

func TestNetworkFromHRPUnknown(t *testing.T) {
	_, _, err := networkFromHRP("xyz123")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestParseNetwork(t *testing.T) {
	for _, name := range []string{"bitcoin", "testnet", "signet", "regtest", "simnet"} {
		network, err := ParseNetwork(name)
		require.NoError(t, err)
		require.Equal(t, name, network.Name)
		require.NotNil(t, network.Params)
	}

	_, err := ParseNetwork("litecoin")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestNetworkVersionBytes(t *testing.T) {
	require.Equal(t, byte(0x00), MainNet.P2pkhVersion)
	require.Equal(t, byte(0x05), MainNet.P2shVersion)
	require.Equal(t, byte(0x6f), TestNet.P2pkhVersion)
	require.Equal(t, byte(0xc4), TestNet.P2shVersion)
}
