package networkdefinition

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"network_switcher/internal/pkg/logger"
)

func TestSwitchableChainsResolve(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop())

	ids := p.SupportedChainIDs()
	require.NotEmpty(t, ids)

	for _, id := range ids {
		def, ok := p.GetNetworkDefinitionByChainID(id)
		require.True(t, ok, "chain %d must resolve", id)
		assert.Equal(t, id, def.ChainID)
		assert.Equal(t, "0x"+strconv.FormatUint(id, 16), def.HexChainID())
		assert.NotEmpty(t, def.RPCURLs, "chain %d needs an rpc url", id)
		assert.False(t, def.Testnet)
	}
}

func TestSwitchListOrder(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop())

	assert.Equal(t, []uint64{137, 43114, 250, 56, 1666600000, 42220, 66, 128}, p.SupportedChainIDs())

	names := make([]string, 0)
	for _, def := range p.SwitchableNetworks() {
		names = append(names, def.Identifier)
	}
	assert.Equal(t, []string{"matic", "avalanche", "fantom", "bsc", "harmony", "celo", "okex", "heco"}, names)
}

func TestSupportedChainIDsReturnsCopy(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop())

	ids := p.SupportedChainIDs()
	ids[0] = 1

	assert.Equal(t, uint64(137), p.SupportedChainIDs()[0])
}

func TestLookup(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop())

	t.Run("testnets are in the catalog but not switchable", func(t *testing.T) {
		def, ok := p.GetNetworkDefinitionByChainID(42)
		require.True(t, ok)
		assert.True(t, def.Testnet)
		assert.Equal(t, "0x2a", def.HexChainID())
		assert.NotContains(t, p.SupportedChainIDs(), uint64(42))
	})

	t.Run("unknown chain", func(t *testing.T) {
		_, ok := p.GetNetworkDefinitionByChainID(1)
		assert.False(t, ok)
	})

	t.Run("by identifier", func(t *testing.T) {
		def, ok := p.GetNetworkDefinitionByName("fantom")
		require.True(t, ok)
		assert.Equal(t, uint64(250), def.ChainID)
		assert.Equal(t, "FTM", def.NativeCurrency.Symbol)

		_, ok = p.GetNetworkDefinitionByName("ethereum")
		assert.False(t, ok)
	})

	t.Run("all definitions sorted", func(t *testing.T) {
		all := p.GetAllNetworkDefinitions()
		require.Len(t, all, 12)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ChainID, all[i].ChainID)
		}
	})
}

func TestHarmonyAddParams(t *testing.T) {
	params := Harmony.AddParams()

	assert.Equal(t, "0x63564c40", params.ChainID)
	assert.Equal(t, "Harmony", params.ChainName)
	assert.Len(t, params.RPCURLs, 4)
	assert.Equal(t, []string{"https://explorer.harmony.one/"}, params.BlockExplorerURLs)
}

func TestNilProvider(t *testing.T) {
	var p *NetworkDefinitionProvider

	assert.Empty(t, p.GetAllNetworkDefinitions())
	assert.Empty(t, p.SupportedChainIDs())
	_, ok := p.GetNetworkDefinitionByChainID(137)
	assert.False(t, ok)
}
