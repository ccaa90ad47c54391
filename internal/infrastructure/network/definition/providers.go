package networkdefinition

import (
	"fmt"
	"sort"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
)

// NetworkDefinitionProvider serves the closed, read-only network catalog.
// It is built once at start-up and is safe for concurrent readers.
type NetworkDefinitionProvider struct {
	logger       port.Logger
	byChainID    map[uint64]entity.NetworkDefinition
	byIdentifier map[string]entity.NetworkDefinition
	switchable   []uint64
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)

var ethereumCurrency = entity.NativeCurrency{Name: "Ethereum", Symbol: "ETH", Decimals: 18}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ropsten = entity.NetworkDefinition{
		ChainID:           3,
		Name:              "Ropsten",
		Identifier:        "ropsten",
		Label:             "Ropsten",
		NativeCurrency:    ethereumCurrency,
		RPCURLs:           []string{"https://ropsten.infura.io/v3"},
		BlockExplorerURLs: []string{"https://ropsten.etherscan.com"},
		Testnet:           true,
	}
	Rinkeby = entity.NetworkDefinition{
		ChainID:           4,
		Name:              "Rinkeby",
		Identifier:        "rinkeby",
		Label:             "Rinkeby",
		NativeCurrency:    ethereumCurrency,
		RPCURLs:           []string{"https://rinkeby.infura.io/v3"},
		BlockExplorerURLs: []string{"https://rinkeby.etherscan.com"},
		Testnet:           true,
	}
	Goerli = entity.NetworkDefinition{
		ChainID:           5,
		Name:              "Görli",
		Identifier:        "goerli",
		Label:             "Görli",
		NativeCurrency:    ethereumCurrency,
		RPCURLs:           []string{"https://goerli.infura.io/v3"},
		BlockExplorerURLs: []string{"https://goerli.etherscan.com"},
		Testnet:           true,
	}
	Kovan = entity.NetworkDefinition{
		ChainID:           42,
		Name:              "Kovan",
		Identifier:        "kovan",
		Label:             "Kovan",
		NativeCurrency:    ethereumCurrency,
		RPCURLs:           []string{"https://kovan.infura.io/v3"},
		BlockExplorerURLs: []string{"https://kovan.etherscan.com"},
		Testnet:           true,
	}
	Fantom = entity.NetworkDefinition{
		ChainID:           250,
		Name:              "Fantom",
		Identifier:        "fantom",
		Label:             "Fantom",
		NativeCurrency:    entity.NativeCurrency{Name: "Fantom", Symbol: "FTM", Decimals: 18},
		RPCURLs:           []string{"https://rpcapi.fantom.network"},
		BlockExplorerURLs: []string{"https://ftmscan.com"},
	}
	BSC = entity.NetworkDefinition{
		ChainID:           56,
		Name:              "Binance Smart Chain",
		Identifier:        "bsc",
		Label:             "BSC",
		NativeCurrency:    entity.NativeCurrency{Name: "Binance Coin", Symbol: "BNB", Decimals: 18},
		RPCURLs:           []string{"https://bsc-dataseed.binance.org"},
		BlockExplorerURLs: []string{"https://bscscan.com"},
	}
	Matic = entity.NetworkDefinition{
		ChainID:           137,
		Name:              "Matic",
		Identifier:        "matic",
		Label:             "Polygon",
		NativeCurrency:    entity.NativeCurrency{Name: "Matic", Symbol: "MATIC", Decimals: 18},
		RPCURLs:           []string{"https://polygon-rpc.com"},
		BlockExplorerURLs: []string{"https://polygonscan.com"},
	}
	Heco = entity.NetworkDefinition{
		ChainID:           128,
		Name:              "Heco",
		Identifier:        "heco",
		Label:             "HECO",
		NativeCurrency:    entity.NativeCurrency{Name: "Heco Token", Symbol: "HT", Decimals: 18},
		RPCURLs:           []string{"https://http-mainnet.hecochain.com"},
		BlockExplorerURLs: []string{"https://hecoinfo.com"},
	}
	Harmony = entity.NetworkDefinition{
		ChainID:        1666600000,
		Name:           "Harmony",
		Identifier:     "harmony",
		Label:          "Harmony",
		NativeCurrency: entity.NativeCurrency{Name: "One Token", Symbol: "ONE", Decimals: 18},
		RPCURLs: []string{
			"https://api.harmony.one",
			"https://s1.api.harmony.one",
			"https://s2.api.harmony.one",
			"https://s3.api.harmony.one",
		},
		BlockExplorerURLs: []string{"https://explorer.harmony.one/"},
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:           43114,
		Name:              "Avalanche Mainnet C-Chain",
		Identifier:        "avalanche",
		Label:             "Avalanche",
		NativeCurrency:    entity.NativeCurrency{Name: "Avalanche Token", Symbol: "AVAX", Decimals: 18},
		RPCURLs:           []string{"https://api.avax.network/ext/bc/C/rpc"},
		BlockExplorerURLs: []string{"https://snowtrace.io"},
	}
	OKEx = entity.NetworkDefinition{
		ChainID:           66,
		Name:              "OKEx",
		Identifier:        "okex",
		Label:             "OKEx",
		NativeCurrency:    entity.NativeCurrency{Name: "OKEx Token", Symbol: "OKT", Decimals: 18},
		RPCURLs:           []string{"https://exchainrpc.okex.org"},
		BlockExplorerURLs: []string{"https://www.oklink.com/okexchain"},
	}
	Celo = entity.NetworkDefinition{
		ChainID:           42220,
		Name:              "Celo",
		Identifier:        "celo",
		Label:             "Celo",
		NativeCurrency:    entity.NativeCurrency{Name: "Celo", Symbol: "CELO", Decimals: 18},
		RPCURLs:           []string{"https://forno.celo.org"},
		BlockExplorerURLs: []string{"https://explorer.celo.org"},
	}
)

// allKnownDefinitions lists every descriptor in the catalog.
var allKnownDefinitions = []entity.NetworkDefinition{
	Ropsten, Rinkeby, Goerli, Kovan,
	Fantom, BSC, Matic, Heco, Harmony, Avalanche, OKEx, Celo,
}

// switchableChainIDs is the order networks are offered for switching.
var switchableChainIDs = []uint64{
	Matic.ChainID,
	Avalanche.ChainID,
	Fantom.ChainID,
	BSC.ChainID,
	Harmony.ChainID,
	Celo.ChainID,
	OKEx.ChainID,
	Heco.ChainID,
}

// NewNetworkDefinitionProvider creates the catalog from the built-in definitions.
func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:       log,
		byChainID:    make(map[uint64]entity.NetworkDefinition, len(allKnownDefinitions)),
		byIdentifier: make(map[string]entity.NetworkDefinition, len(allKnownDefinitions)),
	}

	for _, def := range allKnownDefinitions {
		if _, dup := p.byChainID[def.ChainID]; dup {
			// a duplicate here is a programming error in the table above
			panic(fmt.Sprintf("duplicate network definition for chain %d", def.ChainID))
		}
		p.byChainID[def.ChainID] = def
		p.byIdentifier[def.Identifier] = def
	}

	for _, id := range switchableChainIDs {
		if _, ok := p.byChainID[id]; !ok {
			panic(fmt.Sprintf("switchable chain %d has no definition", id))
		}
	}
	p.switchable = append([]uint64(nil), switchableChainIDs...)

	p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Networks: %d, switchable: %d", len(p.byChainID), len(p.switchable)))
	for _, id := range p.switchable {
		def := p.byChainID[id]
		p.logger.Debug(fmt.Sprintf("  - Switchable network: %s (ID: %s, ChainID: %d, hex: %s)", def.Name, def.Identifier, def.ChainID, def.HexChainID()))
	}

	return p
}

// GetAllNetworkDefinitions returns every descriptor ordered by chain id.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.byChainID))
	for _, def := range p.byChainID {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ChainID < defs[j].ChainID })
	return defs
}

// GetNetworkDefinitionByName returns a network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.byIdentifier[identifier]
	return def, ok
}

// GetNetworkDefinitionByChainID returns a network definition by its chain ID.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.byChainID[chainID]
	return def, ok
}

// SupportedChainIDs returns a copy of the switch list.
func (p *NetworkDefinitionProvider) SupportedChainIDs() []uint64 {
	if p == nil {
		return []uint64{}
	}
	return append([]uint64(nil), p.switchable...)
}

// SwitchableNetworks resolves the switch list into descriptors, in order.
func (p *NetworkDefinitionProvider) SwitchableNetworks() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.switchable))
	for _, id := range p.switchable {
		defs = append(defs, p.byChainID[id])
	}
	return defs
}
