package entity

import (
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NativeCurrency describes the gas token of a network as wallets expect it.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// NetworkDefinition holds the parameters a wallet needs to add or switch to a chain.
// The numeric ChainID is canonical; the hex wire form is always derived from it.
type NetworkDefinition struct {
	ChainID           uint64         `json:"chainId" yaml:"chainId"`
	Name              string         `json:"chainName" yaml:"chainName"`
	Identifier        string         `json:"identifier" yaml:"identifier"` // short key, e.g. "matic", "bsc"
	Label             string         `json:"label" yaml:"label"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency" yaml:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls" yaml:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls" yaml:"blockExplorerUrls"`
	Testnet           bool           `json:"testnet" yaml:"testnet"`
}

// HexChainID returns the chain id in its wallet wire form ("0x" + lowercase hex).
func (d NetworkDefinition) HexChainID() string {
	return hexutil.EncodeUint64(d.ChainID)
}

// PrimaryRPCURL returns the first RPC endpoint, or "" when none is configured.
func (d NetworkDefinition) PrimaryRPCURL() string {
	if len(d.RPCURLs) == 0 {
		return ""
	}
	return d.RPCURLs[0]
}

// SwitchChainParams is the single parameter object of wallet_switchEthereumChain.
type SwitchChainParams struct {
	ChainID string `json:"chainId"`
}

// AddChainParams is the single parameter object of wallet_addEthereumChain (EIP-3085).
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

// SwitchParams builds the switch request parameters for this network.
func (d NetworkDefinition) SwitchParams() SwitchChainParams {
	return SwitchChainParams{ChainID: d.HexChainID()}
}

// AddParams builds the add-chain request parameters carrying the full descriptor.
func (d NetworkDefinition) AddParams() AddChainParams {
	rpcURLs := make([]string, len(d.RPCURLs))
	copy(rpcURLs, d.RPCURLs)
	explorers := make([]string, len(d.BlockExplorerURLs))
	copy(explorers, d.BlockExplorerURLs)

	return AddChainParams{
		ChainID:           d.HexChainID(),
		ChainName:         d.Name,
		NativeCurrency:    d.NativeCurrency,
		RPCURLs:           rpcURLs,
		BlockExplorerURLs: explorers,
	}
}

// NetworkOption is one entry of the network selection surface.
type NetworkOption struct {
	Network NetworkDefinition `json:"network"`
	Active  bool              `json:"active"`
}

// EndpointHealth is the probe outcome for one RPC URL.
type EndpointHealth struct {
	URL             string `json:"url"`
	Healthy         bool   `json:"healthy"`
	ReportedChainID uint64 `json:"reportedChainId,omitempty"`
	ChainIDMatches  bool   `json:"chainIdMatches"`
	LatencyMillis   int64  `json:"latencyMs"`
	Error           string `json:"error,omitempty"`
}

// NetworkHealth aggregates endpoint probes of one network.
// Healthy is true when at least one endpoint answered with the expected chain id.
type NetworkHealth struct {
	ChainID   uint64           `json:"chainId"`
	Name      string           `json:"name"`
	Healthy   bool             `json:"healthy"`
	Endpoints []EndpointHealth `json:"endpoints"`
	CheckedAt time.Time        `json:"checkedAt"`
}
