package port

import "network_switcher/internal/domain/entity"

// NetworkDefinitionProvider exposes the closed catalog of supported networks.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns every descriptor, testnets included, ordered by chain id.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByChainID returns the descriptor for chainID, or false.
	GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool)

	// GetNetworkDefinitionByName looks up a descriptor by its short identifier.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)

	// SupportedChainIDs returns the ordered user-facing switch list.
	SupportedChainIDs() []uint64
}
