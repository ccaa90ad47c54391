package connector

import (
	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
)

// Connector is one way of reaching a wallet. Its kind is fixed when it is created.
type Connector struct {
	kind     entity.ConnectorKind
	provider port.WalletProvider
}

// New creates a connector of the given kind over provider.
func New(kind entity.ConnectorKind, provider port.WalletProvider) *Connector {
	return &Connector{kind: kind, provider: provider}
}

// NewInjected creates a browser-extension style connector.
func NewInjected(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorInjected, provider)
}

// NewWalletConnect creates a WalletConnect bridge connector.
func NewWalletConnect(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorWalletConnect, provider)
}

// NewLattice creates a GridPlus Lattice connector.
func NewLattice(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorLattice, provider)
}

// NewWalletLink creates a Coinbase WalletLink connector.
func NewWalletLink(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorWalletLink, provider)
}

// NewFortmatic creates a Fortmatic connector.
func NewFortmatic(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorFortmatic, provider)
}

// NewPortis creates a Portis connector.
func NewPortis(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorPortis, provider)
}

// NewKeystone creates a Keystone hardware wallet connector.
func NewKeystone(provider port.WalletProvider) *Connector {
	return New(entity.ConnectorKeystone, provider)
}

// Kind returns the connector kind. A nil connector is ConnectorUnknown.
func (c *Connector) Kind() entity.ConnectorKind {
	if c == nil {
		return entity.ConnectorUnknown
	}
	return c.kind
}

// Provider returns the wallet request surface, or nil.
func (c *Connector) Provider() port.WalletProvider {
	if c == nil {
		return nil
	}
	return c.provider
}

// ParseKind maps a configuration name to a connector kind.
func ParseKind(name string) entity.ConnectorKind {
	for _, k := range []entity.ConnectorKind{
		entity.ConnectorInjected,
		entity.ConnectorWalletConnect,
		entity.ConnectorLattice,
		entity.ConnectorWalletLink,
		entity.ConnectorFortmatic,
		entity.ConnectorPortis,
		entity.ConnectorKeystone,
	} {
		if k.String() == name {
			return k
		}
	}
	return entity.ConnectorUnknown
}
