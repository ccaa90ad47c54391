package service

import (
	"network_switcher/internal/app/connector"
	"network_switcher/internal/domain/entity"
)

var identityByKind = map[entity.ConnectorKind]entity.ConnectorIdentity{
	entity.ConnectorWalletConnect: entity.IdentityWalletConnect,
	entity.ConnectorLattice:       entity.IdentityLattice,
	entity.ConnectorWalletLink:    entity.IdentityWalletLink,
	entity.ConnectorFortmatic:     entity.IdentityFortmatic,
	entity.ConnectorPortis:        entity.IdentityPortis,
	entity.ConnectorKeystone:      entity.IdentityKeystone,
}

// ConnectorResolver classifies the active connector for display.
type ConnectorResolver struct {
	injected *connector.Connector
}

// NewConnectorResolver creates a resolver that recognises injected as the browser wallet.
func NewConnectorResolver(injected *connector.Connector) *ConnectorResolver {
	return &ConnectorResolver{injected: injected}
}

// Resolve never fails: anything it cannot classify is IdentityUnknown.
// Only the configured injected instance is Injected; other connectors are
// classified by the kind they were created with.
func (r *ConnectorResolver) Resolve(c *connector.Connector) entity.ConnectorIdentity {
	if c == nil {
		return entity.IdentityUnknown
	}
	if r.injected != nil && c == r.injected {
		return entity.IdentityInjected
	}
	if id, ok := identityByKind[c.Kind()]; ok {
		return id
	}
	return entity.IdentityUnknown
}
