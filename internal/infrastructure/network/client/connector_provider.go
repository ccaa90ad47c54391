package client

import (
	"network_switcher/internal/app/connector"
	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
)

// ConnectorProvider owns the injected connector singleton and the active connector.
type ConnectorProvider struct {
	injected *connector.Connector
	active   *connector.Connector
}

// NewConnectorProvider wires wallet behind a connector of the configured kind.
// The injected singleton always exists; it carries the wallet only when kind
// is ConnectorInjected.
func NewConnectorProvider(kind entity.ConnectorKind, wallet port.WalletProvider, log port.Logger) *ConnectorProvider {
	p := &ConnectorProvider{}

	if kind == entity.ConnectorInjected {
		p.injected = connector.NewInjected(wallet)
		p.active = p.injected
	} else {
		p.injected = connector.NewInjected(nil)
		p.active = connector.New(kind, wallet)
	}

	log.Info("Wallet connector configured", "kind", kind.String())
	return p
}

// Injected returns the injected connector singleton.
func (p *ConnectorProvider) Injected() *connector.Connector {
	return p.injected
}

// Active returns the connector the wallet is reached through.
func (p *ConnectorProvider) Active() *connector.Connector {
	return p.active
}
