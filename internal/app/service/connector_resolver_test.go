package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"network_switcher/internal/app/connector"
	"network_switcher/internal/domain/entity"
)

func TestConnectorResolver(t *testing.T) {
	injected := connector.NewInjected(newScriptedWallet())
	resolver := NewConnectorResolver(injected)

	tests := []struct {
		name string
		conn *connector.Connector
		want entity.ConnectorIdentity
	}{
		{"injected singleton", injected, entity.IdentityInjected},
		{"walletconnect", connector.NewWalletConnect(nil), entity.IdentityWalletConnect},
		{"lattice", connector.NewLattice(nil), entity.IdentityLattice},
		{"walletlink", connector.NewWalletLink(nil), entity.IdentityWalletLink},
		{"fortmatic", connector.NewFortmatic(nil), entity.IdentityFortmatic},
		{"portis", connector.NewPortis(nil), entity.IdentityPortis},
		{"keystone", connector.NewKeystone(nil), entity.IdentityKeystone},
		{"unrelated connector without kind", &connector.Connector{}, entity.IdentityUnknown},
		{"another injected instance", connector.NewInjected(nil), entity.IdentityUnknown},
		{"nil connector", nil, entity.IdentityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.conn))
		})
	}
}

func TestConnectorResolver_NoInjectedConfigured(t *testing.T) {
	resolver := NewConnectorResolver(nil)

	assert.Equal(t, entity.IdentityUnknown, resolver.Resolve(connector.NewInjected(nil)))
	assert.Equal(t, entity.IdentityPortis, resolver.Resolve(connector.NewPortis(nil)))
}
