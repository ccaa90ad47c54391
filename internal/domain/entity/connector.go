package entity

// ConnectorKind identifies the family a wallet connector belongs to.
type ConnectorKind int

const (
	ConnectorUnknown ConnectorKind = iota
	ConnectorInjected
	ConnectorWalletConnect
	ConnectorLattice
	ConnectorWalletLink
	ConnectorFortmatic
	ConnectorPortis
	ConnectorKeystone
)

var connectorKindNames = map[ConnectorKind]string{
	ConnectorUnknown:       "unknown",
	ConnectorInjected:      "injected",
	ConnectorWalletConnect: "walletconnect",
	ConnectorLattice:       "lattice",
	ConnectorWalletLink:    "walletlink",
	ConnectorFortmatic:     "fortmatic",
	ConnectorPortis:        "portis",
	ConnectorKeystone:      "keystone",
}

func (k ConnectorKind) String() string {
	if name, ok := connectorKindNames[k]; ok {
		return name
	}
	return connectorKindNames[ConnectorUnknown]
}

// ConnectorIdentity is the display category of the active connector.
type ConnectorIdentity string

const (
	IdentityInjected      ConnectorIdentity = "Injected"
	IdentityWalletConnect ConnectorIdentity = "WalletConnect"
	IdentityLattice       ConnectorIdentity = "Lattice"
	IdentityWalletLink    ConnectorIdentity = "WalletLink"
	IdentityFortmatic     ConnectorIdentity = "Fortmatic"
	IdentityPortis        ConnectorIdentity = "Portis"
	IdentityKeystone      ConnectorIdentity = "Keystone"
	IdentityUnknown       ConnectorIdentity = "Unknown"
)

var identityIcons = map[ConnectorIdentity]string{
	IdentityInjected:      "images/metamask.png",
	IdentityWalletConnect: "images/walletConnectIcon.svg",
	IdentityLattice:       "images/gridPlusWallet.png",
	IdentityWalletLink:    "images/coinbaseWalletIcon.svg",
	IdentityFortmatic:     "images/fortmaticIcon.png",
	IdentityPortis:        "images/portisIcon.png",
	IdentityKeystone:      "images/keystone.png",
}

// IconPath returns the icon asset for the identity, or "" for Unknown.
func (i ConnectorIdentity) IconPath() string {
	return identityIcons[i]
}
