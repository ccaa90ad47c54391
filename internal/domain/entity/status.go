package entity

// ConnectionStatus is the wallet status summary shown in the header.
type ConnectionStatus struct {
	Connected    bool              `json:"connected"`
	Account      string            `json:"account,omitempty"`
	ChainID      uint64            `json:"chainId,omitempty"`
	Label        string            `json:"label"`
	PendingCount int               `json:"pendingCount"`
	HasPending   bool              `json:"hasPending"`
	Identity     ConnectorIdentity `json:"identity"`
	IconPath     string            `json:"iconPath,omitempty"`
	Pending      []string          `json:"pending"`
	Confirmed    []string          `json:"confirmed"`
}
