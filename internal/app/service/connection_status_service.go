package service

import (
	"context"
	"fmt"

	"network_switcher/internal/app/connector"
	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/pkg/utils"
)

// WalletSession is what the status view knows about the connected wallet.
type WalletSession struct {
	Account   string
	ENSName   string // resolved elsewhere; empty when unknown
	ChainID   uint64
	Connector *connector.Connector
}

// ConnectionStatusService builds the wallet status summary.
type ConnectionStatusService struct {
	index    *TransactionIndex
	resolver *ConnectorResolver
	store    port.TransactionStore
	logger   port.Logger
}

// NewConnectionStatusService creates the status view.
func NewConnectionStatusService(
	index *TransactionIndex,
	resolver *ConnectorResolver,
	store port.TransactionStore,
	l port.Logger,
) *ConnectionStatusService {
	return &ConnectionStatusService{
		index:    index,
		resolver: resolver,
		store:    store,
		logger:   l,
	}
}

// Status summarises the session. A session without an account is disconnected.
func (s *ConnectionStatusService) Status(ctx context.Context, ws WalletSession) (entity.ConnectionStatus, error) {
	if ws.Account == "" {
		return entity.ConnectionStatus{Connected: false}, nil
	}

	txLog, err := s.store.Snapshot(ctx, ws.ChainID)
	if err != nil {
		return entity.ConnectionStatus{}, fmt.Errorf("snapshot transactions for chain %d: %w", ws.ChainID, err)
	}
	idx := s.index.Index(txLog)
	identity := s.resolver.Resolve(ws.Connector)

	status := entity.ConnectionStatus{
		Connected:    true,
		Account:      ws.Account,
		ChainID:      ws.ChainID,
		PendingCount: len(idx.Pending),
		HasPending:   len(idx.Pending) > 0,
		Identity:     identity,
		Pending:      idx.Pending,
		Confirmed:    idx.Confirmed,
	}

	switch {
	case status.HasPending:
		status.Label = fmt.Sprintf("%d Pending", status.PendingCount)
	case ws.ENSName != "":
		status.Label = ws.ENSName
		status.IconPath = identity.IconPath()
	default:
		short, err := utils.ShortenAddress(ws.Account, 4)
		if err != nil {
			s.logger.Warn("Account is not a valid address, showing it unshortened", "account", ws.Account, "error", err)
			short = ws.Account
		}
		status.Label = short
		status.IconPath = identity.IconPath()
	}

	return status, nil
}
