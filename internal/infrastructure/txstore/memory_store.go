package txstore

import (
	"context"
	"fmt"
	"sync"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/pkg/apperrors"
)

// MemoryStore keeps per-chain transaction history in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	chains map[uint64]*entity.TransactionLog
	logger port.Logger
}

var _ port.TransactionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(l port.Logger) *MemoryStore {
	return &MemoryStore{
		chains: make(map[uint64]*entity.TransactionLog),
		logger: l,
	}
}

// Add records a submitted transaction. Re-adding a confirmed transaction
// without a receipt keeps the existing receipt.
func (s *MemoryStore) Add(_ context.Context, chainID uint64, record entity.TransactionRecord) error {
	if record.Hash == "" {
		return fmt.Errorf("%w: transaction hash is empty", apperrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.chains[chainID]
	if !ok {
		fresh := entity.NewTransactionLog()
		log = &fresh
		s.chains[chainID] = log
	}
	if existing, ok := log.Get(record.Hash); ok && existing.Confirmed() && !record.Confirmed() {
		record.Receipt = existing.Receipt
		record.ConfirmedTime = existing.ConfirmedTime
		s.logger.Debug("Keeping receipt of already confirmed transaction", "chain_id", chainID, "hash", record.Hash)
	}
	log.Put(record)
	s.logger.Debug("Transaction added", "chain_id", chainID, "hash", record.Hash, "confirmed", record.Confirmed())
	return nil
}

// Finalize attaches a receipt to a pending transaction. A record that already
// has a receipt is left unchanged.
func (s *MemoryStore) Finalize(_ context.Context, chainID uint64, hash string, receipt entity.TransactionReceipt, confirmedTime int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.chains[chainID]
	if !ok {
		return fmt.Errorf("%w: no transactions for chain %d", apperrors.ErrNotFound, chainID)
	}
	record, ok := log.Get(hash)
	if !ok {
		return fmt.Errorf("%w: transaction %s on chain %d", apperrors.ErrNotFound, hash, chainID)
	}
	if record.Confirmed() {
		s.logger.Debug("Transaction already confirmed, ignoring receipt", "chain_id", chainID, "hash", hash)
		return nil
	}

	r := receipt
	record.Receipt = &r
	record.ConfirmedTime = confirmedTime
	log.Put(record)
	s.logger.Info("Transaction confirmed", "chain_id", chainID, "hash", hash, "status", receipt.Status)
	return nil
}

// Snapshot returns a copy of the chain's history. Unknown chains yield an empty log.
func (s *MemoryStore) Snapshot(_ context.Context, chainID uint64) (entity.TransactionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.chains[chainID]
	if !ok {
		return entity.NewTransactionLog(), nil
	}
	return log.Clone(), nil
}
