package port

import (
	"context"

	"network_switcher/internal/domain/entity"
)

// TransactionStore owns the per-chain transaction history.
type TransactionStore interface {
	// Add records a newly submitted transaction. Re-adding a hash replaces it in place.
	Add(ctx context.Context, chainID uint64, record entity.TransactionRecord) error

	// Finalize attaches a receipt. Finalizing an already confirmed record is a no-op.
	Finalize(ctx context.Context, chainID uint64, hash string, receipt entity.TransactionReceipt, confirmedTime int64) error

	// Snapshot returns an independent copy of the chain's history.
	Snapshot(ctx context.Context, chainID uint64) (entity.TransactionLog, error)
}
