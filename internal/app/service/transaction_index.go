package service

import (
	"sort"
	"time"

	"network_switcher/internal/domain/entity"
)

// DefaultRecentWindow is how long a transaction stays visible in the status summary.
const DefaultRecentWindow = 24 * time.Hour

// RecencyPredicate decides whether a record is recent enough to display.
type RecencyPredicate func(entity.TransactionRecord) bool

// RecentWithin accepts records added no longer than window before now().
// A nil now uses time.Now.
func RecentWithin(window time.Duration, now func() time.Time) RecencyPredicate {
	if now == nil {
		now = time.Now
	}
	return func(r entity.TransactionRecord) bool {
		return now().UnixMilli()-r.AddedTime < window.Milliseconds()
	}
}

// TransactionIndex splits a transaction history into pending and confirmed ids.
// It holds no state besides the recency policy and is safe for concurrent use.
type TransactionIndex struct {
	isRecent RecencyPredicate
}

// NewTransactionIndex creates an index. A nil predicate treats every record as recent.
func NewTransactionIndex(isRecent RecencyPredicate) *TransactionIndex {
	if isRecent == nil {
		isRecent = func(entity.TransactionRecord) bool { return true }
	}
	return &TransactionIndex{isRecent: isRecent}
}

// recentSorted returns the recent records newest first. Equal AddedTime keeps log order.
func (ti *TransactionIndex) recentSorted(log entity.TransactionLog) []entity.TransactionRecord {
	recent := make([]entity.TransactionRecord, 0, log.Len())
	for _, r := range log.Records() {
		if ti.isRecent(r) {
			recent = append(recent, r)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].AddedTime > recent[j].AddedTime
	})
	return recent
}

// PendingTransactionIDs returns recent records without a receipt, newest first.
func (ti *TransactionIndex) PendingTransactionIDs(log entity.TransactionLog) []string {
	return ti.Index(log).Pending
}

// ConfirmedTransactionIDs returns recent records with a receipt, newest first.
func (ti *TransactionIndex) ConfirmedTransactionIDs(log entity.TransactionLog) []string {
	return ti.Index(log).Confirmed
}

// Index computes both sequences in one pass.
func (ti *TransactionIndex) Index(log entity.TransactionLog) entity.TransactionIndex {
	idx := entity.TransactionIndex{
		Pending:   []string{},
		Confirmed: []string{},
	}
	for _, r := range ti.recentSorted(log) {
		if r.Confirmed() {
			idx.Confirmed = append(idx.Confirmed, r.Hash)
		} else {
			idx.Pending = append(idx.Pending, r.Hash)
		}
	}
	return idx
}
