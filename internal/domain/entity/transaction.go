package entity

import "github.com/ethereum/go-ethereum/common"

// TransactionReceipt is the confirmation payload of a mined transaction.
type TransactionReceipt struct {
	To               *common.Address `json:"to,omitempty"`
	From             common.Address  `json:"from"`
	ContractAddress  *common.Address `json:"contractAddress,omitempty"`
	TransactionIndex uint            `json:"transactionIndex"`
	BlockHash        common.Hash     `json:"blockHash"`
	TransactionHash  common.Hash     `json:"transactionHash"`
	BlockNumber      uint64          `json:"blockNumber"`
	Status           uint64          `json:"status"`
}

// TransactionRecord is one entry of the transaction history.
// A record with a Receipt is confirmed; without one it is pending.
type TransactionRecord struct {
	Hash          string              `json:"hash"`
	From          string              `json:"from"`
	Summary       string              `json:"summary,omitempty"`
	Type          string              `json:"type,omitempty"`
	AddedTime     int64               `json:"addedTime"` // unix milliseconds
	ConfirmedTime int64               `json:"confirmedTime,omitempty"`
	Receipt       *TransactionReceipt `json:"receipt,omitempty"`
}

// Confirmed reports whether the record has a receipt.
func (r TransactionRecord) Confirmed() bool {
	return r.Receipt != nil
}

// TransactionLog is an insertion-ordered mapping from transaction hash to record.
// Re-putting an existing hash replaces the record but keeps its original position.
type TransactionLog struct {
	order   []string
	records map[string]TransactionRecord
}

// NewTransactionLog builds a log from records in the given order.
func NewTransactionLog(records ...TransactionRecord) TransactionLog {
	l := TransactionLog{
		order:   make([]string, 0, len(records)),
		records: make(map[string]TransactionRecord, len(records)),
	}
	for _, r := range records {
		l.Put(r)
	}
	return l
}

// Put inserts or replaces a record.
func (l *TransactionLog) Put(r TransactionRecord) {
	if l.records == nil {
		l.records = make(map[string]TransactionRecord)
	}
	if _, exists := l.records[r.Hash]; !exists {
		l.order = append(l.order, r.Hash)
	}
	l.records[r.Hash] = r
}

// Get returns the record stored under hash.
func (l TransactionLog) Get(hash string) (TransactionRecord, bool) {
	r, ok := l.records[hash]
	return r, ok
}

// Len returns the number of records.
func (l TransactionLog) Len() int {
	return len(l.order)
}

// Records returns all records in insertion order.
func (l TransactionLog) Records() []TransactionRecord {
	out := make([]TransactionRecord, 0, len(l.order))
	for _, hash := range l.order {
		out = append(out, l.records[hash])
	}
	return out
}

// Clone returns an independent copy of the log.
func (l TransactionLog) Clone() TransactionLog {
	return NewTransactionLog(l.Records()...)
}

// TransactionIndex is the recent history partitioned for display, most recent first.
type TransactionIndex struct {
	Pending   []string `json:"pending"`
	Confirmed []string `json:"confirmed"`
}
