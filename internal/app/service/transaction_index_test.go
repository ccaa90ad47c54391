package service

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"network_switcher/internal/domain/entity"
)

var receipt = &entity.TransactionReceipt{Status: 1}

func tx(hash string, added int64, confirmed bool) entity.TransactionRecord {
	r := entity.TransactionRecord{Hash: hash, AddedTime: added}
	if confirmed {
		r.Receipt = receipt
	}
	return r
}

func TestTransactionIndex_Empty(t *testing.T) {
	ti := NewTransactionIndex(nil)

	idx := ti.Index(entity.NewTransactionLog())

	assert.NotNil(t, idx.Pending)
	assert.NotNil(t, idx.Confirmed)
	assert.Empty(t, idx.Pending)
	assert.Empty(t, idx.Confirmed)
}

func TestTransactionIndex_SplitsAndSorts(t *testing.T) {
	ti := NewTransactionIndex(nil)
	log := entity.NewTransactionLog(
		tx("0xa", 100, false),
		tx("0xb", 300, true),
		tx("0xc", 200, false),
		tx("0xd", 400, true),
		tx("0xe", 50, false),
	)

	assert.Equal(t, []string{"0xc", "0xa", "0xe"}, ti.PendingTransactionIDs(log))
	assert.Equal(t, []string{"0xd", "0xb"}, ti.ConfirmedTransactionIDs(log))
}

func TestTransactionIndex_TiesKeepInsertionOrder(t *testing.T) {
	ti := NewTransactionIndex(nil)
	log := entity.NewTransactionLog(
		tx("0x3", 10, false),
		tx("0x1", 10, false),
		tx("0x2", 10, false),
		tx("0x0", 20, false),
	)

	assert.Equal(t, []string{"0x0", "0x3", "0x1", "0x2"}, ti.PendingTransactionIDs(log))

	// replacing a record keeps its original position
	log.Put(tx("0x3", 10, true))
	assert.Equal(t, []string{"0x0", "0x1", "0x2"}, ti.PendingTransactionIDs(log))
	assert.Equal(t, []string{"0x3"}, ti.ConfirmedTransactionIDs(log))
}

func TestTransactionIndex_AllStale(t *testing.T) {
	now := time.UnixMilli(10 * 24 * time.Hour.Milliseconds())
	ti := NewTransactionIndex(RecentWithin(DefaultRecentWindow, func() time.Time { return now }))

	twoDaysAgo := now.Add(-48 * time.Hour).UnixMilli()
	log := entity.NewTransactionLog(
		tx("0xa", twoDaysAgo, false),
		tx("0xb", twoDaysAgo-1, true),
	)

	idx := ti.Index(log)
	assert.Empty(t, idx.Pending)
	assert.Empty(t, idx.Confirmed)
}

func TestRecentWithin(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	recent := RecentWithin(time.Hour, func() time.Time { return now })

	assert.True(t, recent(tx("0x1", now.UnixMilli(), false)))
	assert.True(t, recent(tx("0x1", now.Add(-59*time.Minute).UnixMilli(), false)))
	assert.False(t, recent(tx("0x1", now.Add(-time.Hour).UnixMilli(), false)))
	assert.False(t, recent(tx("0x1", now.Add(-2*time.Hour).UnixMilli(), false)))
}

func TestTransactionIndex_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.UnixMilli(1_000_000)
	window := 500 * time.Millisecond
	isRecent := RecentWithin(window, func() time.Time { return now })
	ti := NewTransactionIndex(isRecent)

	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		records := make([]entity.TransactionRecord, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, tx(
				"0x"+strconv.Itoa(round)+"_"+strconv.Itoa(i),
				now.UnixMilli()-int64(rng.Intn(1000)),
				rng.Intn(2) == 0,
			))
		}
		log := entity.NewTransactionLog(records...)

		idx := ti.Index(log)

		expected := make([]string, 0)
		for _, r := range records {
			if isRecent(r) {
				expected = append(expected, r.Hash)
			}
		}

		union := append(append([]string{}, idx.Pending...), idx.Confirmed...)
		sort.Strings(union)
		sort.Strings(expected)
		require.Equal(t, expected, union, "pending and confirmed must cover the recent set")

		seen := make(map[string]bool)
		for _, id := range idx.Pending {
			seen[id] = true
		}
		for _, id := range idx.Confirmed {
			require.False(t, seen[id], "id %s in both sequences", id)
		}

		for _, ids := range [][]string{idx.Pending, idx.Confirmed} {
			for i := 1; i < len(ids); i++ {
				a, _ := log.Get(ids[i-1])
				b, _ := log.Get(ids[i])
				require.GreaterOrEqual(t, a.AddedTime, b.AddedTime)
			}
		}

		require.Equal(t, idx, ti.Index(log), "index must be idempotent")
	}
}
