package txstore

import (
	"context"
	"fmt"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// historyFile is the on-disk layout: chain id (decimal string) to records in submission order.
type historyFile map[string][]entity.TransactionRecord

// LoadFile seeds the store from a JSON history file. Chains missing from the
// catalog are kept but reported. A missing file is not an error.
func (s *MemoryStore) LoadFile(ctx context.Context, path string, networks port.NetworkDefinitionProvider) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Transaction history file not found, starting empty", "path", path)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read transaction history %s: %w", path, err)
	}

	var history historyFile
	if err := json.Unmarshal(data, &history); err != nil {
		return 0, fmt.Errorf("failed to parse transaction history %s: %w", path, err)
	}

	loaded := 0
	for key, records := range history {
		chainID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return loaded, fmt.Errorf("invalid chain id %q in %s: %w", key, path, err)
		}
		if networks != nil {
			if _, ok := networks.GetNetworkDefinitionByChainID(chainID); !ok {
				s.logger.Warn("Transaction history for chain outside the catalog", "chain_id", chainID, "records", len(records))
			}
		}
		for _, r := range records {
			if err := s.Add(ctx, chainID, r); err != nil {
				return loaded, fmt.Errorf("chain %d: %w", chainID, err)
			}
			loaded++
		}
	}

	s.logger.Info("Transaction history loaded", "path", path, "chains", len(history), "records", loaded)
	return loaded, nil
}
