package utils

import (
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
)

// Wallet error codes (EIP-1193 / EIP-3085).
const (
	WalletCodeUserRejected      = 4001
	WalletCodeUnrecognizedChain = 4902
)

// WalletErrorCode extracts the numeric code from a wallet error, if it carries one.
func WalletErrorCode(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}
