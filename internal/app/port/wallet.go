package port

import "context"

// WalletProvider is the request surface of a connected wallet.
// A *rpc.Client from go-ethereum satisfies it directly. Errors carrying a
// wallet code expose it through an ErrorCode() int method.
type WalletProvider interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// ChainObserver reports the wallet's currently active chain.
type ChainObserver interface {
	ChainID(ctx context.Context) (uint64, error)
}
