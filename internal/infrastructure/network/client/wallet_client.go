package client

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"network_switcher/internal/app/port"
)

// WalletClient talks JSON-RPC to a wallet endpoint (http, ws or ipc).
// Errors from the wallet are returned unchanged so their codes stay readable.
type WalletClient struct {
	rpcClient   *rpc.Client
	ethClient   *ethclient.Client
	endpoint    string
	callTimeout time.Duration
}

var (
	_ port.WalletProvider = (*WalletClient)(nil)
	_ port.ChainObserver  = (*WalletClient)(nil)
)

// DialWallet connects to the first reachable endpoint. callTimeout bounds each
// request; zero leaves requests unbounded so a wallet prompt can wait for the user.
func DialWallet(ctx context.Context, endpoints []string, connectionTimeout, callTimeout time.Duration) (*WalletClient, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no wallet endpoints configured")
	}

	var lastErr error
	for _, endpoint := range endpoints {
		dialCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		rpcClient, err := rpc.DialContext(dialCtx, endpoint)
		cancel()

		if err == nil {
			return NewWalletClient(rpcClient, endpoint, callTimeout), nil
		}
		lastErr = fmt.Errorf("failed to connect to wallet %s: %w", endpoint, err)
	}

	return nil, fmt.Errorf("all wallet connection attempts failed: %w", lastErr)
}

// NewWalletClient wraps an established rpc client.
func NewWalletClient(rpcClient *rpc.Client, endpoint string, callTimeout time.Duration) *WalletClient {
	return &WalletClient{
		rpcClient:   rpcClient,
		ethClient:   ethclient.NewClient(rpcClient),
		endpoint:    endpoint,
		callTimeout: callTimeout,
	}
}

// Endpoint returns the URL the client is connected to.
func (c *WalletClient) Endpoint() string {
	return c.endpoint
}

// CallContext sends one wallet request.
func (c *WalletClient) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	return c.rpcClient.CallContext(ctx, result, method, args...)
}

// ChainID returns the chain the wallet is currently on.
func (c *WalletClient) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.ethClient.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId via %s: %w", c.endpoint, err)
	}
	if !id.IsUint64() {
		return 0, fmt.Errorf("chain id %s out of range", id)
	}
	return id.Uint64(), nil
}

// Accounts returns the addresses the wallet exposes, first is active.
func (c *WalletClient) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := c.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts via %s: %w", c.endpoint, err)
	}
	return accounts, nil
}

// Close releases the connection.
func (c *WalletClient) Close() {
	c.rpcClient.Close()
}
