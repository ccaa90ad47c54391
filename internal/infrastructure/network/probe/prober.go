package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/pkg/apperrors"
	"network_switcher/internal/pkg/metrics"
)

// Compile-time check
var _ port.NetworkProber = (*Prober)(nil)

// Options tune a Prober.
type Options struct {
	Timeout         time.Duration
	RateLimit       float64 // requests per second across all endpoints
	Burst           int
	Concurrency     int
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

// Prober checks that the RPC endpoints of a network answer eth_chainId with the
// expected chain. Results are cached per chain for CacheTTL.
type Prober struct {
	client      *fasthttp.Client
	limiter     *rate.Limiter
	cache       *cache.Cache
	timeout     time.Duration
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// NewProber creates a prober.
func NewProber(opts Options, logger *zap.Logger) *Prober {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	return &Prober{
		client: &fasthttp.Client{
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout,
		},
		limiter:     rate.NewLimiter(limit, opts.Burst),
		cache:       cache.New(opts.CacheTTL, opts.CleanupInterval),
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		logger:      logger.Named("RPCProber"),
		now:         time.Now,
	}
}

// chainIDPayload is the JSON-RPC request sent to every endpoint.
var chainIDPayload = []byte(`{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":1}`)

// JSONRPCResponse defines the basic structure for a JSON-RPC response.
type JSONRPCResponse struct {
	ID      interface{}     `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError defines the structure for a JSON-RPC error.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func cacheKey(chainID uint64) string {
	return "network_health_" + strconv.FormatUint(chainID, 10)
}

// ProbeNetwork probes every RPC URL of def. Endpoint failures are reported in the
// result, not as an error; an error is returned only when ctx ends first.
func (p *Prober) ProbeNetwork(ctx context.Context, def entity.NetworkDefinition) (entity.NetworkHealth, error) {
	key := cacheKey(def.ChainID)
	if x, found := p.cache.Get(key); found {
		if health, ok := x.(entity.NetworkHealth); ok {
			p.logger.Debug("Probe cache hit", zap.Uint64("chainId", def.ChainID))
			return health, nil
		}
		p.cache.Delete(key)
	}

	endpoints := make([]entity.EndpointHealth, len(def.RPCURLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, url := range def.RPCURLs {
		i, url := i, url
		g.Go(func() error {
			if err := p.limiter.Wait(gctx); err != nil {
				return fmt.Errorf("%w: rate limiter wait for %s: %v", apperrors.ErrTimeout, url, err)
			}
			endpoints[i] = p.probeEndpoint(gctx, def.ChainID, url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entity.NetworkHealth{}, err
	}

	health := entity.NetworkHealth{
		ChainID:   def.ChainID,
		Name:      def.Name,
		Endpoints: endpoints,
		CheckedAt: p.now(),
	}
	for _, e := range endpoints {
		if e.Healthy && e.ChainIDMatches {
			health.Healthy = true
			break
		}
	}

	p.cache.SetDefault(key, health)
	p.logger.Info("Network probed",
		zap.Uint64("chainId", def.ChainID),
		zap.Bool("healthy", health.Healthy),
		zap.Int("endpoints", len(endpoints)),
	)
	return health, nil
}

func (p *Prober) probeEndpoint(ctx context.Context, chainID uint64, url string) entity.EndpointHealth {
	start := time.Now()
	var (
		body []byte
		err  error
	)
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		body, err = p.postHTTP(ctx, url)
	case strings.HasPrefix(url, "ws://"), strings.HasPrefix(url, "wss://"):
		body, err = p.exchangeWS(ctx, url)
	default:
		err = fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, url)
	}

	result := entity.EndpointHealth{URL: url}
	if err == nil {
		result.ReportedChainID, err = decodeChainID(body)
	}
	latency := time.Since(start)
	result.LatencyMillis = latency.Milliseconds()

	if err != nil {
		result.Error = err.Error()
		p.logger.Debug("Endpoint probe failed", zap.String("url", url), zap.Error(err))
	} else {
		result.Healthy = true
		result.ChainIDMatches = result.ReportedChainID == chainID
		if !result.ChainIDMatches {
			p.logger.Warn("Endpoint reports a different chain",
				zap.String("url", url),
				zap.Uint64("expected", chainID),
				zap.Uint64("reported", result.ReportedChainID),
			)
		}
	}

	metrics.ProbeLatency.
		WithLabelValues(strconv.FormatUint(chainID, 10), strconv.FormatBool(result.Healthy)).
		Observe(latency.Seconds())
	return result
}

// effectiveTimeout is the smaller of the configured timeout and the time left on ctx.
func (p *Prober) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left > 0 && (timeout <= 0 || left < timeout) {
			timeout = left
		}
	}
	return timeout
}

func (p *Prober) postHTTP(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(chainIDPayload)

	var err error
	if timeout := p.effectiveTimeout(ctx); timeout > 0 {
		err = p.client.DoTimeout(req, resp, timeout)
	} else {
		err = p.client.Do(req, resp)
	}
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: http request to %s: %v", apperrors.ErrTimeout, url, err)
		}
		return nil, fmt.Errorf("%w: http request to %s failed: %v", apperrors.ErrExternalServiceFailure, url, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: rpc %s returned non-OK http status: %d",
			apperrors.ErrExternalServiceFailure, url, resp.StatusCode())
	}

	// resp is released on return
	return append([]byte(nil), resp.Body()...), nil
}

func (p *Prober) exchangeWS(ctx context.Context, url string) ([]byte, error) {
	timeout := p.effectiveTimeout(ctx)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wss dial to %s failed: %v", apperrors.ErrExternalServiceFailure, url, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	_ = conn.SetReadDeadline(time.Now().Add(timeout))

	if err := conn.WriteMessage(websocket.TextMessage, chainIDPayload); err != nil {
		return nil, fmt.Errorf("%w: wss write to %s failed: %v", apperrors.ErrExternalServiceFailure, url, err)
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: wss read from %s failed: %v", apperrors.ErrExternalServiceFailure, url, err)
	}
	return message, nil
}

func decodeChainID(body []byte) (uint64, error) {
	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return 0, fmt.Errorf("%w: invalid JSON-RPC response: %v", apperrors.ErrExternalServiceFailure, err)
	}
	if rpcResp.Error != nil {
		return 0, fmt.Errorf("%w: rpc error %d: %s", apperrors.ErrExternalServiceFailure, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var hexID string
	if err := json.Unmarshal(rpcResp.Result, &hexID); err != nil {
		return 0, fmt.Errorf("%w: eth_chainId result is not a string: %v", apperrors.ErrExternalServiceFailure, err)
	}
	id, err := hexutil.DecodeUint64(hexID)
	if err != nil {
		return 0, fmt.Errorf("%w: eth_chainId result %q: %v", apperrors.ErrExternalServiceFailure, hexID, err)
	}
	return id, nil
}
