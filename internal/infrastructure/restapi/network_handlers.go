package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"network_switcher/internal/app/connector"
	"network_switcher/internal/app/port"
	"network_switcher/internal/app/service"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/infrastructure/sessionstore"
	"network_switcher/internal/pkg/apperrors"
	"network_switcher/internal/pkg/metrics"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
	StatusMessage string `json:"status_message"`
}

// SwitchRequest is the body of POST /network/switch.
type SwitchRequest struct {
	ChainID *uint64 `json:"chainId" binding:"required"`
}

// WalletContext describes the connected wallet as the handlers see it.
type WalletContext struct {
	Connector *connector.Connector
	Observer  port.ChainObserver // nil when the active chain cannot be queried
	Account   string
	ENSName   string
}

// NetworkHandler serves network, switch and status endpoints.
type NetworkHandler struct {
	networks     port.NetworkDefinitionProvider
	switcher     *service.NetworkSwitchService
	status       *service.ConnectionStatusService
	index        *service.TransactionIndex
	transactions port.TransactionStore
	prober       port.NetworkProber // nil disables health checks
	sessions     *sessionstore.Registry
	wallet       WalletContext
	probeTimeout time.Duration
	logger       port.Logger
	upgrader     websocket.Upgrader
}

// NetworkHandlerDeps groups the collaborators of NetworkHandler.
type NetworkHandlerDeps struct {
	Networks     port.NetworkDefinitionProvider
	Switcher     *service.NetworkSwitchService
	Status       *service.ConnectionStatusService
	Index        *service.TransactionIndex
	Transactions port.TransactionStore
	Prober       port.NetworkProber
	Sessions     *sessionstore.Registry
	Wallet       WalletContext
	ProbeTimeout time.Duration
	Logger       port.Logger
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(d NetworkHandlerDeps) *NetworkHandler {
	timeout := d.ProbeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NetworkHandler{
		networks:     d.Networks,
		switcher:     d.Switcher,
		status:       d.Status,
		index:        d.Index,
		transactions: d.Transactions,
		prober:       d.Prober,
		sessions:     d.Sessions,
		wallet:       d.Wallet,
		probeTimeout: timeout,
		logger:       d.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// parseChainID accepts decimal ("137") and hex ("0x89") chain ids.
func parseChainID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		id, err := hexutil.DecodeUint64(strings.ToLower(raw))
		if err != nil {
			return 0, fmt.Errorf("%w: chain id %q: %v", apperrors.ErrInvalidInput, raw, err)
		}
		return id, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: chain id %q", apperrors.ErrInvalidInput, raw)
	}
	return id, nil
}

func (h *NetworkHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrChainNotSupported), errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrExternalServiceFailure):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, APIResponse{Error: err.Error(), StatusMessage: http.StatusText(status)})
}

// activeChainID resolves the wallet's chain: explicit query parameter first, then the wallet itself.
func (h *NetworkHandler) activeChainID(c *gin.Context) (uint64, bool, error) {
	if raw := c.Query("chainId"); raw != "" {
		id, err := parseChainID(raw)
		return id, err == nil, err
	}
	if h.wallet.Observer == nil {
		return 0, false, nil
	}
	id, err := h.wallet.Observer.ChainID(c.Request.Context())
	if err != nil {
		h.logger.Warn("Could not read active chain from wallet", "error", err)
		return 0, false, nil
	}
	return id, true, nil
}

// ListNetworks returns the switchable networks, or selection options when ?active= is given.
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	if raw, ok := c.GetQuery("active"); ok {
		active, err := parseChainID(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, APIResponse{Data: h.switcher.NetworkOptions(active), StatusMessage: "Network options retrieved."})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: h.switcher.SwitchableNetworks(), StatusMessage: "Networks retrieved."})
}

// GetNetwork returns one catalog entry.
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	def, err := h.lookup(c.Param("chainId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: def, StatusMessage: "Network retrieved."})
}

func (h *NetworkHandler) lookup(raw string) (entity.NetworkDefinition, error) {
	chainID, err := parseChainID(raw)
	if err != nil {
		return entity.NetworkDefinition{}, err
	}
	def, ok := h.networks.GetNetworkDefinitionByChainID(chainID)
	if !ok {
		return entity.NetworkDefinition{}, fmt.Errorf("%w: chain id %d", apperrors.ErrChainNotSupported, chainID)
	}
	return def, nil
}

// GetNetworkHealth probes the RPC endpoints of a network.
func (h *NetworkHandler) GetNetworkHealth(c *gin.Context) {
	if h.prober == nil {
		c.JSON(http.StatusServiceUnavailable, APIResponse{Error: "endpoint probing is disabled", StatusMessage: "Probing disabled."})
		return
	}
	def, err := h.lookup(c.Param("chainId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.probeTimeout)
	defer cancel()

	health, err := h.prober.ProbeNetwork(ctx, def)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: health, StatusMessage: "Network probed."})
}

// StartSwitch begins a network switch and answers with the new session.
func (h *NetworkHandler) StartSwitch(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err))
		return
	}
	target := *req.ChainID

	if _, ok := h.networks.GetNetworkDefinitionByChainID(target); !ok {
		h.respondError(c, fmt.Errorf("%w: chain id %d", apperrors.ErrChainNotSupported, target))
		return
	}

	provider := h.wallet.Connector.Provider()
	if provider == nil {
		c.JSON(http.StatusServiceUnavailable, APIResponse{Error: "no wallet connected", StatusMessage: "Wallet unavailable."})
		return
	}

	if active, known, _ := h.activeChainID(c); known && active == target {
		h.respondError(c, fmt.Errorf("%w: chain %d is already active", apperrors.ErrInvalidInput, target))
		return
	}

	session, err := h.switcher.BeginSwitch(c.Request.Context(), provider, target)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.sessions.Put(session)

	c.JSON(http.StatusAccepted, APIResponse{Data: session.View(), StatusMessage: "Switch started."})
}

func (h *NetworkHandler) session(c *gin.Context) (*service.SwitchSession, bool) {
	id := c.Param("sessionId")
	session, ok := h.sessions.Get(id)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: switch session %s", apperrors.ErrNotFound, id))
		return nil, false
	}
	return session, true
}

// GetSwitchSession reports the state and history of a session.
func (h *NetworkHandler) GetSwitchSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: session.View(), StatusMessage: "Switch session retrieved."})
}

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// StreamSwitchSession streams session transitions over a websocket until the
// session ends or the client goes away.
func (h *NetworkHandler) StreamSwitchSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "session", session.ID(), "error", err)
		return
	}
	defer conn.Close()

	metrics.SessionStreams.Inc()
	defer metrics.SessionStreams.Dec()

	gone := make(chan struct{})
	go readUntilClosed(conn, gone)

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	transitions := session.Subscribe()
	for {
		select {
		case transition, open := <-transitions:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(session.State())),
					time.Now().Add(time.Second))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(transition); err != nil {
				h.logger.Debug("WebSocket write failed, client gone", "session", session.ID(), "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			h.logger.Debug("WebSocket client disconnected", "session", session.ID())
			return
		}
	}
}

// readUntilClosed drains client frames so control messages are processed,
// and closes gone on the first read error.
func readUntilClosed(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// GetStatus returns the connection status summary.
func (h *NetworkHandler) GetStatus(c *gin.Context) {
	chainID, _, err := h.activeChainID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status, err := h.status.Status(c.Request.Context(), service.WalletSession{
		Account:   h.wallet.Account,
		ENSName:   h.wallet.ENSName,
		ChainID:   chainID,
		Connector: h.wallet.Connector,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: status, StatusMessage: "Status retrieved."})
}

// GetTransactions returns pending and confirmed transaction ids for the active chain.
func (h *NetworkHandler) GetTransactions(c *gin.Context) {
	chainID, known, err := h.activeChainID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !known {
		h.respondError(c, fmt.Errorf("%w: chainId is required when the wallet chain is unknown", apperrors.ErrInvalidInput))
		return
	}

	txLog, err := h.transactions.Snapshot(c.Request.Context(), chainID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: h.index.Index(txLog), StatusMessage: "Transactions retrieved."})
}
