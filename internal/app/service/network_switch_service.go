package service

import (
	"context"
	"fmt"
	"time"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/pkg/apperrors"
	"network_switcher/internal/pkg/metrics"
	"network_switcher/internal/pkg/utils"
)

// Wallet methods used by the switch protocol.
const (
	MethodSwitchChain = "wallet_switchEthereumChain"
	MethodAddChain    = "wallet_addEthereumChain"
)

// NetworkSwitchService moves a connected wallet onto another network.
//
// A switch first asks the wallet to change its active chain. If the wallet
// answers that it does not know the chain, the full chain parameters are sent
// with an add-chain request instead. Any other answer ends the session. Nothing
// is retried: each wallet prompt needs a fresh user action.
//
// The service does not serialise sessions. Callers must not start a second
// switch while one is still in flight.
type NetworkSwitchService struct {
	networks port.NetworkDefinitionProvider
	emitter  port.EventEmitter
	logger   port.Logger
	now      func() time.Time
}

// NewNetworkSwitchService creates the orchestrator. emitter may be nil.
func NewNetworkSwitchService(
	networks port.NetworkDefinitionProvider,
	emitter port.EventEmitter,
	l port.Logger,
) *NetworkSwitchService {
	return &NetworkSwitchService{
		networks: networks,
		emitter:  emitter,
		logger:   l,
		now:      time.Now,
	}
}

// SwitchableNetworks returns the descriptors offered for switching, in display order.
func (s *NetworkSwitchService) SwitchableNetworks() []entity.NetworkDefinition {
	ids := s.networks.SupportedChainIDs()
	defs := make([]entity.NetworkDefinition, 0, len(ids))
	for _, id := range ids {
		if def, ok := s.networks.GetNetworkDefinitionByChainID(id); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// NetworkOptions returns the switch list with the active chain first and
// marked active. The other entries keep their relative order.
func (s *NetworkSwitchService) NetworkOptions(activeChainID uint64) []entity.NetworkOption {
	defs := s.SwitchableNetworks()
	opts := make([]entity.NetworkOption, 0, len(defs))
	for _, def := range defs {
		if def.ChainID == activeChainID {
			opts = append(opts, entity.NetworkOption{Network: def, Active: true})
		}
	}
	for _, def := range defs {
		if def.ChainID != activeChainID {
			opts = append(opts, entity.NetworkOption{Network: def})
		}
	}
	return opts
}

// BeginSwitch starts a switch of the wallet behind provider to chainID.
//
// An unknown chain is reported immediately with apperrors.ErrChainNotSupported
// and the wallet is never contacted. Otherwise the returned session runs in the
// background. Cancelling ctx does not abort it: the wallet prompt stays open
// until the user answers it.
func (s *NetworkSwitchService) BeginSwitch(ctx context.Context, provider port.WalletProvider, chainID uint64) (*SwitchSession, error) {
	def, ok := s.networks.GetNetworkDefinitionByChainID(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain id %d", apperrors.ErrChainNotSupported, chainID)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: no wallet connected", apperrors.ErrInvalidInput)
	}

	session := newSwitchSession(def, s.now)
	s.logger.Info("Network switch started", "session", session.ID(), "chain_id", def.ChainID, "chain", def.Name)

	go s.run(context.WithoutCancel(ctx), provider, session)

	return session, nil
}

func (s *NetworkSwitchService) run(ctx context.Context, provider port.WalletProvider, session *SwitchSession) {
	def := session.Target()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		kind, reason := apperrors.ErrSwitchRejected, fmt.Sprintf("wallet failed while switching to %s", def.Name)
		if session.State() == entity.SwitchAddingChain {
			kind, reason = apperrors.ErrAddChainRejected, fmt.Sprintf("wallet failed while adding %s", def.Name)
		}
		s.fail(session, &entity.SwitchError{
			Kind:    kind,
			ChainID: def.ChainID,
			Reason:  reason,
			Cause:   fmt.Errorf("%w: wallet provider panicked: %v", apperrors.ErrInternal, r),
		})
	}()

	session.transition(entity.SwitchSwitching, nil)
	err := s.call(ctx, provider, MethodSwitchChain, def.SwitchParams())
	if err == nil {
		s.succeed(ctx, session)
		return
	}

	code, hasCode := utils.WalletErrorCode(err)
	if !hasCode || code != utils.WalletCodeUnrecognizedChain {
		s.fail(session, &entity.SwitchError{
			Kind:    apperrors.ErrSwitchRejected,
			ChainID: def.ChainID,
			Code:    code,
			Reason:  fmt.Sprintf("wallet refused to switch to %s", def.Name),
			Cause:   err,
		})
		return
	}

	s.logger.Info("Chain unknown to wallet, requesting add", "session", session.ID(), "chain_id", def.ChainID,
		"reason", apperrors.ErrChainUnrecognized)
	session.transition(entity.SwitchAddingChain, nil)

	if err := s.call(ctx, provider, MethodAddChain, def.AddParams()); err != nil {
		addCode, _ := utils.WalletErrorCode(err)
		s.fail(session, &entity.SwitchError{
			Kind:    apperrors.ErrAddChainRejected,
			ChainID: def.ChainID,
			Code:    addCode,
			Reason:  fmt.Sprintf("wallet refused to add %s", def.Name),
			Cause:   err,
		})
		return
	}

	s.succeed(ctx, session)
}

func (s *NetworkSwitchService) call(ctx context.Context, provider port.WalletProvider, method string, params any) error {
	err := provider.CallContext(ctx, nil, method, params)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.WalletRequests.WithLabelValues(method, result).Inc()
	return err
}

// succeed emits the switch event before the terminal transition, so observers
// of Done see the event already recorded.
func (s *NetworkSwitchService) succeed(ctx context.Context, session *SwitchSession) {
	s.emitSwitchEvent(ctx, session.Target())

	session.transition(entity.SwitchSucceeded, nil)
	metrics.SwitchSessions.WithLabelValues(string(entity.SwitchSucceeded)).Inc()
	s.logger.Info("Network switch succeeded", "session", session.ID(), "chain_id", session.TargetChainID())
}

func (s *NetworkSwitchService) fail(session *SwitchSession, err *entity.SwitchError) {
	session.transition(entity.SwitchFailed, err)
	metrics.SwitchSessions.WithLabelValues(string(entity.SwitchFailed)).Inc()
	s.logger.Warn("Network switch failed", "session", session.ID(), "chain_id", err.ChainID, "code", err.Code, "error", err)
}

// emitSwitchEvent is best-effort: failures are logged and dropped.
func (s *NetworkSwitchService) emitSwitchEvent(ctx context.Context, def entity.NetworkDefinition) {
	if s.emitter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("Telemetry emitter panicked", "error", fmt.Errorf("%w: %v", apperrors.ErrTelemetryEmit, r))
		}
	}()
	if err := s.emitter.Emit(ctx, entity.ChainSwitchEvent(def.Name)); err != nil {
		s.logger.Warn("Failed to emit switch event", "chain", def.Name, "error", fmt.Errorf("%w: %v", apperrors.ErrTelemetryEmit, err))
	}
}
