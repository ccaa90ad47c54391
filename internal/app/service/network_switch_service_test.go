package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"network_switcher/internal/domain/entity"
	networkdefinition "network_switcher/internal/infrastructure/network/definition"
	"network_switcher/internal/pkg/apperrors"
	"network_switcher/internal/pkg/logger"
)

func newSwitchService(emitter *recordingEmitter) *NetworkSwitchService {
	networks := networkdefinition.NewNetworkDefinitionProvider(logger.Nop())
	if emitter == nil {
		return NewNetworkSwitchService(networks, nil, logger.Nop())
	}
	return NewNetworkSwitchService(networks, emitter, logger.Nop())
}

func waitTerminal(t *testing.T, session *SwitchSession) entity.SwitchState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state, err := session.Wait(ctx)
	require.NoError(t, err, "session did not finish")
	return state
}

func historyStates(session *SwitchSession) []entity.SwitchState {
	states := make([]entity.SwitchState, 0)
	for _, tr := range session.History() {
		states = append(states, tr.State)
	}
	return states
}

func TestBeginSwitch_SucceedsOnFirstResponse(t *testing.T) {
	wallet := newScriptedWallet()
	emitter := &recordingEmitter{}
	svc := newSwitchService(emitter)

	session, err := svc.BeginSwitch(context.Background(), wallet, 137)
	require.NoError(t, err)

	assert.Equal(t, entity.SwitchSucceeded, waitTerminal(t, session))
	assert.NoError(t, session.Err())
	assert.Equal(t, []entity.SwitchState{entity.SwitchIdle, entity.SwitchSwitching, entity.SwitchSucceeded}, historyStates(session))

	switches := wallet.callsTo(MethodSwitchChain)
	require.Len(t, switches, 1)
	assert.JSONEq(t, `{"chainId":"0x89"}`, string(switches[0].params))
	assert.Empty(t, wallet.callsTo(MethodAddChain))

	assert.Equal(t, []entity.TelemetryEvent{{Category: "Chain", Action: "Switch", Label: "Matic"}}, emitter.recorded())
}

func TestBeginSwitch_AddsUnrecognizedChain(t *testing.T) {
	wallet := newScriptedWallet().on(MethodSwitchChain, errUnrecognizedChain)
	emitter := &recordingEmitter{}
	svc := newSwitchService(emitter)

	session, err := svc.BeginSwitch(context.Background(), wallet, 250)
	require.NoError(t, err)

	assert.Equal(t, entity.SwitchSucceeded, waitTerminal(t, session))
	assert.Equal(t, []entity.SwitchState{
		entity.SwitchIdle, entity.SwitchSwitching, entity.SwitchAddingChain, entity.SwitchSucceeded,
	}, historyStates(session))

	require.Len(t, wallet.callsTo(MethodSwitchChain), 1)
	adds := wallet.callsTo(MethodAddChain)
	require.Len(t, adds, 1)

	var params entity.AddChainParams
	require.NoError(t, json.Unmarshal(adds[0].params, &params))
	assert.Equal(t, "0xfa", params.ChainID)
	assert.Equal(t, "Fantom", params.ChainName)
	assert.Equal(t, "FTM", params.NativeCurrency.Symbol)
	assert.Equal(t, uint8(18), params.NativeCurrency.Decimals)
	assert.Equal(t, []string{"https://rpcapi.fantom.network"}, params.RPCURLs)
	assert.Equal(t, []string{"https://ftmscan.com"}, params.BlockExplorerURLs)

	assert.Len(t, emitter.recorded(), 1)
}

func TestBeginSwitch_RejectedWithoutFallback(t *testing.T) {
	wallet := newScriptedWallet().on(MethodSwitchChain, errUserRejected)
	emitter := &recordingEmitter{}
	svc := newSwitchService(emitter)

	session, err := svc.BeginSwitch(context.Background(), wallet, 56)
	require.NoError(t, err)

	assert.Equal(t, entity.SwitchFailed, waitTerminal(t, session))
	assert.Empty(t, wallet.callsTo(MethodAddChain))
	assert.Empty(t, emitter.recorded())

	failure := session.Err()
	require.Error(t, failure)
	assert.ErrorIs(t, failure, apperrors.ErrSwitchRejected)
	assert.ErrorIs(t, failure, errUserRejected)

	se, ok := entity.AsSwitchError(failure)
	require.True(t, ok)
	assert.Equal(t, 4001, se.Code)
	assert.Equal(t, uint64(56), se.ChainID)
}

func TestBeginSwitch_ErrorWithoutCodeIsRejection(t *testing.T) {
	wallet := newScriptedWallet().on(MethodSwitchChain, errors.New("wallet locked"))
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), wallet, 56)
	require.NoError(t, err)

	assert.Equal(t, entity.SwitchFailed, waitTerminal(t, session))
	assert.ErrorIs(t, session.Err(), apperrors.ErrSwitchRejected)
	assert.Empty(t, wallet.callsTo(MethodAddChain))
}

func TestBeginSwitch_AddChainFailureReported(t *testing.T) {
	addErr := &walletError{code: -32602, message: "rpcUrls invalid"}
	wallet := newScriptedWallet().
		on(MethodSwitchChain, errUnrecognizedChain).
		on(MethodAddChain, addErr)
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), wallet, 1666600000)
	require.NoError(t, err)

	assert.Equal(t, entity.SwitchFailed, waitTerminal(t, session))
	require.Len(t, wallet.callsTo(MethodAddChain), 1)

	failure := session.Err()
	assert.ErrorIs(t, failure, apperrors.ErrAddChainRejected)
	assert.ErrorIs(t, failure, addErr)
	assert.NotErrorIs(t, failure, apperrors.ErrSwitchRejected)
	assert.NotErrorIs(t, failure, errUnrecognizedChain)

	se, ok := entity.AsSwitchError(failure)
	require.True(t, ok)
	assert.Equal(t, -32602, se.Code)
}

func TestBeginSwitch_ProviderPanicFails(t *testing.T) {
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), panickingWallet{method: MethodSwitchChain}, 137)
	require.NoError(t, err)
	assert.Equal(t, entity.SwitchFailed, waitTerminal(t, session))
	assert.ErrorIs(t, session.Err(), apperrors.ErrSwitchRejected)
	assert.ErrorIs(t, session.Err(), apperrors.ErrInternal)

	session, err = svc.BeginSwitch(context.Background(), panickingWallet{method: MethodAddChain}, 250)
	require.NoError(t, err)
	assert.Equal(t, entity.SwitchFailed, waitTerminal(t, session))
	assert.ErrorIs(t, session.Err(), apperrors.ErrAddChainRejected)
	assert.Equal(t,
		[]entity.SwitchState{entity.SwitchIdle, entity.SwitchSwitching, entity.SwitchAddingChain, entity.SwitchFailed},
		historyStates(session))
}

func TestBeginSwitch_UnknownChainNeverContactsWallet(t *testing.T) {
	wallet := newScriptedWallet()
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), wallet, 1)

	assert.Nil(t, session)
	assert.ErrorIs(t, err, apperrors.ErrChainNotSupported)
	assert.Empty(t, wallet.callsTo(MethodSwitchChain))
}

func TestBeginSwitch_NoWallet(t *testing.T) {
	svc := newSwitchService(nil)

	_, err := svc.BeginSwitch(context.Background(), nil, 137)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestBeginSwitch_CallerCancellationDoesNotAbort(t *testing.T) {
	wallet := newScriptedWallet()
	wallet.gate = make(chan struct{})
	wallet.received = make(chan struct{}, 4)
	svc := newSwitchService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	session, err := svc.BeginSwitch(ctx, wallet, 137)
	require.NoError(t, err)

	<-wallet.received
	assert.Equal(t, entity.SwitchSwitching, session.State())

	cancel()
	close(wallet.gate)

	assert.Equal(t, entity.SwitchSucceeded, waitTerminal(t, session))
	calls := wallet.callsTo(MethodSwitchChain)
	require.Len(t, calls, 1)
	assert.NoError(t, calls[0].ctxErr)
}

func TestBeginSwitch_TelemetryFailureIgnored(t *testing.T) {
	t.Run("emit error", func(t *testing.T) {
		emitter := &recordingEmitter{err: errors.New("collector down")}
		svc := newSwitchService(emitter)

		session, err := svc.BeginSwitch(context.Background(), newScriptedWallet(), 43114)
		require.NoError(t, err)

		assert.Equal(t, entity.SwitchSucceeded, waitTerminal(t, session))
		assert.NoError(t, session.Err())
	})

	t.Run("emit panic", func(t *testing.T) {
		emitter := &recordingEmitter{panics: true}
		svc := newSwitchService(emitter)

		session, err := svc.BeginSwitch(context.Background(), newScriptedWallet(), 43114)
		require.NoError(t, err)

		assert.Equal(t, entity.SwitchSucceeded, waitTerminal(t, session))
	})
}

func TestSwitchSession_SubscribeReplaysAndCloses(t *testing.T) {
	wallet := newScriptedWallet().on(MethodSwitchChain, errUnrecognizedChain)
	wallet.gate = make(chan struct{})
	wallet.received = make(chan struct{}, 4)
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), wallet, 42220)
	require.NoError(t, err)
	<-wallet.received

	events := session.Subscribe()
	close(wallet.gate)

	got := make([]entity.SwitchState, 0)
	for tr := range events {
		got = append(got, tr.State)
	}
	assert.Equal(t, []entity.SwitchState{
		entity.SwitchIdle, entity.SwitchSwitching, entity.SwitchAddingChain, entity.SwitchSucceeded,
	}, got)

	late := make([]entity.SwitchState, 0)
	for tr := range session.Subscribe() {
		late = append(late, tr.State)
	}
	assert.Equal(t, got, late)

	view := session.View()
	assert.Equal(t, uint64(42220), view.TargetChainID)
	assert.Equal(t, "Celo", view.TargetName)
	assert.Equal(t, entity.SwitchSucceeded, view.State)
	assert.Empty(t, view.Error)
}

func TestSwitchSession_WaitHonoursContext(t *testing.T) {
	wallet := newScriptedWallet()
	wallet.gate = make(chan struct{})
	defer close(wallet.gate)
	svc := newSwitchService(nil)

	session, err := svc.BeginSwitch(context.Background(), wallet, 137)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = session.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, session.State().Terminal())
}

func TestNetworkOptions(t *testing.T) {
	svc := newSwitchService(nil)

	t.Run("active chain first", func(t *testing.T) {
		opts := svc.NetworkOptions(56)
		require.Len(t, opts, 8)
		assert.Equal(t, uint64(56), opts[0].Network.ChainID)
		assert.True(t, opts[0].Active)

		rest := make([]uint64, 0)
		for _, o := range opts[1:] {
			assert.False(t, o.Active)
			rest = append(rest, o.Network.ChainID)
		}
		assert.Equal(t, []uint64{137, 43114, 250, 1666600000, 42220, 66, 128}, rest)
	})

	t.Run("active chain not switchable", func(t *testing.T) {
		opts := svc.NetworkOptions(3)
		require.Len(t, opts, 8)
		for _, o := range opts {
			assert.False(t, o.Active)
		}
		assert.Equal(t, uint64(137), opts[0].Network.ChainID)
	})
}
