package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"network_switcher/internal/domain/entity"
)

// walletError mimics a wallet JSON-RPC error carrying a numeric code.
type walletError struct {
	code    int
	message string
}

func (e *walletError) Error() string  { return fmt.Sprintf("%s (code %d)", e.message, e.code) }
func (e *walletError) ErrorCode() int { return e.code }

var (
	errUnrecognizedChain = &walletError{code: 4902, message: "Unrecognized chain ID"}
	errUserRejected      = &walletError{code: 4001, message: "User rejected the request."}
)

type walletCall struct {
	method string
	params []byte
	ctxErr error
}

// scriptedWallet answers each method with the next scripted error (nil means success)
// and records every request.
type scriptedWallet struct {
	mu       sync.Mutex
	script   map[string][]error
	calls    []walletCall
	gate     chan struct{} // when set, every call waits for it to be closed
	received chan struct{} // signalled once per call, if set
}

func newScriptedWallet() *scriptedWallet {
	return &scriptedWallet{script: make(map[string][]error)}
}

func (w *scriptedWallet) on(method string, errs ...error) *scriptedWallet {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.script[method] = append(w.script[method], errs...)
	return w
}

func (w *scriptedWallet) CallContext(ctx context.Context, _ interface{}, method string, args ...interface{}) error {
	if w.received != nil {
		w.received <- struct{}{}
	}
	if w.gate != nil {
		<-w.gate
	}

	var raw []byte
	if len(args) == 1 {
		raw, _ = json.Marshal(args[0])
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, walletCall{method: method, params: raw, ctxErr: ctx.Err()})

	queue := w.script[method]
	if len(queue) == 0 {
		return nil
	}
	w.script[method] = queue[1:]
	return queue[0]
}

func (w *scriptedWallet) callsTo(method string) []walletCall {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]walletCall, 0)
	for _, c := range w.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []entity.TelemetryEvent
	err    error
	panics bool
}

func (e *recordingEmitter) Emit(_ context.Context, event entity.TelemetryEvent) error {
	if e.panics {
		panic("emitter exploded")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) recorded() []entity.TelemetryEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]entity.TelemetryEvent(nil), e.events...)
}

// staticStore serves fixed per-chain logs.
type staticStore struct {
	logs map[uint64]entity.TransactionLog
	err  error
}

func (s *staticStore) Add(context.Context, uint64, entity.TransactionRecord) error {
	return errors.New("read only")
}

func (s *staticStore) Finalize(context.Context, uint64, string, entity.TransactionReceipt, int64) error {
	return errors.New("read only")
}

func (s *staticStore) Snapshot(_ context.Context, chainID uint64) (entity.TransactionLog, error) {
	if s.err != nil {
		return entity.TransactionLog{}, s.err
	}
	return s.logs[chainID].Clone(), nil
}

// panickingWallet panics when asked for method. Any switch request it
// answers is rejected as an unrecognized chain, so the add step is reached.
type panickingWallet struct {
	method string
}

func (w panickingWallet) CallContext(_ context.Context, _ interface{}, method string, _ ...interface{}) error {
	if method == w.method {
		panic("wallet provider bug")
	}
	if method == MethodSwitchChain {
		return errUnrecognizedChain
	}
	return nil
}
