package service

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"network_switcher/internal/domain/entity"
)

// maxTransitions bounds the number of transitions one session can record:
// idle, switching, adding_chain and one terminal state.
const maxTransitions = 4

// SwitchSession tracks one user-initiated network switch.
// All methods are safe for concurrent use.
type SwitchSession struct {
	id     string
	target entity.NetworkDefinition
	now    func() time.Time

	mu          sync.Mutex
	state       entity.SwitchState
	history     []entity.SwitchTransition
	err         error
	subscribers []chan entity.SwitchTransition
	done        chan struct{}
}

func newSwitchSession(target entity.NetworkDefinition, now func() time.Time) *SwitchSession {
	s := &SwitchSession{
		id:      newSessionID(),
		target:  target,
		now:     now,
		history: make([]entity.SwitchTransition, 0, maxTransitions),
		done:    make(chan struct{}),
	}
	s.transition(entity.SwitchIdle, nil)
	return s
}

func newSessionID() string {
	b := make([]byte, 16)
	// crypto/rand.Read does not return an error on supported platforms
	_, _ = rand.Read(b)
	return hexutil.Encode(b)
}

// ID returns the session identifier.
func (s *SwitchSession) ID() string { return s.id }

// TargetChainID returns the chain the user asked for.
func (s *SwitchSession) TargetChainID() uint64 { return s.target.ChainID }

// Target returns the descriptor of the requested chain.
func (s *SwitchSession) Target() entity.NetworkDefinition { return s.target }

// State returns the current phase.
func (s *SwitchSession) State() entity.SwitchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the failure of a session that ended in SwitchFailed, otherwise nil.
// A non-nil error is always a *entity.SwitchError.
func (s *SwitchSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// History returns a copy of every transition so far.
func (s *SwitchSession) History() []entity.SwitchTransition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.SwitchTransition(nil), s.history...)
}

// Done is closed once the session reaches a terminal state.
func (s *SwitchSession) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session is terminal or ctx is done. It returns the
// final state, or ctx.Err() when the context ends first. The session itself
// keeps running either way.
func (s *SwitchSession) Wait(ctx context.Context) (entity.SwitchState, error) {
	select {
	case <-s.done:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Subscribe returns a channel that replays the transitions so far and then
// receives each new one. The channel is closed after the terminal transition.
func (s *SwitchSession) Subscribe() <-chan entity.SwitchTransition {
	ch := make(chan entity.SwitchTransition, maxTransitions)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.history {
		ch <- t
	}
	if s.state.Terminal() {
		close(ch)
		return ch
	}
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// View returns a snapshot suitable for reporting.
func (s *SwitchSession) View() entity.SwitchSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := entity.SwitchSessionView{
		ID:            s.id,
		TargetChainID: s.target.ChainID,
		TargetName:    s.target.Name,
		State:         s.state,
		History:       append([]entity.SwitchTransition(nil), s.history...),
	}
	if s.err != nil {
		v.Error = s.err.Error()
	}
	return v
}

// transition records a state change and notifies subscribers.
// Transitions out of a terminal state are ignored.
func (s *SwitchSession) transition(next entity.SwitchState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return
	}

	t := entity.SwitchTransition{State: next, At: s.now()}
	if err != nil {
		t.Error = err.Error()
		s.err = err
	}
	s.state = next
	s.history = append(s.history, t)

	// every subscriber channel has room for the whole history
	for _, ch := range s.subscribers {
		ch <- t
	}

	if next.Terminal() {
		for _, ch := range s.subscribers {
			close(ch)
		}
		s.subscribers = nil
		close(s.done)
	}
}
