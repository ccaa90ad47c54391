package entity

import (
	"errors"
	"fmt"
	"time"
)

// SwitchState is a phase of a network switch session.
type SwitchState string

const (
	SwitchIdle        SwitchState = "idle"
	SwitchSwitching   SwitchState = "switching"
	SwitchAddingChain SwitchState = "adding_chain"
	SwitchSucceeded   SwitchState = "succeeded"
	SwitchFailed      SwitchState = "failed"
)

// Terminal reports whether no further transitions can follow the state.
func (s SwitchState) Terminal() bool {
	return s == SwitchSucceeded || s == SwitchFailed
}

// SwitchTransition records one observable state change of a session.
type SwitchTransition struct {
	State SwitchState `json:"state"`
	At    time.Time   `json:"at"`
	Error string      `json:"error,omitempty"`
}

// SwitchError is the failure carried by a session that ended in SwitchFailed.
// It unwraps to both the failure kind sentinel and the wallet's raw error.
type SwitchError struct {
	Kind    error
	ChainID uint64
	Code    int // wallet error code, 0 when the wallet did not supply one
	Reason  string
	Cause   error
}

func (e *SwitchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: chain %d: %s", e.Kind, e.ChainID, e.Reason)
	}
	if e.Code != 0 {
		return fmt.Sprintf("%v: chain %d (wallet code %d): %v", e.Kind, e.ChainID, e.Code, e.Cause)
	}
	return fmt.Sprintf("%v: chain %d: %v", e.Kind, e.ChainID, e.Cause)
}

func (e *SwitchError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// AsSwitchError extracts a *SwitchError from an error chain.
func AsSwitchError(err error) (*SwitchError, bool) {
	var se *SwitchError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// SwitchSessionView is a point-in-time copy of a session for reporting.
type SwitchSessionView struct {
	ID            string             `json:"id"`
	TargetChainID uint64             `json:"targetChainId"`
	TargetName    string             `json:"targetName"`
	State         SwitchState        `json:"state"`
	History       []SwitchTransition `json:"history"`
	Error         string             `json:"error,omitempty"`
}
