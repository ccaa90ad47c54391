package apperrors

import "errors"

// Network switching errors
var (
	// ErrChainNotSupported is returned when a chain id is absent from the catalog.
	ErrChainNotSupported = errors.New("chain not supported")

	// ErrSwitchRejected is returned when the wallet declines or fails a switch-chain request.
	ErrSwitchRejected = errors.New("switch chain rejected")

	// ErrChainUnrecognized signals the wallet does not know the requested chain.
	ErrChainUnrecognized = errors.New("chain unrecognized by wallet")

	// ErrAddChainRejected is returned when the wallet declines or fails an add-chain request.
	ErrAddChainRejected = errors.New("add chain rejected")

	// ErrTelemetryEmit is returned when a telemetry event could not be recorded.
	ErrTelemetryEmit = errors.New("telemetry emit failed")
)

// Standard application errors
var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when the input provided by the client is invalid.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrExternalServiceFailure is returned when an interaction with an external service fails.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInternal is returned for unexpected internal system errors.
	ErrInternal = errors.New("internal system error")
)
