package port

import (
	"context"

	"network_switcher/internal/domain/entity"
)

// EventEmitter records analytics events. Callers treat it as best-effort.
type EventEmitter interface {
	Emit(ctx context.Context, event entity.TelemetryEvent) error
}
