package port

import (
	"context"

	"network_switcher/internal/domain/entity"
)

// NetworkProber checks the RPC endpoints of a network descriptor.
type NetworkProber interface {
	ProbeNetwork(ctx context.Context, def entity.NetworkDefinition) (entity.NetworkHealth, error)
}
