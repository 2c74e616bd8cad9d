package health

import "context"

// ServicePinger checks analysis service availability.
type ServicePinger interface {
	Health(ctx context.Context) error
}
