package health

import "context"

// TemplatePinger checks template store availability.
type TemplatePinger interface {
	HealthCheck(ctx context.Context) error
}

// BackendPinger checks search backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}
