package health

import "context"

// Response represents the health check response
type Response struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type RootResponse struct {
	Message string `json:"message"`
}

// a dependency the health check pings
type Pinger interface {
	Ping(ctx context.Context) error
}

// adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
