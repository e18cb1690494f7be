package platform

import (
	"log/slog"
	"net/http"
	"time"
)

// options holds the internal configuration for the client.
type options struct {
	logger      *slog.Logger
	httpClient  *http.Client
	eventBuffer int
	now         func() time.Time
}

// Option defines a functional option for configuring the client.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		now: time.Now,
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient injects a custom transport for the remote gateway. A
// cookie jar is attached if the client has none.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) {
		o.httpClient = h
	}
}

// WithEventBuffer sets the per-subscriber buffer of the session and
// collection signal channels. Zero means the default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithClock overrides the clock used for statistics derivation. Useful
// for testing.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
