package inkpad

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkpad/inkpad/internal/platform"
	"github.com/inkpad/inkpad/pkg/collection"
	"github.com/inkpad/inkpad/pkg/core"
	"github.com/inkpad/inkpad/pkg/notes"
	"github.com/inkpad/inkpad/pkg/session"
)

// --- Types ---

// Identity is the authenticated principal.
type Identity = core.Identity

// Credentials are the inputs to Login.
type Credentials = core.Credentials

// Profile are the inputs to Register.
type Profile = core.Profile

// Note is a single note as returned by the remote service.
type Note = core.Note

// Draft is the client-authored part of a note.
type Draft = core.Draft

// Stats is the derived summary of the note collection.
type Stats = collection.Stats

// APIError is a classified remote-call failure.
type APIError = core.APIError

// SessionEvent is the "session changed" signal.
type SessionEvent = session.Event

// CollectionEvent is the "collection changed" signal.
type CollectionEvent = notes.ChangeEvent

// App is the assembled client: gateway, session store and note service.
type App = platform.App

// ErrSessionExpired is returned by note operations after an
// unauthenticated failure forced session teardown.
var ErrSessionExpired = core.ErrSessionExpired

// --- Configuration ---

// Config is the resolved runtime configuration.
type Config = platform.Config

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithHTTPClient injects a custom transport for the remote gateway.
func WithHTTPClient(h *http.Client) Option {
	return platform.WithHTTPClient(h)
}

// WithEventBuffer sets the per-subscriber buffer of the signal channels.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the clock used for statistics derivation.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New builds the client stack for the note service at baseURL, with
// durable session state under stateDir.
func New(baseURL, stateDir string, opts ...Option) (*App, error) {
	return platform.New(baseURL, stateDir, opts...)
}

// LoadConfig resolves configuration from defaults, the config file and
// INKPAD_* environment variables.
func LoadConfig() (Config, error) {
	return platform.LoadConfig()
}
