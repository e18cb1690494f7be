package platform

import (
	"context"
	"log/slog"

	"github.com/inkpad/inkpad/pkg/adapters/rest"
	"github.com/inkpad/inkpad/pkg/notes"
	"github.com/inkpad/inkpad/pkg/session"
)

// App wires the remote gateway, the session store and the note service
// together. It is the composition root behind the public facade.
type App struct {
	Gateway  *rest.Client
	Sessions *session.Store
	Notes    *notes.Service
}

// New builds the client stack for the service at baseURL, with durable
// session state under stateDir.
func New(baseURL, stateDir string, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	restOpts := []rest.Option{rest.WithLogger(o.logger)}
	if o.httpClient != nil {
		restOpts = append(restOpts, rest.WithHTTPClient(o.httpClient))
	}
	gateway, err := rest.NewClient(baseURL, restOpts...)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(session.Config{
		Dir:         stateDir,
		Gateway:     gateway,
		Logger:      o.logger,
		EventBuffer: o.eventBuffer,
	})
	if err != nil {
		return nil, err
	}

	svc := notes.NewService(notes.Config{
		Gateway:     gateway,
		Session:     sessions,
		Logger:      o.logger,
		EventBuffer: o.eventBuffer,
		Now:         o.now,
	})

	return &App{
		Gateway:  gateway,
		Sessions: sessions,
		Notes:    svc,
	}, nil
}

// Start begins cross-process session watching.
func (a *App) Start(ctx context.Context) error {
	return a.Sessions.Watch(ctx)
}

// Close tears down the watcher and every subscriber channel.
func (a *App) Close(ctx context.Context) error {
	a.Notes.Close()
	return a.Sessions.Close(ctx)
}
