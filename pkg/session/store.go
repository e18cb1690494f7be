// Package session is the single source of truth for "who is logged in".
//
// Each process keeps an in-memory mirror of a durable session record
// shared through a single JSON file in the state directory. Two signal
// channels keep mirrors consistent: an fsnotify watcher fires when
// another process rewrites the file, and the store notifies itself after
// its own mutations. Both converge on the same idempotent action — reread
// the file and republish — so the store never reasons about which channel
// fired, and duplicate signals are harmless.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/inkpad/inkpad/pkg/core"
	"github.com/inkpad/inkpad/pkg/signal"
)

// FileName is the name of the durable session record inside the state
// directory. Removal of the file is equivalent to logout.
const FileName = "session.json"

// DefaultEventBuffer is the per-subscriber channel buffer when none is
// configured.
const DefaultEventBuffer = 16

// Config holds the configuration for the session store.
type Config struct {
	// Dir is the state directory shared by every process of this client.
	Dir string
	// Gateway performs the remote authentication calls.
	Gateway core.AuthGateway
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// EventBuffer is the per-subscriber channel buffer. Zero means
	// DefaultEventBuffer.
	EventBuffer int
}

// Store replicates the durable session record into an in-process mirror
// and republishes changes to every subscriber.
type Store struct {
	path    string
	gateway core.AuthGateway
	logger  *slog.Logger
	broker  *signal.Broker[Event]

	mu            sync.RWMutex
	current       *core.Identity
	watcherActive bool

	watcher *watchWorker
}

// NewStore creates the store, ensures the state directory exists and
// loads the current record. It does not start cross-process watching;
// call Watch for that.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("session: state directory is required")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("session: auth gateway is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}

	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: failed to create state directory: %w", err)
	}

	s := &Store{
		path:    filepath.Join(cfg.Dir, FileName),
		gateway: cfg.Gateway,
		logger:  cfg.Logger,
		broker:  signal.New[Event](cfg.EventBuffer, cfg.Logger),
	}
	s.refresh()
	return s, nil
}

// Watch starts the cross-process signal channel: an fsnotify watcher on
// the state directory that rereads the record whenever another process
// rewrites or removes it.
func (s *Store) Watch(ctx context.Context) error {
	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: store is already watching")
	}
	w := newWatchWorker(s)
	s.watcher = w
	s.mu.Unlock()

	if err := w.Start(ctx); err != nil {
		s.mu.Lock()
		s.watcher = nil
		s.mu.Unlock()
		return err
	}
	return nil
}

// Close stops the watcher, if any, and closes every subscriber channel.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	var err error
	if w != nil {
		err = w.Stop(ctx)
	}
	s.broker.Close()
	return err
}

// Login authenticates against the remote service and, on success,
// persists the session record and signals all contexts. On failure the
// classified error is returned and no identity changes. Only the email is
// recorded; the service reports login success with an opaque body.
func (s *Store) Login(ctx context.Context, creds core.Credentials) (*core.Identity, error) {
	msg, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("login succeeded", "email", creds.Email, "response", msg)

	if err := s.persist(core.Identity{Email: creds.Email}); err != nil {
		return nil, err
	}
	s.refresh()
	return s.Current(), nil
}

// Register creates an account. A successful registration authenticates
// immediately: the full profile identity is persisted, same as login.
func (s *Store) Register(ctx context.Context, profile core.Profile) (*core.Identity, error) {
	msg, err := s.gateway.Register(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("registration succeeded", "email", profile.Email, "response", msg)

	if err := s.persist(profile.Identity()); err != nil {
		return nil, err
	}
	s.refresh()
	return s.Current(), nil
}

// Logout removes the durable record and signals all contexts. It is
// purely local: the remote side expires its own session independently.
func (s *Store) Logout() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove session record", "path", s.path, "error", err)
	}
	s.refresh()
}

// Current returns the in-process mirror of the identity, or nil when no
// session is active. The value is a copy; callers cannot mutate the
// store's state through it.
func (s *Store) Current() *core.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// IsAuthenticated reports whether a session is active in this process's
// mirror.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil
}

// Subscribe registers a "session changed" listener. Every event carries
// the full current identity (or nil), so missed events are harmless.
func (s *Store) Subscribe() (string, <-chan Event) {
	return s.broker.Subscribe()
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(token string) {
	s.broker.Unsubscribe(token)
}

func (s *Store) persist(id core.Identity) error {
	data, err := encodeRecord(id)
	if err != nil {
		return fmt.Errorf("session: failed to encode record: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: failed to persist record: %w", err)
	}
	return nil
}

// refresh is the convergence point of both signal channels: reread the
// durable record, swap the mirror, republish. A missing or corrupt file
// decodes to "no session". Idempotent, so redundant signals are safe.
func (s *Store) refresh() {
	var id *core.Identity
	if data, err := os.ReadFile(s.path); err == nil {
		id = decodeRecord(data)
	}

	s.mu.Lock()
	s.current = id
	s.mu.Unlock()

	s.broker.Publish(Event{Identity: id})
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
