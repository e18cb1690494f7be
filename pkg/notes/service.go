// Package notes composes the remote note gateway, the session store and
// the collection view model behind a single policy: any call that fails
// as unauthenticated tears the session down and reports the normalized
// session-expired condition, so no caller ever special-cases a 401 by
// hand. Every other failure propagates unchanged and leaves the locally
// held collection intact.
package notes

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/inkpad/inkpad/pkg/collection"
	"github.com/inkpad/inkpad/pkg/core"
	"github.com/inkpad/inkpad/pkg/session"
	"github.com/inkpad/inkpad/pkg/signal"
)

// ChangeEvent is the "collection changed" signal: the full ordered note
// set plus its derived statistics.
type ChangeEvent struct {
	Notes []core.Note
	Stats collection.Stats
}

// Config holds the configuration for the note service.
type Config struct {
	Gateway core.NoteGateway
	Session *session.Store
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// EventBuffer is the per-subscriber channel buffer. Zero means
	// session.DefaultEventBuffer.
	EventBuffer int
	// Now is the clock used for stats derivation. Defaults to time.Now.
	Now func() time.Time
}

// Service is the session-aware caller wrapping every note operation.
// The collection it holds is a cache, not the source of truth: every
// mutation re-synchronizes from the server's returned representation.
type Service struct {
	gateway core.NoteGateway
	session *session.Store
	logger  *slog.Logger
	now     func() time.Time
	broker  *signal.Broker[ChangeEvent]

	mu    sync.RWMutex
	notes []core.Note // kept in derived order
}

// NewService creates the note service.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = session.DefaultEventBuffer
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		gateway: cfg.Gateway,
		session: cfg.Session,
		logger:  cfg.Logger,
		now:     cfg.Now,
		broker:  signal.New[ChangeEvent](cfg.EventBuffer, cfg.Logger),
	}
}

// Refresh fetches the full note set from the service and replaces the
// local collection. On failure the previously loaded collection is left
// untouched.
func (s *Service) Refresh(ctx context.Context) ([]core.Note, collection.Stats, error) {
	fetched, err := s.gateway.List(ctx)
	if err != nil {
		return nil, collection.Stats{}, s.guard(err)
	}

	s.replace(fetched)
	notes, stats := s.View()
	return notes, stats, nil
}

// Create stores a new note and folds the server's canonical record into
// the collection. The note is prepended and the whole set re-derived: the
// server's clock decides where it actually lands, which is not
// necessarily first.
func (s *Service) Create(ctx context.Context, draft core.Draft) (core.Note, error) {
	created, err := s.gateway.Create(ctx, draft)
	if err != nil {
		return core.Note{}, s.guard(err)
	}

	s.mu.Lock()
	s.notes = collection.DeriveOrder(append([]core.Note{created}, s.notes...))
	s.mu.Unlock()

	s.publish()
	return created, nil
}

// Get retrieves a single note. It does not touch the local collection.
func (s *Service) Get(ctx context.Context, id int64) (core.Note, error) {
	note, err := s.gateway.Get(ctx, id)
	if err != nil {
		return core.Note{}, s.guard(err)
	}
	return note, nil
}

// Update replaces a note's title and content, then folds the updated
// server record into the collection in place.
func (s *Service) Update(ctx context.Context, id int64, draft core.Draft) (core.Note, error) {
	updated, err := s.gateway.Update(ctx, id, draft)
	if err != nil {
		return core.Note{}, s.guard(err)
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == updated.ID {
			s.notes[i] = updated
			break
		}
	}
	s.notes = collection.DeriveOrder(s.notes)
	s.mu.Unlock()

	s.publish()
	return updated, nil
}

// Delete removes a note remotely and drops it from the collection.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return s.guard(err)
	}

	s.mu.Lock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	s.mu.Unlock()

	s.publish()
	return nil
}

// View returns a copy of the ordered collection and its statistics,
// derived at the service clock's current time.
func (s *Service) View() ([]core.Note, collection.Stats) {
	s.mu.RLock()
	notes := make([]core.Note, len(s.notes))
	copy(notes, s.notes)
	s.mu.RUnlock()

	return notes, collection.DeriveStats(notes, s.now())
}

// Subscribe registers a "collection changed" listener.
func (s *Service) Subscribe() (string, <-chan ChangeEvent) {
	return s.broker.Subscribe()
}

// Unsubscribe removes a listener and closes its channel.
func (s *Service) Unsubscribe(token string) {
	s.broker.Unsubscribe(token)
}

// Close closes every subscriber channel.
func (s *Service) Close() {
	s.broker.Close()
}

// guard applies the session policy to a classified failure: an
// unauthenticated error forces local session teardown, clears the
// collection and collapses to the single session-expired condition.
// Everything else passes through untouched.
func (s *Service) guard(err error) error {
	if !core.IsUnauthenticated(err) {
		return err
	}

	s.logger.Warn("remote call rejected as unauthenticated, tearing down session")
	s.session.Logout()

	s.mu.Lock()
	s.notes = nil
	s.mu.Unlock()
	s.publish()

	return core.ErrSessionExpired
}

func (s *Service) replace(fetched []core.Note) {
	ordered := collection.DeriveOrder(fetched)

	s.mu.Lock()
	s.notes = ordered
	s.mu.Unlock()

	s.publish()
}

func (s *Service) publish() {
	notes, stats := s.View()
	s.broker.Publish(ChangeEvent{Notes: notes, Stats: stats})
}
