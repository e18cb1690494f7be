package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad/inkpad/pkg/core"
	"github.com/inkpad/inkpad/pkg/session"
)

const wire = "2006-01-02T15:04:05"

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func unauthnErr() *core.APIError {
	return &core.APIError{Kind: core.KindUnauthenticated, Status: 401, Message: core.SessionExpiredMessage}
}

func serverErr() *core.APIError {
	return &core.APIError{Kind: core.KindNetworkOrServer, Status: 500, Message: "boom"}
}

// scriptedGateway implements core.NoteGateway with canned responses.
type scriptedGateway struct {
	notes     []core.Note
	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	nextID    int64
}

func (g *scriptedGateway) List(ctx context.Context) ([]core.Note, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]core.Note, len(g.notes))
	copy(out, g.notes)
	return out, nil
}

func (g *scriptedGateway) Create(ctx context.Context, draft core.Draft) (core.Note, error) {
	if g.createErr != nil {
		return core.Note{}, g.createErr
	}
	g.nextID++
	n := core.Note{
		ID:        g.nextID + 1000,
		Title:     draft.Title,
		Content:   draft.Content,
		CreatedAt: testNow.Format(wire),
		UpdatedAt: testNow.Format(wire),
	}
	g.notes = append(g.notes, n)
	return n, nil
}

func (g *scriptedGateway) Get(ctx context.Context, id int64) (core.Note, error) {
	if g.getErr != nil {
		return core.Note{}, g.getErr
	}
	for _, n := range g.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, &core.APIError{Kind: core.KindNotFound, Status: 404, Message: "Note not found"}
}

func (g *scriptedGateway) Update(ctx context.Context, id int64, draft core.Draft) (core.Note, error) {
	if g.updateErr != nil {
		return core.Note{}, g.updateErr
	}
	for i, n := range g.notes {
		if n.ID == id {
			n.Title = draft.Title
			n.Content = draft.Content
			n.UpdatedAt = testNow.Add(time.Minute).Format(wire)
			g.notes[i] = n
			return n, nil
		}
	}
	return core.Note{}, &core.APIError{Kind: core.KindNotFound, Status: 404, Message: "Note not found"}
}

func (g *scriptedGateway) Delete(ctx context.Context, id int64) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i, n := range g.notes {
		if n.ID == id {
			g.notes = append(g.notes[:i], g.notes[i+1:]...)
			return nil
		}
	}
	return &core.APIError{Kind: core.KindNotFound, Status: 404, Message: "Note not found"}
}

// stubAuth satisfies core.AuthGateway for the session store; these tests
// never log in over the wire.
type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, creds core.Credentials) (string, error) {
	return "ok", nil
}
func (stubAuth) Register(ctx context.Context, profile core.Profile) (string, error) {
	return "ok", nil
}

func gatewayNote(id int64, title string, activity time.Time) core.Note {
	return core.Note{
		ID:        id,
		Title:     title,
		CreatedAt: activity.Format(wire),
		UpdatedAt: activity.Format(wire),
	}
}

func newFixture(t *testing.T, gw *scriptedGateway) (*Service, *session.Store) {
	t.Helper()

	store, err := session.NewStore(session.Config{Dir: t.TempDir(), Gateway: stubAuth{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	_, err = store.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	svc := NewService(Config{
		Gateway: gw,
		Session: store,
		Now:     func() time.Time { return testNow },
	})
	t.Cleanup(svc.Close)
	return svc, store
}

func TestRefresh_OrdersAndDerivesStats(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "old", testNow.Add(-30*24*time.Hour)),
		gatewayNote(2, "fresh", testNow.Add(-time.Hour)),
		gatewayNote(3, "mid", testNow.Add(-3*24*time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	notes, stats, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, notes, 3)
	assert.Equal(t, int64(2), notes[0].ID)
	assert.Equal(t, int64(3), notes[1].ID)
	assert.Equal(t, int64(1), notes[2].ID)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ThisWeek)
	assert.Equal(t, "1 hour ago", stats.LastActivityLabel)
}

func TestCreate_ReorderedNotAssumedFirst(t *testing.T) {
	// An existing note was updated after the new note's server timestamp;
	// after re-derivation the new note must not sit on top.
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "recently updated", testNow.Add(time.Hour)),
		gatewayNote(2, "older", testNow.Add(-2*time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), core.Draft{Title: "new", Content: "x"})
	require.NoError(t, err)

	notes, stats := svc.View()
	require.Len(t, notes, 3)
	assert.Equal(t, int64(1), notes[0].ID, "note with later activity stays first")
	assert.Equal(t, created.ID, notes[1].ID)
	assert.Equal(t, 3, stats.Total)
}

func TestUpdate_FoldsServerRecordInPlace(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-2*time.Hour)),
		gatewayNote(2, "b", testNow.Add(-time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, core.Draft{Title: "a2", Content: "y"})
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Title)

	notes, _ := svc.View()
	require.Len(t, notes, 2)
	// The update pushed note 1's activity past note 2's.
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, "a2", notes[0].Title)
}

func TestDelete_RemovesFromCollection(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-2*time.Hour)),
		gatewayNote(2, "b", testNow.Add(-time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 2))

	notes, stats := svc.View()
	require.Len(t, notes, 1)
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, 1, stats.Total)
}

func TestUnauthenticated_TearsDownSession(t *testing.T) {
	ops := map[string]func(*scriptedGateway, *Service) error{
		"list": func(gw *scriptedGateway, svc *Service) error {
			gw.listErr = unauthnErr()
			_, _, err := svc.Refresh(context.Background())
			return err
		},
		"create": func(gw *scriptedGateway, svc *Service) error {
			gw.createErr = unauthnErr()
			_, err := svc.Create(context.Background(), core.Draft{Title: "t"})
			return err
		},
		"update": func(gw *scriptedGateway, svc *Service) error {
			gw.updateErr = unauthnErr()
			_, err := svc.Update(context.Background(), 1, core.Draft{Title: "t"})
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			gw := &scriptedGateway{notes: []core.Note{
				gatewayNote(1, "a", testNow.Add(-time.Hour)),
			}}
			svc, store := newFixture(t, gw)

			_, _, err := svc.Refresh(context.Background())
			require.NoError(t, err)
			require.True(t, store.IsAuthenticated())

			err = op(gw, svc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrSessionExpired))

			assert.False(t, store.IsAuthenticated(), "session must be torn down")
			notes, stats := svc.View()
			assert.Empty(t, notes, "collection must be cleared")
			assert.Equal(t, 0, stats.Total)
		})
	}
}

func TestNonAuthFailure_LeavesCollectionIntact(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-time.Hour)),
		gatewayNote(2, "b", testNow.Add(-2*time.Hour)),
	}}
	svc, store := newFixture(t, gw)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	gw.listErr = serverErr()
	_, _, err = svc.Refresh(context.Background())
	require.Error(t, err)

	var apiErr *core.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, core.KindNetworkOrServer, apiErr.Kind)
	assert.Equal(t, "boom", apiErr.Message)

	// Prior valid state survives the failure.
	notes, _ := svc.View()
	assert.Len(t, notes, 2)
	assert.True(t, store.IsAuthenticated())
}

func TestFailedCreate_DoesNotMutateCollection(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	gw.createErr = serverErr()
	_, err = svc.Create(context.Background(), core.Draft{Title: "t"})
	require.Error(t, err)

	notes, _ := svc.View()
	assert.Len(t, notes, 1)
}

func TestSubscribe_CollectionChangedEvents(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	token, events := svc.Subscribe()
	defer svc.Unsubscribe(token)

	_, _, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Len(t, ev.Notes, 1)
		assert.Equal(t, 1, ev.Stats.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for collection event")
	}
}

func TestGet_DoesNotTouchCollection(t *testing.T) {
	gw := &scriptedGateway{notes: []core.Note{
		gatewayNote(1, "a", testNow.Add(-time.Hour)),
	}}
	svc, _ := newFixture(t, gw)

	n, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ID)

	notes, _ := svc.View()
	assert.Empty(t, notes, "Get must not populate the collection")
}
