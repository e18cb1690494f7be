package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpad/inkpad/pkg/core"
)

// stubGateway implements core.AuthGateway without any network.
type stubGateway struct {
	loginErr    error
	registerErr error
	calls       atomic.Int64
}

func (g *stubGateway) Login(ctx context.Context, creds core.Credentials) (string, error) {
	g.calls.Add(1)
	if g.loginErr != nil {
		return "", g.loginErr
	}
	return "User logged in successfully", nil
}

func (g *stubGateway) Register(ctx context.Context, profile core.Profile) (string, error) {
	g.calls.Add(1)
	if g.registerErr != nil {
		return "", g.registerErr
	}
	return "User registered successfully", nil
}

func newTestStore(t *testing.T, dir string, gw core.AuthGateway) *Store {
	t.Helper()
	store, err := NewStore(Config{Dir: dir, Gateway: gw})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func waitForEvent(t *testing.T, events <-chan Event, match func(Event) bool) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-events:
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for session event")
		}
	}
}

func TestStore_LoginPersistsAndSignals(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir, &stubGateway{})

	token, events := store.Subscribe()
	defer store.Unsubscribe(token)

	id, err := store.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.True(t, store.IsAuthenticated())

	// Same-process channel fires without any watcher.
	ev := waitForEvent(t, events, func(ev Event) bool { return ev.Identity != nil })
	assert.Equal(t, "ada@example.com", ev.Identity.Email)

	// Durable record exists.
	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, statErr)
}

func TestStore_LoginFailureChangesNothing(t *testing.T) {
	dir := t.TempDir()
	gwErr := &core.APIError{Kind: core.KindUnauthenticated, Status: 401, Message: core.SessionExpiredMessage}
	store := newTestStore(t, dir, &stubGateway{loginErr: gwErr})

	id, err := store.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "bad"})
	require.Error(t, err)
	assert.Nil(t, id)
	assert.True(t, errors.Is(err, gwErr))
	assert.False(t, store.IsAuthenticated())

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RegisterStoresFullProfile(t *testing.T) {
	store := newTestStore(t, t.TempDir(), &stubGateway{})

	id, err := store.Register(context.Background(), core.Profile{
		Username: "ada",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "ada", id.Username)
	assert.Equal(t, "Ada Lovelace", id.FullName)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestStore_LogoutClearsRecordAndSignals(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir, &stubGateway{})

	_, err := store.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	token, events := store.Subscribe()
	defer store.Unsubscribe(token)

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Current())
	waitForEvent(t, events, func(ev Event) bool { return ev.Identity == nil })

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_LogoutWithoutSessionIsHarmless(t *testing.T) {
	store := newTestStore(t, t.TempDir(), &stubGateway{})
	store.Logout()
	assert.False(t, store.IsAuthenticated())
}

func TestStore_CorruptRecordMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o600))

	store := newTestStore(t, dir, &stubGateway{})

	assert.Nil(t, store.Current())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_UnauthenticatedRecordMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"email":"ada@example.com","isAuthenticated":false}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o600))

	store := newTestStore(t, dir, &stubGateway{})
	assert.False(t, store.IsAuthenticated())
}

func TestStore_ExistingRecordLoadedOnStart(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"username":"ada","email":"ada@example.com","isAuthenticated":true}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o600))

	store := newTestStore(t, dir, &stubGateway{})

	id := store.Current()
	require.NotNil(t, id)
	assert.Equal(t, "ada", id.Username)
}

func TestStore_CrossProcessLoginVisibleThroughWatcher(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := newTestStore(t, dir, &stubGateway{})

	observerGateway := &stubGateway{}
	observer := newTestStore(t, dir, observerGateway)
	require.NoError(t, observer.Watch(ctx))

	token, events := observer.Subscribe()
	defer observer.Unsubscribe(token)

	// Give fsnotify a moment to arm.
	time.Sleep(100 * time.Millisecond)

	_, err := writer.Login(context.Background(), core.Credentials{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	ev := waitForEvent(t, events, func(ev Event) bool { return ev.Identity != nil })
	assert.Equal(t, "ada@example.com", ev.Identity.Email)
	assert.True(t, observer.IsAuthenticated())

	// The observer converged without making any network call.
	assert.Zero(t, observerGateway.calls.Load())

	// And a logout elsewhere propagates the same way.
	writer.Logout()
	waitForEvent(t, events, func(ev Event) bool { return ev.Identity == nil })
	assert.False(t, observer.IsAuthenticated())
}

func TestStore_WatchTwiceFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newTestStore(t, t.TempDir(), &stubGateway{})
	require.NoError(t, store.Watch(ctx))
	assert.Error(t, store.Watch(ctx))
}
