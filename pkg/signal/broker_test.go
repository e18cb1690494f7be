package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return 0
	}
}

func TestBroker_FanOut(t *testing.T) {
	b := New[int](4, nil)
	defer b.Close()

	t1, ch1 := b.Subscribe()
	t2, ch2 := b.Subscribe()
	defer b.Unsubscribe(t1)
	defer b.Unsubscribe(t2)

	b.Publish(42)

	assert.Equal(t, 42, recv(t, ch1))
	assert.Equal(t, 42, recv(t, ch2))
}

func TestBroker_SlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	b := New[int](1, nil)
	defer b.Close()

	token, ch := b.Subscribe()
	defer b.Unsubscribe(token)

	done := make(chan struct{})
	go func() {
		// Nobody reads ch yet; the second publish must drop, not block.
		b.Publish(1)
		b.Publish(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a full subscriber buffer")
	}

	assert.Equal(t, 1, recv(t, ch))
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := New[int](1, nil)
	defer b.Close()

	token, ch := b.Subscribe()
	b.Unsubscribe(token)

	_, open := <-ch
	assert.False(t, open)

	// Unknown tokens are ignored.
	b.Unsubscribe("no-such-token")
}

func TestBroker_CloseIsTerminal(t *testing.T) {
	b := New[int](1, nil)

	_, ch := b.Subscribe()
	b.Close()

	_, open := <-ch
	require.False(t, open)

	// Publishing and subscribing after close are harmless.
	b.Publish(7)
	_, late := b.Subscribe()
	_, open = <-late
	assert.False(t, open)
	assert.Zero(t, b.Len())
}
