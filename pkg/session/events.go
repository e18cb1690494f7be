package session

import (
	"github.com/inkpad/inkpad/pkg/core"
)

// Event is the "session changed" signal delivered to subscribers. The
// identity is nil when no session is active. Every event carries the full
// current state, so a missed or duplicated event is harmless.
type Event struct {
	Identity *core.Identity
}
