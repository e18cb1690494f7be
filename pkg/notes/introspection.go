package notes

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	NoteCount   int  `json:"note_count"`
	Subscribers int  `json:"subscribers"`
	SessionLive bool `json:"session_live"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	count := len(s.notes)
	s.mu.RUnlock()

	return ServiceState{
		NoteCount:   count,
		Subscribers: s.broker.Len(),
		SessionLive: s.session.IsAuthenticated(),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "note-service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
