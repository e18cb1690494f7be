package core

import "context"

// AuthGateway is the contract for the remote authentication endpoints.
// Implementations classify every failure into *APIError.
type AuthGateway interface {
	// Login authenticates with the remote service. The returned string is
	// the server's opaque success body; the session cookie is captured by
	// the underlying transport.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Register creates an account. A successful registration leaves the
	// caller authenticated, same as Login.
	Register(ctx context.Context, profile Profile) (string, error)
}

// NoteGateway is the contract for note CRUD against the remote service.
// No caching, no retries; every call carries the session credential and
// every failure is classified into *APIError.
type NoteGateway interface {
	// List returns all notes belonging to the authenticated user.
	List(ctx context.Context) ([]Note, error)

	// Create stores a new note and returns the canonical server record,
	// including assigned ID and timestamps.
	Create(ctx context.Context, draft Draft) (Note, error)

	// Get retrieves a single note by ID.
	Get(ctx context.Context, id int64) (Note, error)

	// Update replaces a note's title and content and returns the updated
	// server record.
	Update(ctx context.Context, id int64, draft Draft) (Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, id int64) error
}
