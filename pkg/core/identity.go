package core

// Identity is the authenticated principal as seen by this client.
// It exists only while a session is active and is owned exclusively by
// the session store; other components hold read references.
type Identity struct {
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email"`
}

// Credentials are the inputs to a login call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile are the inputs to a registration call. Registration yields an
// authenticated identity immediately; there is no confirmation step.
type Profile struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity returns the identity a successful registration establishes.
func (p Profile) Identity() Identity {
	return Identity{Username: p.Username, FullName: p.FullName, Email: p.Email}
}
