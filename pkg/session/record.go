package session

import (
	"encoding/json"

	"github.com/inkpad/inkpad/pkg/core"
)

// record is the durable JSON form of the session: the identity fields
// plus the authenticated flag.
type record struct {
	Username      string `json:"username,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	Email         string `json:"email"`
	Authenticated bool   `json:"isAuthenticated"`
}

func encodeRecord(id core.Identity) ([]byte, error) {
	return json.Marshal(record{
		Username:      id.Username,
		FullName:      id.FullName,
		Email:         id.Email,
		Authenticated: true,
	})
}

// decodeRecord turns stored bytes into an identity. Corrupted or
// unauthenticated records decode to nil: bad local state means
// "no session", never an error.
func decodeRecord(data []byte) *core.Identity {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	if !rec.Authenticated {
		return nil
	}
	return &core.Identity{
		Username: rec.Username,
		FullName: rec.FullName,
		Email:    rec.Email,
	}
}
