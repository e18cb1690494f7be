// Package apitest provides an in-process imitation of the remote note
// service for tests: session-cookie auth, note CRUD and switches to force
// failure responses. It is test tooling, not product server logic.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/inkpad/inkpad/pkg/core"
)

const cookieName = "SESSION"

// wireLayout is the zone-less LocalDateTime format the real backend
// emits.
const wireLayout = "2006-01-02T15:04:05"

// forcedResponse, when armed, answers the next note request regardless of
// state.
type forcedResponse struct {
	status  int
	body    any
	isJSON  bool
	pending bool
}

// Server is the fake note service.
type Server struct {
	URL string

	mu       sync.Mutex
	users    map[string]string // email -> password
	sessions map[string]bool   // cookie token -> live
	notes    map[int64]core.Note
	nextID   int64
	forced   forcedResponse
	clock    func() time.Time

	httpSrv *httptest.Server
}

// NewServer starts the fake service and registers its shutdown with t.
func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]string),
		sessions: make(map[string]bool),
		notes:    make(map[int64]core.Note),
		clock:    time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.POST("/api/auth/login", s.handleLogin)
	e.POST("/api/auth/register", s.handleRegister)

	api := e.Group("/api/notes", s.requireSession)
	api.GET("", s.handleList)
	api.POST("", s.handleCreate)
	api.GET("/:id", s.handleGet)
	api.PUT("/:id", s.handleUpdate)
	api.DELETE("/:id", s.handleDelete)

	s.httpSrv = httptest.NewServer(e)
	s.URL = s.httpSrv.URL
	t.Cleanup(s.httpSrv.Close)
	return s
}

// SeedUser registers an account without going through the API.
func (s *Server) SeedUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// SeedNote inserts a note directly, bypassing auth, and returns it.
func (s *Server) SeedNote(title, content string, createdAt, updatedAt time.Time) core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n := core.Note{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt.Format(wireLayout),
		UpdatedAt: updatedAt.Format(wireLayout),
	}
	s.notes[n.ID] = n
	return n
}

// ExpireSessions invalidates every issued session cookie; subsequent note
// calls answer 401.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]bool)
}

// FailNext forces the next note request to answer the given status with a
// plain-text body.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = forcedResponse{status: status, body: body, pending: true}
}

// FailNextJSON forces the next note request to answer the given status
// with a JSON body.
func (s *Server) FailNextJSON(status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = forcedResponse{status: status, body: body, isJSON: true, pending: true}
}

// SetClock overrides the timestamp source for created/updated notes.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = now
}

// NoteCount reports the number of stored notes.
func (s *Server) NoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

func (s *Server) takeForced() (forcedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.forced.pending {
		return forcedResponse{}, false
	}
	f := s.forced
	s.forced = forcedResponse{}
	return f, true
}

func (s *Server) handleLogin(c echo.Context) error {
	var creds core.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.String(http.StatusBadRequest, "Malformed request")
	}

	s.mu.Lock()
	password, ok := s.users[creds.Email]
	s.mu.Unlock()
	if !ok || password != creds.Password {
		return c.String(http.StatusUnauthorized, "Bad credentials")
	}

	s.issueSession(c)
	return c.String(http.StatusOK, "User logged in successfully")
}

func (s *Server) handleRegister(c echo.Context) error {
	var profile core.Profile
	if err := c.Bind(&profile); err != nil {
		return c.String(http.StatusBadRequest, "Malformed request")
	}
	if profile.Email == "" || profile.Password == "" {
		return c.String(http.StatusBadRequest, "Email and password are required")
	}

	s.mu.Lock()
	s.users[profile.Email] = profile.Password
	s.mu.Unlock()

	s.issueSession(c)
	return c.String(http.StatusOK, "User registered successfully")
}

func (s *Server) issueSession(c echo.Context) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = true
	s.mu.Unlock()

	c.SetCookie(&http.Cookie{Name: cookieName, Value: token, Path: "/"})
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if f, ok := s.takeForced(); ok {
			if f.isJSON {
				return c.JSON(f.status, f.body)
			}
			return c.String(f.status, f.body.(string))
		}

		cookie, err := c.Cookie(cookieName)
		if err != nil {
			return c.String(http.StatusUnauthorized, "Full authentication is required")
		}
		s.mu.Lock()
		live := s.sessions[cookie.Value]
		s.mu.Unlock()
		if !live {
			return c.String(http.StatusUnauthorized, "Full authentication is required")
		}
		return next(c)
	}
}

func (s *Server) handleList(c echo.Context) error {
	s.mu.Lock()
	all := make([]core.Note, 0, len(s.notes))
	for _, n := range s.notes {
		all = append(all, n)
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, all)
}

func (s *Server) handleCreate(c echo.Context) error {
	var draft core.Draft
	if err := c.Bind(&draft); err != nil {
		return c.String(http.StatusBadRequest, "Malformed request")
	}
	if draft.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Title is required"})
	}

	s.mu.Lock()
	s.nextID++
	now := s.clock().Format(wireLayout)
	n := core.Note{
		ID:        s.nextID,
		Title:     draft.Title,
		Content:   draft.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes[n.ID] = n
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, n)
}

func (s *Server) noteID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func (s *Server) handleGet(c echo.Context) error {
	id, err := s.noteID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Malformed note id")
	}

	s.mu.Lock()
	n, ok := s.notes[id]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Note not found"})
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleUpdate(c echo.Context) error {
	id, err := s.noteID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Malformed note id")
	}

	var draft core.Draft
	if err := c.Bind(&draft); err != nil {
		return c.String(http.StatusBadRequest, "Malformed request")
	}

	s.mu.Lock()
	n, ok := s.notes[id]
	if ok {
		n.Title = draft.Title
		n.Content = draft.Content
		n.UpdatedAt = s.clock().Format(wireLayout)
		s.notes[id] = n
	}
	s.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Note not found"})
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleDelete(c echo.Context) error {
	id, err := s.noteID(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Malformed note id")
	}

	s.mu.Lock()
	_, ok := s.notes[id]
	delete(s.notes, id)
	s.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Note not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
