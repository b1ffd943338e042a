// Package httpapi exposes the survey engine over a JSON HTTP API. Each
// session is keyed by its identity handle; the server serializes access per
// handle so one respondent's events are processed strictly in order.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/lstw2025/sv-documentation-platform/internal/adapters/identity"
	"github.com/lstw2025/sv-documentation-platform/internal/logging"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
	"github.com/lstw2025/sv-documentation-platform/pkg/ports"
)

// Engine is the surface the server needs from the intake engine.
type Engine interface {
	Start(ctx context.Context, handle string) *domain.SessionState
	Current(state *domain.SessionState) domain.View
	Advance(state *domain.SessionState) domain.View
	Retreat(state *domain.SessionState) domain.View
	CanAdvance(state *domain.SessionState) bool
	SetResponse(ctx context.Context, state *domain.SessionState, questionID string, resp domain.Response) (bool, error)
	Skip(ctx context.Context, state *domain.SessionState, questionID string) error
	Progress(state *domain.SessionState) (answered, total int)
	Tick(ctx context.Context, state *domain.SessionState)
	Save(ctx context.Context, state *domain.SessionState) error
	Complete(ctx context.Context, state *domain.SessionState)
	Abandon(ctx context.Context, state *domain.SessionState)
}

// Server binds the engine and an identity provider to HTTP.
type Server struct {
	engine   Engine
	identity ports.IdentityProvider
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs a respondent's state with the lock that serializes their
// requests. The engine processes one event at a time per session; overlapping
// handlers for the same handle queue here.
type session struct {
	mu    sync.Mutex
	state *domain.SessionState
}

// Option configures the server.
type Option func(*Server)

// WithIdentityProvider enables the /register and /login endpoints.
func WithIdentityProvider(p ports.IdentityProvider) Option {
	return func(s *Server) {
		s.identity = p
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine:   engine,
		logger:   logging.NewNop(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/register", s.register)
	r.Post("/login", s.login)

	r.Route("/sessions/{handle}", func(r chi.Router) {
		r.Get("/", s.current)
		r.Put("/responses/{questionID}", s.respond)
		r.Post("/responses/{questionID}/skip", s.skip)
		r.Post("/advance", s.advance)
		r.Post("/retreat", s.retreat)
		r.Post("/save", s.save)
		r.Post("/complete", s.complete)
		r.Delete("/", s.abandon)
	})

	return r
}

// lockSession returns the state for a handle with its lock held, starting
// (or resuming) the session on first access. The caller must invoke unlock
// after its last engine call; until then no other request for the same
// handle can touch the state.
func (s *Server) lockSession(ctx context.Context, handle string) (state *domain.SessionState, unlock func()) {
	s.mu.Lock()
	sess, ok := s.sessions[handle]
	if !ok {
		sess = &session{}
		s.sessions[handle] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	if sess.state == nil {
		sess.state = s.engine.Start(ctx, handle)
	}
	return sess.state, sess.mu.Unlock
}

func (s *Server) drop(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, handle)
}

type credentialsRequest struct {
	Pseudonym string `json:"pseudonym"`
	Password  string `json:"password"`
}

type identityResponse struct {
	Handle string `json:"handle"`
}

type viewResponse struct {
	View       domain.View `json:"view"`
	CanAdvance bool        `json:"can_advance"`
	Answered   int         `json:"answered"`
	Total      int         `json:"total"`
}

type respondRequest struct {
	Response domain.Response `json:"response"`
}

type respondResponse struct {
	Crisis bool `json:"crisis"`
	viewResponse
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	s.credentials(w, r, true)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	s.credentials(w, r, false)
}

func (s *Server) credentials(w http.ResponseWriter, r *http.Request, register bool) {
	if s.identity == nil {
		http.Error(w, "identity provider not configured", http.StatusNotImplemented)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var (
		id  ports.Identity
		err error
	)
	if register {
		id, err = s.identity.Register(r.Context(), req.Pseudonym, req.Password)
	} else {
		id, err = s.identity.Authenticate(r.Context(), req.Pseudonym, req.Password)
	}
	if err != nil {
		status := http.StatusUnauthorized
		switch {
		case errors.Is(err, identity.ErrPseudonymTaken):
			status = http.StatusConflict
		case errors.Is(err, identity.ErrPasswordTooShort):
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{Handle: id.Handle})
}

func (s *Server) current(w http.ResponseWriter, r *http.Request) {
	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()
	writeJSON(w, http.StatusOK, s.view(state))
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	questionID := chi.URLParam(r, "questionID")

	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()

	crisis, err := s.engine.SetResponse(r.Context(), state, questionID, req.Response)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.engine.Tick(r.Context(), state)

	writeJSON(w, http.StatusOK, respondResponse{Crisis: crisis, viewResponse: s.view(state)})
}

func (s *Server) skip(w http.ResponseWriter, r *http.Request) {
	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()
	questionID := chi.URLParam(r, "questionID")

	if err := s.engine.Skip(r.Context(), state, questionID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.engine.Tick(r.Context(), state)

	writeJSON(w, http.StatusOK, s.view(state))
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()

	if s.engine.Current(state).Phase == domain.PhaseSurveyComplete {
		// Already at the end; report the completed view rather than a
		// conflict about a question that does not exist.
		writeJSON(w, http.StatusOK, s.view(state))
		return
	}
	if !s.engine.CanAdvance(state) {
		http.Error(w, "current question requires a response", http.StatusConflict)
		return
	}
	s.engine.Advance(state)
	s.engine.Tick(r.Context(), state)
	writeJSON(w, http.StatusOK, s.view(state))
}

func (s *Server) retreat(w http.ResponseWriter, r *http.Request) {
	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()
	s.engine.Retreat(state)
	writeJSON(w, http.StatusOK, s.view(state))
}

func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	state, unlock := s.lockSession(r.Context(), chi.URLParam(r, "handle"))
	defer unlock()
	if err := s.engine.Save(r.Context(), state); err != nil {
		// The draft stays in memory; the next autosave retries.
		s.logger.Error("manual save failed", "handle", state.Handle, "err", err)
		http.Error(w, "save failed", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	state, unlock := s.lockSession(r.Context(), handle)
	defer unlock()
	s.engine.Complete(r.Context(), state)
	s.drop(handle)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) abandon(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	state, unlock := s.lockSession(r.Context(), handle)
	defer unlock()
	s.engine.Abandon(r.Context(), state)
	s.drop(handle)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) view(state *domain.SessionState) viewResponse {
	answered, total := s.engine.Progress(state)
	return viewResponse{
		View:       s.engine.Current(state),
		CanAdvance: s.engine.CanAdvance(state),
		Answered:   answered,
		Total:      total,
	}
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"question_id": vErr.QuestionID,
			"reason":      vErr.Reason,
		})
	case errors.Is(err, domain.ErrUnknownQuestion):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotSkippable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
