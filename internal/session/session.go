// Package session implementa la máquina de estados de autenticación con
// persistencia del usuario ("recordarme").
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/storage"
)

// Status es el estado de la sesión
type Status string

const (
	StatusLoggedOut      Status = "loggedOut"
	StatusAuthenticating Status = "authenticating"
	StatusLoggedIn       Status = "loggedIn"
)

// ErrNotAuthenticated se devuelve al actualizar el perfil sin usuario
var ErrNotAuthenticated = errors.New("not authenticated")

// supersededMessage se informa a una operación que quedó vieja
const supersededMessage = "Request superseded by a newer submission"

// State es la foto pública de la sesión
type State struct {
	Status          Status       `json:"status"`
	IsAuthenticated bool         `json:"is_authenticated"`
	User            *models.User `json:"user"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
}

// Result es lo que recibe la UI de login/signup
type Result struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Superseded bool   `json:"superseded,omitempty"`
}

type Session struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	provider Provider
	store    *storage.Store
	logger   logger.Logger
}

// New arranca en loggedOut; store puede ser nil
func New(provider Provider, store *storage.Store, log logger.Logger) *Session {
	if provider == nil {
		panic("session: nil provider")
	}
	return &Session{
		state:    State{Status: StatusLoggedOut},
		provider: provider,
		store:    store,
		logger:   logger.OrNoOp(log),
	}
}

// Restore reanuda un usuario persistido sin re-autenticar. Si el registro
// no se puede leer, se descarta y la sesión queda en loggedOut.
func (s *Session) Restore() {
	if s.store == nil {
		return
	}

	user, ok := storage.Lookup[*models.User](s.store, storage.KeySessionUser)
	if !ok || user == nil || user.Email == "" {
		s.store.Remove(storage.KeySessionUser)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{Status: StatusLoggedIn, IsAuthenticated: true, User: user}
	s.logger.Info("Session resumed", map[string]interface{}{
		"user_id": user.ID,
	})
}

// State devuelve una copia del estado actual
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// begin entra en authenticating y devuelve el número de envío. Un re-login
// suelta al usuario anterior: mientras se autentica no hay sesión válida.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state = State{Status: StatusAuthenticating, Loading: true}
	return s.seq
}

// Login valida credenciales contra el Provider
func (s *Session) Login(ctx context.Context, email, password string) Result {
	seq := s.begin()
	user, token, err := s.provider.Login(ctx, email, password)
	return s.finish(seq, "login", user, token, err)
}

// Signup crea la cuenta y deja la sesión iniciada
func (s *Session) Signup(ctx context.Context, req models.SignupRequest) Result {
	seq := s.begin()
	user, token, err := s.provider.Signup(ctx, req)
	return s.finish(seq, "signup", user, token, err)
}

// finish aplica el resultado sólo si seq sigue siendo el último envío
func (s *Session) finish(seq uint64, op string, user *models.User, token string, err error) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("Discarding superseded auth result", map[string]interface{}{
			"op": op,
		})
		return Result{Success: false, Error: supersededMessage, Superseded: true}
	}

	if err != nil {
		msg := userMessage(err)
		s.state = State{Status: StatusLoggedOut, Error: msg}
		s.logger.Warn("Authentication failed", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
		return Result{Success: false, Error: msg}
	}

	s.state = State{Status: StatusLoggedIn, IsAuthenticated: true, User: user}
	if s.store != nil {
		s.store.Save(storage.KeySessionUser, user)
		s.store.Save(storage.KeySessionToken, token)
	}
	s.logger.Info("Authenticated", map[string]interface{}{
		"op":      op,
		"user_id": user.ID,
	})
	return Result{Success: true}
}

// userMessage evita mostrar errores internos al usuario
func userMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out, please try again"
	}
	return "Something went wrong, please try again"
}

// Logout vuelve a loggedOut sin condiciones y borra usuario y token persistidos
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	s.state = State{Status: StatusLoggedOut}
	s.mu.Unlock()

	token := ""
	if s.store != nil {
		token = storage.Load(s.store, storage.KeySessionToken, "")
	}
	if err := s.provider.Logout(ctx, token); err != nil {
		s.logger.Warn("Provider logout failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.store != nil {
		s.store.Remove(storage.KeySessionUser)
		s.store.Remove(storage.KeySessionToken)
	}
}

// UpdateProfile hace un merge superficial sobre el usuario actual y lo persiste
func (s *Session) UpdateProfile(update models.ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return models.User{}, fmt.Errorf("update profile: %w", ErrNotAuthenticated)
	}

	merged := update.Apply(*s.state.User)
	s.state.User = &merged
	if s.store != nil {
		s.store.Save(storage.KeySessionUser, merged)
	}
	return merged, nil
}

// ClearError sólo limpia el mensaje de error
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}
