package account

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chirpweb/authkit/pkg/authn"
	"github.com/chirpweb/authkit/pkg/logger"
	"github.com/chirpweb/authkit/pkg/session"
)

// PasswordService wires password authentication into HTTP form flows:
// login, registration, logout, password change, and logout-everywhere.
type PasswordService struct {
	cfg       Config
	strategy  *authn.Strategy
	registrar *authn.Registrar
	sessions  *session.Manager
	log       *slog.Logger
}

// PasswordServiceOption configures a PasswordService.
type PasswordServiceOption func(*PasswordService)

// WithLogger sets the logger for server-side failure reporting.
func WithLogger(log *slog.Logger) PasswordServiceOption {
	return func(s *PasswordService) {
		if log != nil {
			s.log = log
		}
	}
}

func NewPasswordService(
	cfg Config,
	strategy *authn.Strategy,
	registrar *authn.Registrar,
	sessions *session.Manager,
	opts ...PasswordServiceOption,
) *PasswordService {
	s := &PasswordService{
		cfg:       cfg,
		strategy:  strategy,
		registrar: registrar,
		sessions:  sessions,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PasswordService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", s.login)
	r.Post("/register", s.register)
	r.Post("/logout", s.logout)

	r.Group(func(authed chi.Router) {
		authed.Use(s.sessions.Middleware, s.sessions.RequireAuth)
		authed.Post("/change-password", s.changePassword)
		authed.Post("/logout-everywhere", s.logoutEverywhere)
	})

	return r
}

// login authenticates the submitted email/password pair. A rejected
// credential redirects back to the form with no hint about which part
// was wrong; a backend failure is a server error, never a rejection.
func (s *PasswordService) login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	principal, err := s.strategy.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, authn.ErrInvalidCredentials) {
			http.Redirect(w, r, s.cfg.LoginFailureRedirect, http.StatusSeeOther)
			return
		}
		s.serverError(w, r, "login failed", err)
		return
	}

	if _, err := s.sessions.Login(r.Context(), w, r, principal.Email); err != nil {
		s.serverError(w, r, "session creation failed", err)
		return
	}

	http.Redirect(w, r, s.cfg.LoginRedirect, http.StatusSeeOther)
}

// register creates a new identity and logs it straight in. Any token
// the client already presented is rotated away by the session login.
func (s *PasswordService) register(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	identity, err := s.registrar.Register(r.Context(), email, password, name)
	if err != nil {
		if errors.Is(err, authn.ErrEmailAlreadyExists) || errors.Is(err, authn.ErrWeakPassword) {
			http.Redirect(w, r, s.cfg.RegisterFailureRedirect, http.StatusSeeOther)
			return
		}
		s.serverError(w, r, "registration failed", err)
		return
	}

	if _, err := s.sessions.Login(r.Context(), w, r, identity.Email); err != nil {
		s.serverError(w, r, "session creation failed", err)
		return
	}

	http.Redirect(w, r, s.cfg.RegisterRedirect, http.StatusSeeOther)
}

// logout destroys the presented session, if any, and clears the cookie.
// Anonymous requests land on the same redirect.
func (s *PasswordService) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context(), w, r); err != nil {
		s.serverError(w, r, "logout failed", err)
		return
	}
	http.Redirect(w, r, s.cfg.LogoutRedirect, http.StatusSeeOther)
}

// changePassword verifies the current secret, stores the new hash, and
// revokes every live session for the identifier, the presented one
// included. The client signs in again with the new password.
func (s *PasswordService) changePassword(w http.ResponseWriter, r *http.Request) {
	email, ok := session.IdentifierFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	current := r.PostFormValue("current_password")
	next := r.PostFormValue("new_password")

	if err := s.registrar.ChangePassword(r.Context(), email, current, next); err != nil {
		if errors.Is(err, authn.ErrInvalidCredentials) || errors.Is(err, authn.ErrWeakPassword) {
			http.Error(w, "password change rejected", http.StatusBadRequest)
			return
		}
		s.serverError(w, r, "password change failed", err)
		return
	}

	if err := s.sessions.RevokeIdentifier(r.Context(), email); err != nil {
		s.serverError(w, r, "session revocation failed", err)
		return
	}
	if err := s.sessions.Logout(r.Context(), w, r); err != nil {
		s.serverError(w, r, "logout failed", err)
		return
	}

	http.Redirect(w, r, s.cfg.LogoutRedirect, http.StatusSeeOther)
}

// logoutEverywhere revokes every live session for the authenticated
// identifier across all devices.
func (s *PasswordService) logoutEverywhere(w http.ResponseWriter, r *http.Request) {
	email, ok := session.IdentifierFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := s.sessions.RevokeIdentifier(r.Context(), email); err != nil {
		s.serverError(w, r, "session revocation failed", err)
		return
	}
	if err := s.sessions.Logout(r.Context(), w, r); err != nil {
		s.serverError(w, r, "logout failed", err)
		return
	}

	http.Redirect(w, r, s.cfg.LogoutRedirect, http.StatusSeeOther)
}

func (s *PasswordService) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.ErrorContext(r.Context(), msg,
		logger.Error(err),
		logger.Component("account"),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
