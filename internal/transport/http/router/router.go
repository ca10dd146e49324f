package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	UserLoggedIn(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	SettingsGet(w http.ResponseWriter, r *http.Request)
	SettingsUpdate(w http.ResponseWriter, r *http.Request)
	SendVerificationEmail(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	RequestIDMW func(http.Handler) http.Handler
	AuditMW     func(http.Handler) http.Handler
}

// New builds the route table. Session checks are preconditions inside
// the auth service, not router middleware, so every /users route is
// registered plainly.
func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.AuditMW != nil {
		r.Use(deps.AuditMW)
	}

	r.Get("/healthz", deps.Health.Healthz)

	r.Route("/users", func(r chi.Router) {
		r.Get("/user_logged_in", deps.Auth.UserLoggedIn)
		r.Post("/login", deps.Auth.Login)
		r.Post("/register", deps.Auth.Register)
		r.Get("/logout", deps.Auth.Logout)

		r.Get("/settings", deps.Auth.SettingsGet)
		r.Post("/settings", deps.Auth.SettingsUpdate)

		r.Get("/send_verification_email", deps.Auth.SendVerificationEmail)
		r.Get("/verify_email/{token}", deps.Auth.VerifyEmail)
	})

	return r, nil
}
