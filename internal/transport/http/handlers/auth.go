package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tunelink/auth-service/internal/application/auth"
	"github.com/tunelink/auth-service/internal/infrastructure/security"
	"github.com/tunelink/auth-service/internal/logger"
	"github.com/tunelink/auth-service/internal/transport/http/dto"
	"github.com/tunelink/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	secureCookies bool
	frontendURL   string
}

func NewAuthHandler(svc *auth.Service, secureCookies bool, frontendURL string) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		secureCookies: secureCookies,
		frontendURL:   frontendURL,
	}
}

// presentedToken reads the session cookie and clears it when it no
// longer verifies, so a stale cookie doesn't linger in the browser.
// The raw value is still handed to the service, which treats an
// unverifiable token as no session.
func (h *AuthHandler) presentedToken(w http.ResponseWriter, r *http.Request) string {
	tok := security.ReadSessionToken(r)
	if tok == "" {
		return ""
	}
	if _, err := h.svc.CheckSession(tok); err != nil {
		logger.WithCtx(r.Context()).Debug().Msg("clearing stale session cookie")
		security.ClearSessionToken(w, h.secureCookies)
	}
	return tok
}

func (h *AuthHandler) UserLoggedIn(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.CheckSession(security.ReadSessionToken(r)); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "User is logged in", nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	tok := h.presentedToken(w, r)

	session, err := h.svc.Register(r.Context(), tok, auth.RegisterInput{
		Email:         req.EmailID,
		Password:      req.Password,
		MusicPlatform: req.MusicPlatform,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("email", req.EmailID).
		Msg("user_registered")

	security.SetSessionToken(w, session, h.secureCookies)
	response.OK(w, "User registered successfully", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	tok := h.presentedToken(w, r)

	session, err := h.svc.Login(r.Context(), tok, req.EmailID, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("email", req.EmailID).
		Msg("user_logged_in")

	security.SetSessionToken(w, session, h.secureCookies)
	response.OK(w, "Success", nil)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context(), security.ReadSessionToken(r))

	security.ClearSessionToken(w, h.secureCookies)
	response.OK(w, "Logged out successfully", nil)
}

func (h *AuthHandler) SettingsGet(w http.ResponseWriter, r *http.Request) {
	platform, err := h.svc.GetPreference(r.Context(), security.ReadSessionToken(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "user's music platform preference", string(platform))
}

func (h *AuthHandler) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsUpdateRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// No body validation here: the service checks the session before it
	// looks at the platform field, and that order is the contract.
	platform, err := h.svc.UpdatePreference(r.Context(), security.ReadSessionToken(r), req.MusicPlatform)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "user's music platform preference updated", string(platform))
}

func (h *AuthHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.RequestVerification(r.Context(), security.ReadSessionToken(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, "Verification email sent", link)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	email, err := h.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("email", email).
		Msg("email_verified")

	writeVerifiedPage(w, h.frontendURL)
}
