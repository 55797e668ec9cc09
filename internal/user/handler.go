package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safesound/internal/jwtauth"
	"safesound/internal/platform/middleware"
	"safesound/internal/platform/web"
)

// Handler exposes the account routes.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator middleware.JWTValidator
}

func NewHandler(service *Service, validator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service, validator: validator}
}

// Register mounts the account routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/user/register", h.handleRegister)
	r.Get("/user/activate_account", h.handleActivate)
	r.Post("/user/login", h.handleLogin)
	r.Post("/user/password/recover", h.handleRecover)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RoleUser))
		r.Post("/user/password/change", h.handleChangePassword)
		r.Post("/user/deactivate", h.handleDeactivate)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var a Account
	if err := web.Decode(r, &a); err != nil || !a.ValidRegistration() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	if err := h.service.Register(r.Context(), a); err != nil {
		h.logger.ErrorContext(r.Context(), "register user failed", "email", a.Email, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to add new user"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Account created"})
}

// handleActivate answers the link sent by SMS, so it replies with plain
// text rather than the API envelope.
func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		_, _ = w.Write([]byte("Badly formatted request"))
		return
	}
	err := h.service.Activate(r.Context(), code)
	switch {
	case err == nil:
		_, _ = w.Write([]byte("Account Activated"))
	case errors.Is(err, ErrCodeNotFound):
		_, _ = w.Write([]byte("Activation Code not valid"))
	default:
		h.logger.ErrorContext(r.Context(), "activate account failed", "error", err)
		_, _ = w.Write([]byte("Unable to activate account"))
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var a Account
	if err := web.Decode(r, &a); err != nil || !a.ValidCredentials() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	token, account, err := h.service.Login(r.Context(), a.Email, a.Password)
	switch {
	case err == nil:
		web.Respond(w, web.Envelope{Success: true, Message: token, Generic: account})
	case errors.Is(err, ErrNotFound):
		web.Respond(w, web.Envelope{Success: false, Message: "User doesn't exist"})
	case errors.Is(err, ErrInactive):
		web.Respond(w, web.Envelope{Success: false, Message: "Account is not active"})
	case errors.Is(err, ErrBadCredentials):
		web.Respond(w, web.Envelope{Success: false, Message: "User email or password incorrect"})
	default:
		h.logger.ErrorContext(r.Context(), "login user failed", "email", a.Email, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to login user"})
	}
}

func (h *Handler) handleRecover(w http.ResponseWriter, r *http.Request) {
	var a Account
	if err := web.Decode(r, &a); err != nil || a.Email == "" {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly Formatted Request"})
		return
	}
	err := h.service.RecoverPassword(r.Context(), a.Email)
	switch {
	case err == nil:
		web.Respond(w, web.Envelope{Success: true, Message: "New Password Sent"})
	case errors.Is(err, ErrNotFound):
		web.Respond(w, web.Envelope{Success: false, Message: "No user with this email"})
	default:
		h.logger.ErrorContext(r.Context(), "recover password failed", "email", a.Email, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to send new password"})
	}
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var a Account
	if err := web.Decode(r, &a); err != nil || a.Password == "" {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly Formatted Request"})
		return
	}
	claims := middleware.GetIdentity(r.Context())
	if err := h.service.ChangePassword(r.Context(), claims.Email, a.Password); err != nil {
		h.logger.ErrorContext(r.Context(), "change password failed", "email", claims.Email, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to update password"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Password Updated"})
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetIdentity(r.Context())
	if err := h.service.Deactivate(r.Context(), claims.Email); err != nil {
		h.logger.ErrorContext(r.Context(), "deactivate account failed", "email", claims.Email, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to deactivate account"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Account deactivated"})
}
