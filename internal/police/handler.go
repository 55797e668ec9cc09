package police

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safesound/internal/jwtauth"
	"safesound/internal/platform/middleware"
	"safesound/internal/platform/web"
	"safesound/internal/secrets"
)

// Handler exposes the officer routes.
type Handler struct {
	logger    *slog.Logger
	store     Store
	tokens    *jwtauth.Service
	validator middleware.JWTValidator
}

func NewHandler(store Store, tokens *jwtauth.Service, validator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store, tokens: tokens, validator: validator}
}

// Register mounts the officer routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/police/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RolePolice))
		r.Post("/police/register", h.handleRegister)
		r.Post("/police/activate", h.handleActivate)
		r.Post("/police/deactivate", h.handleDeactivate)
		r.Post("/police/password", h.handlePassword)
		r.Get("/police", h.handleList)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req Officer
	if err := web.Decode(r, &req); err != nil || !req.ValidCredentials() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	officer, err := h.store.ByBadge(r.Context(), req.Badge)
	if errors.Is(err, ErrNotFound) {
		web.Respond(w, web.Envelope{Success: false, Message: "Police doesn't exist"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "police login failed", "badge", req.Badge, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to login police"})
		return
	}
	if !officer.Active {
		web.Respond(w, web.Envelope{Success: false, Message: "Account is not active"})
		return
	}
	if err := secrets.Verify(req.Password, officer.Password); err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Police badge or password incorrect"})
		return
	}
	token, err := h.tokens.GeneratePoliceToken(officer.Badge, officer.Admin)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "police token failed", "badge", req.Badge, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to login police"})
		return
	}
	officer.Password = ""
	web.Respond(w, web.Envelope{Success: true, Message: token, Generic: officer})
}

// requireAdmin re-reads the acting officer so a revoked admin flag takes
// effect before the token expires.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := middleware.GetIdentity(r.Context())
	actor, err := h.store.ByBadge(r.Context(), claims.Badge)
	if err != nil || !actor.Admin {
		web.Respond(w, web.Envelope{Success: false, Message: "Invalid Rank"})
		return false
	}
	return true
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req Officer
	if err := web.Decode(r, &req); err != nil || !req.ValidCredentials() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	hash, err := secrets.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "hash police password failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to add new police"})
		return
	}
	req.Password = hash
	req.Active = true
	if err := h.store.Create(r.Context(), req); err != nil {
		h.logger.ErrorContext(r.Context(), "register police failed", "badge", req.Badge, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to add new police"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Account created"})
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true, "Account activated", "Unable to activate account")
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false, "Account deactivated", "Unable to deactivate police")
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool, okMsg, failMsg string) {
	var req Officer
	if err := web.Decode(r, &req); err != nil || req.Badge == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}
	if err := h.store.SetActive(r.Context(), req.Badge, active); err != nil {
		h.logger.ErrorContext(r.Context(), "set police active failed", "badge", req.Badge, "active", active, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: failMsg})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: okMsg})
}

func (h *Handler) handlePassword(w http.ResponseWriter, r *http.Request) {
	var req Officer
	if err := web.Decode(r, &req); err != nil || req.Password == "" {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly Formatted Request"})
		return
	}
	claims := middleware.GetIdentity(r.Context())
	hash, err := secrets.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "hash police password failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to update password"})
		return
	}
	if err := h.store.UpdatePassword(r.Context(), claims.Badge, hash); err != nil {
		h.logger.ErrorContext(r.Context(), "update police password failed", "badge", claims.Badge, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to update password"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Password Updated"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	officers, err := h.store.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list police failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get police"})
		return
	}
	if len(officers) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No police found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: officers})
}
