package crime

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"safesound/internal/jwtauth"
	"safesound/internal/platform/middleware"
	"safesound/internal/platform/web"
)

// Handler exposes the crime catalog routes.
type Handler struct {
	logger    *slog.Logger
	store     Store
	validator middleware.JWTValidator
}

func NewHandler(store Store, validator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store, validator: validator}
}

// Register mounts the crime routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RoleUser, jwtauth.RolePolice))
		r.Get("/crimes/id/{id}", h.handleByID)
		r.Get("/user/crimes", h.handleActive)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RolePolice))
		r.Post("/crimes/add", h.handleAdd)
		r.Post("/crimes/activate/{id}", h.setActive(true, "Crime activated", "Unable to activate Crime"))
		r.Post("/crimes/deactivate/{id}", h.setActive(false, "Crime deactivated", "Unable to deactivate Crime"))
		r.Get("/police/crimes", h.handleAll)
	})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var c Crime
	if err := web.Decode(r, &c); err != nil || !c.ValidNew() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	if err := h.store.Add(r.Context(), c); err != nil {
		h.logger.ErrorContext(r.Context(), "add crime failed", "crime_name", c.Name, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to add new crime"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Crime added"})
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get crimes"})
		return
	}
	c, err := h.store.ByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		web.Respond(w, web.Envelope{Success: false, Message: "No crimes found"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "find crime failed", "crime_id", id, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get crimes"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: c})
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	crimes, err := h.store.Active(r.Context())
	h.respondList(w, r, crimes, err)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	crimes, err := h.store.All(r.Context())
	h.respondList(w, r, crimes, err)
}

func (h *Handler) setActive(active bool, okMsg, failMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			web.Respond(w, web.Envelope{Success: false, Message: failMsg})
			return
		}
		if err := h.store.SetActive(r.Context(), id, active); err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Respond(w, web.Envelope{Success: false, Message: "Crime does not exist"})
				return
			}
			h.logger.ErrorContext(r.Context(), "set crime active failed", "crime_id", id, "active", active, "error", err)
			web.Respond(w, web.Envelope{Success: false, Message: failMsg})
			return
		}
		web.Respond(w, web.Envelope{Success: true, Message: okMsg})
	}
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, crimes []Crime, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list crimes failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get crimes"})
		return
	}
	if len(crimes) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No crimes found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: crimes})
}
