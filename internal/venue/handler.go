package venue

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

// Handler exposes the venue routes.
type Handler struct {
	logger    *slog.Logger
	store     Store
	validator middleware.JWTValidator
}

func NewHandler(store Store, validator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store, validator: validator}
}

// Register mounts the venue routes. Users only ever see active venues; the
// police variants include deactivated ones.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RoleUser, jwtauth.RolePolice))
		r.Get("/venues", h.handleActive)
		r.Get("/venues/id/{id}", h.handleByID)
		r.Get("/venues/name/{name}", h.searchName(true))
		r.Get("/venues/city/{city}", h.searchCity(true))
		r.Get("/venues/severity/{id}", h.handleSeverity)
		r.Get("/venues/severity", h.handleSeverities)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RolePolice))
		r.Post("/venues/add", h.handleAdd)
		r.Post("/venues/activate/{id}", h.setActive(true, "Venue activated", "Unable to activate Venue"))
		r.Post("/venues/deactivate/{id}", h.setActive(false, "Venue deactivated", "Unable to deactivate Venue"))
		r.Get("/police/venues", h.handleAll)
		r.Get("/police/venues/name/{name}", h.searchName(false))
		r.Get("/police/venues/city/{city}", h.searchCity(false))
	})
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	venues, err := h.store.Active(r.Context())
	h.respondList(w, r, venues, err)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	venues, err := h.store.All(r.Context())
	h.respondList(w, r, venues, err)
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get venues"})
		return
	}
	v, err := h.store.ByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		web.Respond(w, web.Envelope{Success: false, Message: "No venues found"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "find venue failed", "venue_id", id, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get venues"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: v})
}

func (h *Handler) searchName(activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venues, err := h.store.SearchName(r.Context(), chi.URLParam(r, "name"), activeOnly)
		h.respondList(w, r, venues, err)
	}
}

func (h *Handler) searchCity(activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venues, err := h.store.SearchCity(r.Context(), chi.URLParam(r, "city"), activeOnly)
		h.respondList(w, r, venues, err)
	}
}

func (h *Handler) handleSeverity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get severity"})
		return
	}
	sev, err := h.store.AverageSeverity(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		web.Respond(w, web.Envelope{Success: false, Message: "No severity on this venue"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "venue severity failed", "venue_id", id, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get severity"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: sev})
}

func (h *Handler) handleSeverities(w http.ResponseWriter, r *http.Request) {
	severities, err := h.store.AverageSeverities(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "venue severities failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get severity"})
		return
	}
	if len(severities) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No reports found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: severities})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var v Venue
	if err := web.Decode(r, &v); err != nil || !v.ValidNew() {
		web.Respond(w, web.Envelope{Success: false, Message: "Badly formatted request"})
		return
	}
	if err := h.store.Add(r.Context(), v); err != nil {
		h.logger.ErrorContext(r.Context(), "add venue failed", "venue_name", v.Name, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to add new venue"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Venue created"})
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
				web.Respond(w, web.Envelope{Success: false, Message: "Venue does not exist"})
				return
			}
			h.logger.ErrorContext(r.Context(), "set venue active failed", "venue_id", id, "active", active, "error", err)
			web.Respond(w, web.Envelope{Success: false, Message: failMsg})
			return
		}
		web.Respond(w, web.Envelope{Success: true, Message: okMsg})
	}
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, venues []Venue, err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list venues failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get venues"})
		return
	}
	if len(venues) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No venues found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: venues})
}
