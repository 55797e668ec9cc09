package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/mssola/useragent"

	"safesound/internal/audit"
	"safesound/internal/jwtauth"
	"safesound/internal/platform/middleware"
	"safesound/internal/platform/web"
	"safesound/internal/report"
	"safesound/internal/report/live"
)

const (
	latestLimit      = 20
	venueLatestLimit = 10
)

// Handler exposes the live report channel and the report REST endpoints.
type Handler struct {
	logger       *slog.Logger
	engine       *live.Engine
	store        report.Store
	audit        *audit.Publisher
	validator    middleware.JWTValidator
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// New creates a report Handler. audit may be nil.
func New(engine *live.Engine, store report.Store, auditPub *audit.Publisher, validator middleware.JWTValidator, logger *slog.Logger, writeTimeout time.Duration) *Handler {
	return &Handler{
		logger:       logger,
		engine:       engine,
		store:        store,
		audit:        auditPub,
		validator:    validator,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			// CORS policy is permissive, matching the REST layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Register mounts the report routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Get("/reports/add/{role}", h.handleLive)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RolePolice))
		r.Post("/reports/resolve/{id}", h.handleResolve)
		r.Get("/reports/unresolved", h.handleUnresolved)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger, jwtauth.RoleUser, jwtauth.RolePolice))
		r.Get("/reports/venue/{venue_id}", h.handleVenueReports)
		r.Get("/reports/latest", h.handleLatest)
	})
}

// handleLive upgrades the connection and hands it to the broadcast engine.
// The role tag in the path must match the role the token was issued for.
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := live.Role(chi.URLParam(r, "role"))
	if !role.Valid() {
		http.Error(w, "unknown role", http.StatusNotFound)
		return
	}
	claims := middleware.GetIdentity(ctx)
	if claims == nil || claims.Role != string(role) {
		http.Error(w, "role mismatch", http.StatusForbidden)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}

	ua := useragent.New(r.UserAgent())
	browser, version := ua.Browser()
	h.logger.InfoContext(ctx, "live peer connected",
		"role", role,
		"browser", browser,
		"browser_version", version,
		"os", ua.OS(),
		"mobile", ua.Mobile(),
	)

	conn := live.NewConn(role, live.NewWebsocketPeer(ws, h.writeTimeout))
	h.engine.Run(ctx, conn)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to resolve Report"})
		return
	}

	if err := h.store.Resolve(ctx, id); err != nil {
		if errors.Is(err, report.ErrNotFound) {
			web.Respond(w, web.Envelope{Success: false, Message: "Report does not exist"})
			return
		}
		h.logger.ErrorContext(ctx, "resolve report failed", "report_id", id, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to resolve Report"})
		return
	}

	if h.audit != nil {
		badge := 0
		if claims := middleware.GetIdentity(ctx); claims != nil {
			badge = claims.Badge
		}
		h.audit.Emit(ctx, audit.Event{
			Type:       audit.EventReportResolved,
			ReportID:   id,
			ActorID:    badge,
			OccurredAt: time.Now(),
		})
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Report resolved"})
}

func (h *Handler) handleUnresolved(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.Unresolved(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list unresolved failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get Reports"})
		return
	}
	if len(reports) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No reports found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: reports})
}

func (h *Handler) handleVenueReports(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.Atoi(chi.URLParam(r, "venue_id"))
	if err != nil {
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get reports"})
		return
	}
	reports, err := h.store.LatestByVenue(r.Context(), venueID, venueLatestLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list venue reports failed", "venue_id", venueID, "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get reports"})
		return
	}
	if len(reports) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No reports found for this venue"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: reports})
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.Latest(r.Context(), latestLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list latest reports failed", "error", err)
		web.Respond(w, web.Envelope{Success: false, Message: "Unable to get reports"})
		return
	}
	if len(reports) == 0 {
		web.Respond(w, web.Envelope{Success: false, Message: "No reports found"})
		return
	}
	web.Respond(w, web.Envelope{Success: true, Message: "Success", Generic: reports})
}
