// Package httpapi exposes a wheel over HTTP: JSON state and editing, spin
// and cancel, segment layout, and an SVG rendering.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/layout"
	"github.com/nathoo/spinwheel/engine/state"
	"github.com/nathoo/spinwheel/render"
	"github.com/nathoo/spinwheel/types"
)

const maxBodyBytes = 64 << 10

// Handler serves one engine. Every engine call happens under mu, the same
// lock the engine's scheduler holds while a settle runs.
type Handler struct {
	eng    *engine.Engine
	mu     sync.Locker
	logger *slog.Logger
	radius float64
	opts   layout.Options
}

func NewHandler(eng *engine.Engine, mu sync.Locker, logger *slog.Logger, radius float64, opts layout.Options) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{eng: eng, mu: mu, logger: logger, radius: radius, opts: opts}
}

// Router returns a chi router with the standard middleware stack and all
// routes registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.healthz)
	r.Get("/wheel.svg", h.svg)
	r.Route("/api", func(r chi.Router) {
		r.Get("/wheel", h.wheel)
		r.Post("/spin", h.spin)
		r.Post("/cancel", h.cancel)
		r.Get("/layout", h.layout)
		r.Post("/presets/{name}", h.loadPreset)
		r.Route("/items", func(r chi.Router) {
			r.Post("/", h.addItem)
			r.Put("/", h.replaceItems)
			r.Delete("/", h.clearItems)
			r.Delete("/{id}", h.removeItem)
		})
	})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) wheel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := toWheelResponse(h.eng)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) spin(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.eng.BeginSpin(); !ok {
		msg := "wheel is already spinning"
		if len(h.eng.State.Items) == 0 {
			msg = "wheel has no items"
		}
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: msg})
		return
	}
	p := h.eng.Phase().(engine.Spinning)
	writeJSON(w, http.StatusAccepted, toSpinResponse(p))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.eng.CancelSpin() {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "wheel is not spinning"})
		return
	}
	writeJSON(w, http.StatusOK, toWheelResponse(h.eng))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	item, err := h.eng.AddItem(req.Label)
	if err != nil {
		h.mapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.eng.RemoveItem(id); err != nil {
		h.mapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) replaceItems(w http.ResponseWriter, r *http.Request) {
	var req ReplaceItemsRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.eng.ReplaceItems(req.Labels); err != nil {
		h.mapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWheelResponse(h.eng))
}

func (h *Handler) clearItems(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.eng.Clear(); err != nil {
		h.mapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.eng.LoadPreset(name); err != nil {
		h.mapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWheelResponse(h.eng))
}

func (h *Handler) layout(w http.ResponseWriter, r *http.Request) {
	radius, ok := h.radiusParam(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	resp := LayoutResponse{
		Radius:   radius,
		Rotation: h.eng.State.Rotation,
		Segments: h.eng.Layout(radius, h.opts),
	}
	h.mu.Unlock()

	if resp.Segments == nil {
		resp.Segments = []types.SegmentGeometry{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) svg(w http.ResponseWriter, r *http.Request) {
	radius, ok := h.radiusParam(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	doc := render.SVG(h.eng.Layout(radius, h.opts), radius, h.eng.State.Rotation)
	h.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(doc))
}

func (h *Handler) radiusParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := r.URL.Query().Get("radius")
	if raw == "" {
		return h.radius, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || v > 10000 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "radius must be a number in (0, 10000]"})
		return 0, false
	}
	return v, true
}

// decode reads a JSON body into dst, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func (h *Handler) mapError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, engine.ErrSpinning):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, state.ErrEmptyLabel):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, state.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("internal error", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
