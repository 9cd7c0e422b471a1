package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kanji/strokes/internal/config"
	"kanji/strokes/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// KanjiService is the part of service.Service the HTTP layer depends on.
type KanjiService interface {
	GetKanji(ctx context.Context, kanji string, withNumbers bool) (*domain.Kanji, error)
	ListKanji(ctx context.Context) ([]domain.KanjiSummary, error)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// New returns an HTTP server for the stroke order API bound to cfg.Addr().
func New(cfg config.ServerConfig, svc KanjiService) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(svc),
		ReadHeaderTimeout: time.Duration(cfg.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
	}
}

// NewRouter builds the HTTP routes of the stroke order API.
func NewRouter(svc KanjiService) http.Handler {
	h := &handler{service: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Get("/healthz", h.health)
	r.Get("/kanjis", h.listKanji)
	r.Get("/kanji/{kanji}", h.getKanji)

	return r
}

type handler struct {
	service KanjiService
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getKanji(w http.ResponseWriter, r *http.Request) {
	kanji := chi.URLParam(r, "kanji")

	withNumbers := true
	if raw := r.URL.Query().Get("with_number"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: fmt.Sprintf("Invalid with_number value %q.", raw)})
			return
		}
		withNumbers = parsed
	}

	result, err := h.service.GetKanji(r.Context(), kanji, withNumbers)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) listKanji(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListKanji(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// statusFor maps a service error to the HTTP status and detail message
// returned to the caller.
func statusFor(err error) (int, string) {
	var (
		upstreamErr *domain.UpstreamError
		formatErr   *domain.FormatError
		encodingErr *domain.EncodingError
	)

	switch {
	case errors.Is(err, domain.ErrKanjiNotFound):
		return http.StatusNotFound, "Kanji not found in index."
	case errors.Is(err, domain.ErrStrokesNotFound):
		return http.StatusNotFound, "Kanji strokes not found."
	case errors.As(err, &upstreamErr):
		if upstreamErr.StatusCode != 0 {
			return http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s: HTTP error %d.", upstreamErr.Resource, upstreamErr.StatusCode)
		}
		return http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s: %v.", upstreamErr.Resource, upstreamErr.Err)
	case errors.As(err, &formatErr):
		return http.StatusInternalServerError, fmt.Sprintf("Malformed %s: %v.", formatErr.Resource, formatErr.Err)
	case errors.As(err, &encodingErr):
		return http.StatusInternalServerError, fmt.Sprintf("Failed to encode stroke orders: %v.", encodingErr.Err)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v.", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, detail := statusFor(err)
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to write response: %v", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		entry := log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).Round(time.Millisecond).String(),
			"request_id": middleware.GetReqID(r.Context()),
		})
		if ww.Status() >= http.StatusInternalServerError {
			entry.Warn("Request failed")
		} else {
			entry.Info("Request handled")
		}
	})
}

// recoverer turns a panic into a 500 response carrying the panic value.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Errorf("💥 Panic while handling %s %s: %v", r.Method, r.URL.Path, rec)
				writeError(w, fmt.Errorf("%v", rec))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
