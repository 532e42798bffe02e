// Package http exposes stored timelines over a read-only JSON API: fetch
// documents, and resolve children or the top visible clip at an instant.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/encoding"
	"github.com/montage-edit/montage/pkg/opentime"
	"github.com/montage-edit/montage/pkg/ports"
)

// Server serves the inspection API over a catalog.
type Server struct {
	catalog ports.Catalog
	logger  *slog.Logger
	metrics *metrics
}

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montage_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"route", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "montage_http_request_duration_seconds",
				Help: "Duration of API requests",
			},
			[]string{"route"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// NewHandler creates the HTTP handler for the inspection API. A nil logger
// disables request logging.
func NewHandler(catalog ports.Catalog, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	s := &Server{
		catalog: catalog,
		logger:  logger,
		metrics: newMetrics(),
	}

	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": montage.Version})
	})
	r.Get("/timelines", s.listTimelines)
	r.Get("/timelines/{name}", s.getTimeline)
	r.Get("/timelines/{name}/children", s.childrenAtTime)
	r.Get("/timelines/{name}/top-clip", s.topClipAtTime)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func (s *Server) listTimelines(w http.ResponseWriter, r *http.Request) {
	names, err := s.catalog.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"timelines": names})
}

func (s *Server) getTimeline(w http.ResponseWriter, r *http.Request) {
	tl, ok := s.loadTimeline(w, r)
	if !ok {
		return
	}
	data, err := encoding.Marshal(tl)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// nodeSummary is the wire shape for resolved children.
type nodeSummary struct {
	Name    string              `json:"name"`
	Kind    string              `json:"kind"`
	Visible bool                `json:"visible"`
	Range   *opentime.TimeRange `json:"range,omitempty"`
}

func (s *Server) childrenAtTime(w http.ResponseWriter, r *http.Request) {
	tl, ok := s.loadTimeline(w, r)
	if !ok {
		return
	}
	t, err := timeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	children, err := tl.Tracks().ChildrenAtTime(t)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	summaries := make([]nodeSummary, 0, len(children))
	for _, child := range children {
		summary := nodeSummary{Name: child.Name(), Kind: child.Kind(), Visible: child.Visible()}
		if placement, err := tl.RangeOfChild(child); err == nil {
			summary.Range = &placement
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, map[string]any{"children": summaries})
}

func (s *Server) topClipAtTime(w http.ResponseWriter, r *http.Request) {
	tl, ok := s.loadTimeline(w, r)
	if !ok {
		return
	}
	t, err := timeParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	clip, err := tl.Tracks().TopClipAtTime(t)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if clip == nil {
		writeJSON(w, http.StatusOK, map[string]any{"clip": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clip": nodeSummary{Name: clip.Name(), Kind: clip.Kind(), Visible: clip.Visible()},
	})
}

func (s *Server) loadTimeline(w http.ResponseWriter, r *http.Request) (*montage.Timeline, bool) {
	name := chi.URLParam(r, "name")
	tl, err := s.catalog.Load(r.Context(), name)
	if errors.Is(err, ports.ErrTimelineNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return tl, true
}

// timeParam parses ?value=<float>&rate=<float> into a RationalTime. The
// rate defaults to 1 (seconds).
func timeParam(r *http.Request) (opentime.RationalTime, error) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		return opentime.RationalTime{}, fmt.Errorf("missing required query parameter 'value'")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return opentime.RationalTime{}, fmt.Errorf("invalid 'value': %v", err)
	}
	rate := 1.0
	if rawRate := r.URL.Query().Get("rate"); rawRate != "" {
		rate, err = strconv.ParseFloat(rawRate, 64)
		if err != nil || rate <= 0 {
			return opentime.RationalTime{}, fmt.Errorf("invalid 'rate': %q", rawRate)
		}
	}
	return opentime.New(value, rate), nil
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, err)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// instrument records request counts and latencies per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.logger.Debug("request served",
			"method", r.Method,
			"route", route,
			"code", recorder.status,
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
