package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/0xalexb/hjarta-config/config"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/time/rate"
)

type entry struct {
	Path   string `json:"path"`
	Value  any    `json:"value"`
	Origin string `json:"origin"`
}

type presence struct {
	Path      string `json:"path"`
	Has       bool   `json:"has"`
	HasOrNull bool   `json:"hasOrNull"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler returns the HTTP handler serving cfg. Options not given fall
// back to the defaults of Config.
func NewHandler(cfg *config.Config, opts ...Option) (http.Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	var settings Config

	for _, apply := range opts {
		apply(&settings)
	}

	settings.SetDefaults()

	err := settings.Validate()
	if err != nil {
		return nil, err
	}

	return newRouter(cfg, settings), nil
}

// newRouter expects validated settings.
func newRouter(cfg *config.Config, settings Config) http.Handler {
	timeout, _ := settings.timeout()
	collector := newMetrics(cfg)

	router := chi.NewRouter()
	router.Use(recovery, requestID, requestLogging, collector.instrument, compress)

	if len(settings.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{ //nolint:exhaustruct // only relevant fields needed
			AllowedOrigins: settings.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
			AllowedHeaders: []string{"Accept", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	router.Use(
		rateLimit(rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), settings.Burst)),
		chimiddleware.Timeout(timeout),
	)

	h := &handlers{cfg: cfg}

	router.Get("/entries", h.entries)
	router.Get("/values/*", h.values)
	router.Get("/has/*", h.has)
	router.Method(http.MethodGet, "/metrics", collector.handler())

	return router
}

type handlers struct {
	cfg *config.Config
}

func (h *handlers) entries(w http.ResponseWriter, _ *http.Request) {
	entries := h.cfg.EntrySet()
	out := make([]entry, len(entries))

	for i, e := range entries {
		out[i] = entry{Path: e.Path, Value: e.Value.Unwrapped(), Origin: e.Value.Origin().Description()}
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) values(w http.ResponseWriter, r *http.Request) {
	result, err := Query(h.cfg, chi.URLParam(r, "*"), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) has(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	has, err := h.cfg.HasPath(path)
	if err != nil {
		writeError(w, err)

		return
	}

	hasOrNull, err := h.cfg.HasPathOrNull(path)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, presence{Path: path, Has: has, HasOrNull: hasOrNull})
}

func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
