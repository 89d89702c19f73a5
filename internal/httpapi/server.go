package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vramfit/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Query(ctx context.Context, req types.QueryRequest) (types.QueryResponse, error)
	Detail(ctx context.Context, variantID string, req types.QueryRequest) (types.DetailView, error)
	Profiles() (types.ProfilesResponse, error)
	Filters() (types.FiltersResponse, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the HTTP API router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		origins, methods, headers := corsDefaults()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: methods,
			AllowedHeaders: headers,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	h := &handlers{svc: svc}
	r.Get("/variants", h.listVariants)
	r.Post("/query", h.postQuery)
	r.Get("/variants/{id}", h.variantDetail)
	r.Get("/profiles", h.profiles)
	r.Get("/filters", h.filters)
	r.Get("/status", h.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// listVariants godoc
// @Summary      Rank variants
// @Description  Filters, estimates and ranks catalog variants. Variants that cannot fit are omitted.
// @Tags         variants
// @Produce      json
// @Param        q               query  string  false  "Substring over family slug, tag, display name and labels"
// @Param        workflow        query  string  false  "Workflow slug"
// @Param        toolchain       query  string  false  "Toolchain slug"
// @Param        use_case        query  string  false  "Use-case tag slug"
// @Param        budget_gib      query  number  false  "VRAM budget in GiB (0 = unknown)"
// @Param        profile         query  string  false  "Constraint profile supplying the budget"
// @Param        context         query  int     false  "Context length in tokens"
// @Param        kv              query  string  false  "KV cache mode (fp16, q8, q4)"
// @Param        prefer_quality  query  bool    false  "Rank by quality instead of speed"
// @Param        min_tps         query  number  false  "Minimum p50 tokens/sec"
// @Param        max_ttft_ms     query  number  false  "Maximum p50 time to first token"
// @Param        limit           query  int     false  "Maximum number of results"
// @Success      200  {object}  types.QueryResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /variants [get]
func (h *handlers) listVariants(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.runQuery(w, r, req)
}

// postQuery godoc
// @Summary      Rank variants (JSON body)
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        request  body      types.QueryRequest  true  "Query"
// @Success      200      {object}  types.QueryResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      503      {object}  types.ErrorResponse
// @Router       /query [post]
func (h *handlers) postQuery(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.runQuery(w, r, req)
}

func (h *handlers) runQuery(w http.ResponseWriter, r *http.Request, req types.QueryRequest) {
	start := time.Now()
	lvl := requestLogLevel(r)
	resp, err := h.svc.Query(r.Context(), req)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, lvl, "query", status, start, -1, err)
		return
	}
	observeQuery(resp.Results)
	writeJSON(w, resp)
	logEnd(r, lvl, "query", http.StatusOK, start, resp.Count, nil)
}

// variantDetail godoc
// @Summary      Variant detail
// @Description  Re-derives fit, estimates and community data for one variant under the given query.
// @Tags         variants
// @Produce      json
// @Param        id          path   string  true   "Variant id"
// @Param        budget_gib  query  number  false  "VRAM budget in GiB"
// @Param        profile     query  string  false  "Constraint profile"
// @Param        context     query  int     false  "Context length"
// @Param        kv          query  string  false  "KV cache mode"
// @Param        workflow    query  string  false  "Workflow slug"
// @Param        toolchain   query  string  false  "Toolchain slug"
// @Success      200  {object}  types.DetailView
// @Failure      400  {object}  types.ErrorResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /variants/{id} [get]
func (h *handlers) variantDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r)
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	// chi matches on RawPath when set, leaving the param escaped.
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		if id, err = url.PathUnescape(id); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid variant id")
			return
		}
	}
	view, err := h.svc.Detail(r.Context(), id, req)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, lvl, "detail", status, start, -1, err)
		return
	}
	writeJSON(w, view)
	logEnd(r, lvl, "detail", http.StatusOK, start, -1, nil)
}

// profiles godoc
// @Summary  List constraint profiles
// @Tags     catalog
// @Produce  json
// @Success  200  {object}  types.ProfilesResponse
// @Failure  503  {object}  types.ErrorResponse
// @Router   /profiles [get]
func (h *handlers) profiles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Profiles()
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, resp)
}

// filters godoc
// @Summary  List selector options
// @Tags     catalog
// @Produce  json
// @Success  200  {object}  types.FiltersResponse
// @Failure  503  {object}  types.ErrorResponse
// @Router   /filters [get]
func (h *handlers) filters(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Filters()
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, resp)
}

// status godoc
// @Summary  Catalog status
// @Tags     system
// @Produce  json
// @Success  200  {object}  types.StatusResponse
// @Router   /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Status())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
