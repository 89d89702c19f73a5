package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vramfit/pkg/types"
)

type mockService struct {
	resp     types.QueryResponse
	detail   types.DetailView
	profiles types.ProfilesResponse
	filters  types.FiltersResponse
	status   types.StatusResponse
	ready    bool
	err      error

	lastReq types.QueryRequest
	lastID  string
}

func (m *mockService) Query(ctx context.Context, req types.QueryRequest) (types.QueryResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

func (m *mockService) Detail(ctx context.Context, id string, req types.QueryRequest) (types.DetailView, error) {
	m.lastID, m.lastReq = id, req
	return m.detail, m.err
}

func (m *mockService) Profiles() (types.ProfilesResponse, error) { return m.profiles, m.err }
func (m *mockService) Filters() (types.FiltersResponse, error)   { return m.filters, m.err }
func (m *mockService) Status() types.StatusResponse              { return m.status }
func (m *mockService) Ready() bool                               { return m.ready }

type mockHTTPError struct {
	msg  string
	code int
}

func (e mockHTTPError) Error() string   { return e.msg }
func (e mockHTTPError) StatusCode() int { return e.code }

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListVariantsParsesQuery(t *testing.T) {
	svc := &mockService{resp: types.QueryResponse{Count: 1, Results: []types.ScoredResult{{VariantID: "v1", FitTier: "fits_cons"}}}}
	r := NewMux(svc)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/variants?q=coder&budget_gib=24&context=8192&kv=q8&prefer_quality=false&min_tps=10&limit=5&workflow=w&toolchain=t&use_case=coding&profile=p", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	q := svc.lastReq
	if q.Q != "coder" || *q.BudgetGiB != 24 || *q.ContextLength != 8192 || q.KV != "q8" || *q.PreferQuality || *q.MinTPS != 10 || q.Limit != 5 {
		t.Fatalf("parsed request: %+v", q)
	}
	if q.Workflow != "w" || q.Toolchain != "t" || q.UseCase != "coding" || q.Profile != "p" || q.MaxTTFTMs != nil {
		t.Fatalf("parsed request: %+v", q)
	}
	var body types.QueryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Count != 1 || body.Results[0].VariantID != "v1" {
		t.Fatalf("body: %+v", body)
	}
}

func TestListVariantsOmittedParamsStayNil(t *testing.T) {
	svc := &mockService{}
	serve(NewMux(svc), httptest.NewRequest(http.MethodGet, "/variants", nil))
	q := svc.lastReq
	if q.BudgetGiB != nil || q.ContextLength != nil || q.PreferQuality != nil || q.Limit != 0 {
		t.Fatalf("expected nil fields, got %+v", q)
	}
}

func TestListVariantsBadParams(t *testing.T) {
	r := NewMux(&mockService{})
	for _, qs := range []string{"budget_gib=lots", "context=1.5", "prefer_quality=maybe", "min_tps=NaN", "limit=x", "max_ttft_ms=Inf"} {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/variants?"+qs, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d", qs, w.Code)
		}
		var e types.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Code != http.StatusBadRequest {
			t.Fatalf("%s: error body %q", qs, w.Body.String())
		}
	}
}

func TestPostQuery(t *testing.T) {
	svc := &mockService{resp: types.QueryResponse{Count: 0, Results: []types.ScoredResult{}}}
	r := NewMux(svc)
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"q":"llama","budget_gib":12,"kv":"q4"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if svc.lastReq.Q != "llama" || *svc.lastReq.BudgetGiB != 12 || svc.lastReq.KV != "q4" {
		t.Fatalf("request: %+v", svc.lastReq)
	}
}

func TestPostQueryRejects(t *testing.T) {
	r := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{}`))
	if w := serve(r, req); w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing content type: status=%d", w.Code)
	}
	req = httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("not-json"))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req); w.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status=%d", w.Code)
	}
	req = httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"budget_gib":"big"}`))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req); w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric budget: status=%d", w.Code)
	}
}

func TestPostQueryBodyLimit(t *testing.T) {
	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(`{"q":"`+strings.Repeat("a", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(NewMux(&mockService{}), req); w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{mockHTTPError{"catalog not loaded", http.StatusServiceUnavailable}, http.StatusServiceUnavailable},
		{mockHTTPError{"unknown profile", http.StatusBadRequest}, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := NewMux(&mockService{err: tc.err})
		for _, path := range []string{"/variants", "/profiles", "/filters", "/variants/x"} {
			w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != tc.want {
				t.Fatalf("%s with %v: status=%d want %d", path, tc.err, w.Code, tc.want)
			}
			if !strings.Contains(w.Body.String(), tc.err.Error()) {
				t.Fatalf("%s: body=%q", path, w.Body.String())
			}
		}
	}
}

func TestVariantDetail(t *testing.T) {
	svc := &mockService{detail: types.DetailView{FitTier: "fits_opt", Estimated: true}}
	w := serve(NewMux(svc), httptest.NewRequest(http.MethodGet, "/variants/qwen%3A14b?budget_gib=16", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.lastID != "qwen:14b" || *svc.lastReq.BudgetGiB != 16 {
		t.Fatalf("id=%q req=%+v", svc.lastID, svc.lastReq)
	}
	var body types.DetailView
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.FitTier != "fits_opt" || !body.Estimated {
		t.Fatalf("body: %s", w.Body.String())
	}
	literal := serve(NewMux(svc), httptest.NewRequest(http.MethodGet, "/variants/a%25b", nil))
	if literal.Code != http.StatusOK || svc.lastID != "a%b" {
		t.Fatalf("literal percent: status=%d id=%q", literal.Code, svc.lastID)
	}
	bad := serve(NewMux(svc), httptest.NewRequest(http.MethodGet, "/variants/x?context=abc", nil))
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("bad param: status=%d", bad.Code)
	}
}

func TestProfilesFiltersStatus(t *testing.T) {
	vram := 24.0
	svc := &mockService{
		profiles: types.ProfilesResponse{Profiles: []types.ConstraintProfile{{Slug: "rtx-4090", VRAMGiB: &vram}}},
		filters:  types.FiltersResponse{KVModes: []string{"fp16", "q8", "q4"}},
		status:   types.StatusResponse{State: "ready", LoadsTotal: 3},
	}
	r := NewMux(svc)
	var p types.ProfilesResponse
	if err := json.Unmarshal(serve(r, httptest.NewRequest(http.MethodGet, "/profiles", nil)).Body.Bytes(), &p); err != nil || len(p.Profiles) != 1 {
		t.Fatalf("profiles: %+v %v", p, err)
	}
	var f types.FiltersResponse
	if err := json.Unmarshal(serve(r, httptest.NewRequest(http.MethodGet, "/filters", nil)).Body.Bytes(), &f); err != nil || len(f.KVModes) != 3 {
		t.Fatalf("filters: %+v %v", f, err)
	}
	var s types.StatusResponse
	if err := json.Unmarshal(serve(r, httptest.NewRequest(http.MethodGet, "/status", nil)).Body.Bytes(), &s); err != nil || s.State != "ready" || s.LoadsTotal != 3 {
		t.Fatalf("status: %+v %v", s, err)
	}
}

func TestHealthAndReady(t *testing.T) {
	if w := serve(NewMux(&mockService{}), httptest.NewRequest(http.MethodGet, "/healthz", nil)); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", w.Code, w.Body.String())
	}
	if w := serve(NewMux(&mockService{ready: true}), httptest.NewRequest(http.MethodGet, "/readyz", nil)); w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
	w := serve(NewMux(&mockService{}), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("readyz not ready: %d %q", w.Code, w.Body.String())
	}
}

func TestSecurityHeader(t *testing.T) {
	w := serve(NewMux(&mockService{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
}

func TestCORS(t *testing.T) {
	SetCORSOptions(true, []string{"https://example.org"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/variants", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(NewMux(&mockService{}), req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Fatalf("allow origin = %q (status %d)", got, w.Code)
	}

	SetCORSOptions(false, nil, nil, nil)
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.org")
	if got := serve(NewMux(&mockService{}), req).Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("cors should be off, got %q", got)
	}
}
