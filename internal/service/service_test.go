package service

import (
	"context"
	"testing"

	"vramfit/internal/catalog"
	"vramfit/internal/query"
	"vramfit/pkg/types"
)

func testCatalog() *types.Catalog {
	return &types.Catalog{
		GeneratedAt: "2025-06-01T00:00:00Z",
		Workflows:   []types.Workflow{{Slug: "coding-agent", Name: "Coding agent"}},
		Toolchains:  []types.Toolchain{{Slug: "ollama", DisplayName: "Ollama"}},
		Tags:        []types.Tag{{Slug: "coding", Category: types.TagCategoryUseCase}, {Slug: "x", Category: "other"}},
		ConstraintProfiles: []types.ConstraintProfile{
			{Slug: "rtx-3060", VRAMGiB: types.Float(12)},
			{Slug: "mystery"},
		},
		Families: []types.Family{{ID: "f1", Slug: "qwen2.5"}},
		Variants: []types.Variant{
			{ID: "big", FamilyID: "f1", FamilySlug: "qwen2.5", Tag: "qwen2.5:14b"},
			{ID: "small", FamilyID: "f1", FamilySlug: "qwen2.5", Tag: "qwen2.5:3b"},
		},
		VariantComponents: []types.VariantComponents{
			{VariantID: "big", WeightsVRAMGiB: types.Float(13), RuntimeOverheadGiB: types.Float(1), KVBytesPerTokenOpt: types.Float(200000), KVBytesPerTokenCons: types.Float(256000)},
			{VariantID: "small", WeightsVRAMGiB: types.Float(3), RuntimeOverheadGiB: types.Float(1), KVBytesPerTokenOpt: types.Float(100000), KVBytesPerTokenCons: types.Float(120000)},
		},
	}
}

func newService(t *testing.T, d Defaults) *Service {
	t.Helper()
	st := catalog.NewStore(catalog.StoreOptions{})
	st.Replace(testCatalog())
	return New(Options{Store: st, Defaults: d})
}

var siteDefaults = Defaults{BudgetGiB: 24, ContextLength: 16384, KVMode: "fp16", PreferQuality: true}

func TestQueryAppliesDefaults(t *testing.T) {
	s := newService(t, siteDefaults)
	resp, err := s.Query(context.Background(), types.QueryRequest{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("results: %+v", resp)
	}
	q := resp.Query
	if q.BudgetGiB != 24 || q.ContextLength != 16384 || q.KV != "fp16" || !q.PreferQuality {
		t.Fatalf("echo: %+v", q)
	}
	if resp.CatalogVersion == "" {
		t.Fatalf("missing catalog version")
	}
}

func TestQueryOverridesDefaults(t *testing.T) {
	s := newService(t, siteDefaults)
	budget, ctxLen, pq := 8.0, 16384, false
	resp, err := s.Query(context.Background(), types.QueryRequest{BudgetGiB: &budget, ContextLength: &ctxLen, KV: "INT4", PreferQuality: &pq, Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if resp.Query.KV != "q4" || resp.Query.PreferQuality || resp.Query.BudgetGiB != 8 {
		t.Fatalf("echo: %+v", resp.Query)
	}
	// big needs ~15 GiB even at q4, so only small remains
	if resp.Count != 1 || resp.Results[0].VariantID != "small" {
		t.Fatalf("results: %+v", resp.Results)
	}
}

func TestQueryExplicitZeroBudgetIsUnknown(t *testing.T) {
	s := newService(t, siteDefaults)
	zero := 0.0
	resp, err := s.Query(context.Background(), types.QueryRequest{BudgetGiB: &zero})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	for _, r := range resp.Results {
		if r.FitTier != "unknown" {
			t.Fatalf("tier %s for %s", r.FitTier, r.VariantID)
		}
	}
}

func TestQueryProfileBudget(t *testing.T) {
	s := newService(t, siteDefaults)
	resp, err := s.Query(context.Background(), types.QueryRequest{Profile: "rtx-3060"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if resp.Query.BudgetGiB != 12 || resp.Query.Profile != "rtx-3060" {
		t.Fatalf("echo: %+v", resp.Query)
	}
	// explicit budget wins over the profile
	b := 30.0
	resp, err = s.Query(context.Background(), types.QueryRequest{Profile: "rtx-3060", BudgetGiB: &b})
	if err != nil || resp.Query.BudgetGiB != 30 || resp.Query.Profile != "" {
		t.Fatalf("explicit budget: %+v %v", resp.Query, err)
	}
	// a profile without VRAM gives the unknown budget
	resp, err = s.Query(context.Background(), types.QueryRequest{Profile: "mystery"})
	if err != nil || resp.Query.BudgetGiB != 0 {
		t.Fatalf("mystery profile: %+v %v", resp.Query, err)
	}
	_, err = s.Query(context.Background(), types.QueryRequest{Profile: "nope"})
	if !IsProfileNotFound(err) {
		t.Fatalf("expected profile not found, got %v", err)
	}
}

func TestDefaultProfile(t *testing.T) {
	d := siteDefaults
	d.Profile = "rtx-3060"
	resp, err := newService(t, d).Query(context.Background(), types.QueryRequest{})
	if err != nil || resp.Query.BudgetGiB != 12 {
		t.Fatalf("default profile: %+v %v", resp.Query, err)
	}
	d.Profile = "gone"
	resp, err = newService(t, d).Query(context.Background(), types.QueryRequest{})
	if err != nil || resp.Query.BudgetGiB != 24 {
		t.Fatalf("missing default profile should fall back: %+v %v", resp.Query, err)
	}
}

func TestQueryValidation(t *testing.T) {
	s := newService(t, siteDefaults)
	neg := -1
	_, err := s.Query(context.Background(), types.QueryRequest{ContextLength: &neg})
	if !IsInvalidRequest(err) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	nb := -2.0
	if _, err := s.Query(context.Background(), types.QueryRequest{BudgetGiB: &nb}); !IsInvalidRequest(err) {
		t.Fatalf("negative budget accepted: %v", err)
	}
}

func TestQueryCanceled(t *testing.T) {
	s := newService(t, siteDefaults)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Query(ctx, types.QueryRequest{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestDetail(t *testing.T) {
	s := newService(t, siteDefaults)
	v, err := s.Detail(context.Background(), "big", types.QueryRequest{Profile: "rtx-3060"})
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if v.FitTier != "no_fit" || v.Query.Profile != "rtx-3060" || v.Family == nil {
		t.Fatalf("detail: %+v", v)
	}
	if _, err := s.Detail(context.Background(), "missing", types.QueryRequest{}); !query.IsVariantNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnavailableBeforeLoad(t *testing.T) {
	s := New(Options{Store: catalog.NewStore(catalog.StoreOptions{})})
	if s.Ready() {
		t.Fatalf("should not be ready")
	}
	if _, err := s.Query(context.Background(), types.QueryRequest{}); !IsCatalogUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if _, err := s.Profiles(); !IsCatalogUnavailable(err) {
		t.Fatalf("profiles: %v", err)
	}
	if _, err := s.Filters(); !IsCatalogUnavailable(err) {
		t.Fatalf("filters: %v", err)
	}
	if st := s.Status(); st.State != "loading" {
		t.Fatalf("state: %s", st.State)
	}
	if _, err := New(Options{}).Detail(context.Background(), "x", types.QueryRequest{}); !IsCatalogUnavailable(err) {
		t.Fatalf("nil store: %v", err)
	}
}

func TestStatusAfterFailedLoad(t *testing.T) {
	st := catalog.NewStore(catalog.StoreOptions{Path: "/nonexistent/catalog.json"})
	_, _ = st.Load()
	s := New(Options{Store: st})
	status := s.Status()
	if status.State != "error" || status.LastError == "" {
		t.Fatalf("status: %+v", status)
	}
	_, err := s.Query(context.Background(), types.QueryRequest{})
	if !IsCatalogUnavailable(err) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestProfilesFiltersStatus(t *testing.T) {
	s := newService(t, siteDefaults)
	p, err := s.Profiles()
	if err != nil || len(p.Profiles) != 2 {
		t.Fatalf("profiles: %+v %v", p, err)
	}
	f, err := s.Filters()
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	if len(f.Workflows) != 1 || len(f.Toolchains) != 1 || len(f.UseCases) != 1 || len(f.KVModes) != 3 {
		t.Fatalf("filters: %+v", f)
	}
	st := s.Status()
	if st.State != "ready" || st.Counts.Variants != 2 || st.GeneratedAt != "2025-06-01T00:00:00Z" || st.LoadsTotal != 1 {
		t.Fatalf("status: %+v", st)
	}
}
