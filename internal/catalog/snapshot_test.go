package catalog

import (
	"path/filepath"
	"testing"

	"vramfit/pkg/types"
)

func loadSample(t *testing.T) *Snapshot {
	t.Helper()
	doc, err := LoadFile(filepath.Join("testdata", "sample.json"))
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return Build(doc, BuildOptions{})
}

func TestBuildIndices(t *testing.T) {
	s := loadSample(t)
	if s.Version() == "" {
		t.Fatalf("expected snapshot version")
	}
	if s.GeneratedAt() != "2025-06-01T12:00:00Z" {
		t.Fatalf("generated_at: %q", s.GeneratedAt())
	}
	if len(s.Variants()) != 3 {
		t.Fatalf("variants: %d", len(s.Variants()))
	}
	v, ok := s.Variant("v-qwen-14b")
	if !ok || v.Tag != "qwen2.5-coder:14b" {
		t.Fatalf("variant lookup: %+v %v", v, ok)
	}
	if _, ok := s.Variant("missing"); ok {
		t.Fatalf("unexpected variant")
	}
	f, ok := s.FamilyOf(v)
	if !ok || f.DisplayName != "Qwen 2.5 Coder" {
		t.Fatalf("family: %+v %v", f, ok)
	}
	c, ok := s.Components("v-qwen-14b")
	if !ok || *c.WeightsVRAMGiB != 9.0 {
		t.Fatalf("components: %+v %v", c, ok)
	}
	if _, ok := s.Components("v-llama-70b"); ok {
		t.Fatalf("70b has no components")
	}
	if !s.FamilyHasTag("fam-qwen", "coding") || s.FamilyHasTag("fam-qwen", "chat") {
		t.Fatalf("family tag index wrong")
	}
	if got := len(s.UseCaseTags()); got != 2 {
		t.Fatalf("use case tags: %d", got)
	}
	if len(s.Workflows()) != 2 || len(s.Toolchains()) != 2 {
		t.Fatalf("selectors: %d %d", len(s.Workflows()), len(s.Toolchains()))
	}
}

func TestFamilyFallsBackToSlug(t *testing.T) {
	s := Build(&types.Catalog{
		Families: []types.Family{{ID: "f1", Slug: "mistral"}},
		Variants: []types.Variant{{ID: "v1", FamilySlug: "mistral"}, {ID: "v2", FamilyID: "gone", FamilySlug: "gone"}},
	}, BuildOptions{})
	v1, _ := s.Variant("v1")
	if f, ok := s.FamilyOf(v1); !ok || f.ID != "f1" {
		t.Fatalf("slug fallback failed: %+v %v", f, ok)
	}
	v2, _ := s.Variant("v2")
	if _, ok := s.FamilyOf(v2); ok {
		t.Fatalf("dangling family should not resolve")
	}
}

func TestRunAggregateFirstWins(t *testing.T) {
	s := loadSample(t)
	r, ok := s.RunAggregate(Key{VariantID: "v-qwen-14b", Workflow: "coding-agent", Toolchain: "ollama"})
	if !ok || *r.RunCountTrusted != 12 {
		t.Fatalf("run agg: %+v %v", r, ok)
	}
	if _, ok := s.RunAggregate(Key{VariantID: "v-qwen-14b", Workflow: "coding-agent"}); ok {
		t.Fatalf("partial key must not match")
	}
	if got := s.Counts().DuplicateKey; got != 2 {
		t.Fatalf("duplicate keys: %d", got)
	}
}

func TestBestTemplateLookup(t *testing.T) {
	s := loadSample(t)
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"exact with toolchain", Key{"v-qwen-14b", "rag", "vllm"}, "qa"},
		{"fallback to workflow only", Key{"v-qwen-14b", "coding-agent", "ollama"}, "refactor-v2"},
		{"workflow only direct", Key{"v-qwen-14b", "coding-agent", ""}, "refactor-v2"},
		{"no match", Key{"v-qwen-14b", "rag", "ollama"}, ""},
		{"unscoped variant not used", Key{"v-llama-8b", "rag", ""}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bt, ok := s.BestTemplate(tc.key)
			if tc.want == "" {
				if ok {
					t.Fatalf("unexpected template %q", bt.TaskName)
				}
				return
			}
			if !ok || bt.TaskName != tc.want {
				t.Fatalf("got %q ok=%v, want %q", bt.TaskName, ok, tc.want)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	s := loadSample(t)
	p, ok := s.Profile("rtx-4090")
	if !ok || p.VRAMGiB == nil || *p.VRAMGiB != 24 {
		t.Fatalf("profile: %+v %v", p, ok)
	}
	cpu, ok := s.Profile("cpu-only")
	if !ok || cpu.VRAMGiB != nil {
		t.Fatalf("cpu-only profile: %+v %v", cpu, ok)
	}
	if len(s.Profiles()) != 2 {
		t.Fatalf("profiles: %d", len(s.Profiles()))
	}
}

func TestBuildDerivesMissingComponents(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "sample.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := Build(doc, BuildOptions{DeriveMissingComponents: true})
	c, ok := s.Components("v-llama-8b")
	if !ok || !c.Derived {
		t.Fatalf("expected derived components, got %+v %v", c, ok)
	}
	if *c.WeightsVRAMGiB != 8.4 {
		t.Fatalf("weights: %v", *c.WeightsVRAMGiB)
	}
	// no size, nothing to derive from
	if _, ok := s.Components("v-llama-70b"); ok {
		t.Fatalf("70b has no size")
	}
	if s.Counts().Derived != 1 || s.Counts().Components != 2 {
		t.Fatalf("counts: %+v", s.Counts())
	}
	exported, _ := s.Components("v-qwen-14b")
	if exported.Derived {
		t.Fatalf("exported components must not be marked derived")
	}
}

func TestBuildCopiesDocument(t *testing.T) {
	doc := &types.Catalog{Variants: []types.Variant{{ID: "a", Tag: "a:1b"}}}
	s := Build(doc, BuildOptions{})
	doc.Variants[0].Tag = "mutated"
	if v, _ := s.Variant("a"); v.Tag != "a:1b" {
		t.Fatalf("snapshot aliased document: %q", v.Tag)
	}
}

func TestBuildNil(t *testing.T) {
	s := Build(nil, BuildOptions{})
	if len(s.Variants()) != 0 || s.Counts().Variants != 0 {
		t.Fatalf("expected empty snapshot")
	}
}

func TestBuildDropsDuplicateVariants(t *testing.T) {
	s := Build(&types.Catalog{
		Variants: []types.Variant{
			{ID: "v13", Tag: "first"},
			{ID: "v7", Tag: "other"},
			{ID: "v13", Tag: "second"},
		},
	}, BuildOptions{})
	vs := s.Variants()
	if len(vs) != 2 || vs[0].Tag != "first" || vs[1].ID != "v7" {
		t.Fatalf("variants: %+v", vs)
	}
	if v, _ := s.Variant("v13"); v.Tag != "first" {
		t.Fatalf("lookup: %+v", v)
	}
	if c := s.Counts(); c.Variants != 2 || c.DuplicateKey != 1 {
		t.Fatalf("counts: %+v", c)
	}
}
