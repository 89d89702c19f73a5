// Package catalog loads the catalog document and indexes it into immutable
// snapshots for the query engine.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"vramfit/internal/memory"
	"vramfit/pkg/types"
)

// BuildOptions tunes snapshot construction.
type BuildOptions struct {
	// DeriveMissingComponents fills variants that have no exported components
	// (but do have a size) with heuristic estimates. Off by default: such
	// variants are otherwise excluded from ranking.
	DeriveMissingComponents bool
	// Source is recorded on the snapshot for status reporting.
	Source string
}

// Snapshot is an immutable, indexed view of one catalog load. It is safe for
// concurrent readers; callers must not mutate returned values.
type Snapshot struct {
	version     string
	source      string
	generatedAt string
	loadedAt    time.Time

	variants     []types.Variant
	variantByID  map[string]int
	familyByID   map[string]types.Family
	familyBySlug map[string]types.Family
	components   map[string]types.VariantComponents
	runs         map[Key]types.RunAggregate
	templates    map[Key]types.BestTemplate
	familyTags   map[string]map[string]struct{}
	profiles     []types.ConstraintProfile
	profileBySlg map[string]int
	workflows    []types.Workflow
	toolchains   []types.Toolchain
	useCaseTags  []types.Tag

	counts types.CatalogCounts
}

// Build indexes doc. The document's slices are copied so later mutation of
// doc cannot leak into the snapshot.
func Build(doc *types.Catalog, opts BuildOptions) *Snapshot {
	if doc == nil {
		doc = &types.Catalog{}
	}
	s := &Snapshot{
		version:      uuid.NewString(),
		source:       opts.Source,
		generatedAt:  doc.GeneratedAt,
		loadedAt:     time.Now(),
		variants:     make([]types.Variant, 0, len(doc.Variants)),
		variantByID:  make(map[string]int, len(doc.Variants)),
		familyByID:   make(map[string]types.Family, len(doc.Families)),
		familyBySlug: make(map[string]types.Family, len(doc.Families)),
		components:   make(map[string]types.VariantComponents, len(doc.VariantComponents)),
		runs:         make(map[Key]types.RunAggregate, len(doc.WorkflowRunAgg)),
		templates:    make(map[Key]types.BestTemplate, len(doc.BestTemplates)),
		familyTags:   make(map[string]map[string]struct{}),
		profiles:     append([]types.ConstraintProfile(nil), doc.ConstraintProfiles...),
		profileBySlg: make(map[string]int, len(doc.ConstraintProfiles)),
		workflows:    append([]types.Workflow(nil), doc.Workflows...),
		toolchains:   append([]types.Toolchain(nil), doc.Toolchains...),
	}

	for _, f := range doc.Families {
		if f.ID != "" {
			s.familyByID[f.ID] = f
		}
		if f.Slug != "" {
			s.familyBySlug[f.Slug] = f
		}
	}
	for _, v := range doc.Variants {
		if _, dup := s.variantByID[v.ID]; dup {
			s.counts.DuplicateKey++
			continue
		}
		s.variantByID[v.ID] = len(s.variants)
		s.variants = append(s.variants, v)
	}
	for _, c := range doc.VariantComponents {
		if _, dup := s.components[c.VariantID]; dup {
			s.counts.DuplicateKey++
			continue
		}
		s.components[c.VariantID] = c
	}
	if opts.DeriveMissingComponents {
		for _, v := range s.variants {
			if _, ok := s.components[v.ID]; ok || v.SizeBytes == nil {
				continue
			}
			s.components[v.ID] = memory.DeriveComponents(*v.SizeBytes, v.Tag).Components(v.ID)
			s.counts.Derived++
		}
	}
	for _, r := range doc.WorkflowRunAgg {
		k := Key{VariantID: r.VariantID, Workflow: r.WorkflowSlug, Toolchain: r.ToolchainSlug}
		if _, dup := s.runs[k]; dup {
			s.counts.DuplicateKey++
			continue
		}
		s.runs[k] = r
	}
	for _, t := range doc.BestTemplates {
		k := Key{VariantID: types.Deref(t.VariantID), Workflow: t.WorkflowSlug, Toolchain: types.Deref(t.ToolchainSlug)}
		if prev, dup := s.templates[k]; dup {
			s.counts.DuplicateKey++
			if voteSum(t) <= voteSum(prev) {
				continue
			}
		}
		s.templates[k] = t
	}
	for _, ft := range doc.FamilyTags {
		set, ok := s.familyTags[ft.FamilyID]
		if !ok {
			set = make(map[string]struct{})
			s.familyTags[ft.FamilyID] = set
		}
		set[ft.TagSlug] = struct{}{}
	}
	for i, p := range s.profiles {
		if _, dup := s.profileBySlg[p.Slug]; !dup {
			s.profileBySlg[p.Slug] = i
		}
	}
	for _, t := range doc.Tags {
		if t.Category == types.TagCategoryUseCase {
			s.useCaseTags = append(s.useCaseTags, t)
		}
	}

	s.counts.Families = len(doc.Families)
	s.counts.Variants = len(s.variants)
	s.counts.Components = len(s.components)
	s.counts.RunAggs = len(s.runs)
	s.counts.Templates = len(s.templates)
	s.counts.Profiles = len(s.profiles)
	s.counts.UseCaseTags = len(s.useCaseTags)
	return s
}

func voteSum(t types.BestTemplate) int64 {
	if t.VoteSum == nil {
		return -1 << 62
	}
	return *t.VoteSum
}

// Version is a unique id of this load.
func (s *Snapshot) Version() string { return s.version }

// Source is the path the snapshot was loaded from, if any.
func (s *Snapshot) Source() string { return s.source }

// GeneratedAt is the export timestamp carried by the document.
func (s *Snapshot) GeneratedAt() string { return s.generatedAt }

// LoadedAt is when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Counts reports entity counts.
func (s *Snapshot) Counts() types.CatalogCounts { return s.counts }

// Variants returns all variants in catalog order.
func (s *Snapshot) Variants() []types.Variant { return s.variants }

// Variant looks up a variant by id.
func (s *Snapshot) Variant(id string) (types.Variant, bool) {
	i, ok := s.variantByID[id]
	if !ok {
		return types.Variant{}, false
	}
	return s.variants[i], true
}

// FamilyOf resolves the family of v, by id first and then by slug.
func (s *Snapshot) FamilyOf(v types.Variant) (types.Family, bool) {
	if v.FamilyID != "" {
		if f, ok := s.familyByID[v.FamilyID]; ok {
			return f, true
		}
	}
	f, ok := s.familyBySlug[v.FamilySlug]
	return f, ok
}

// Components returns the memory-model inputs of a variant.
func (s *Snapshot) Components(variantID string) (types.VariantComponents, bool) {
	c, ok := s.components[variantID]
	return c, ok
}

// RunAggregate looks up run statistics by exact key.
func (s *Snapshot) RunAggregate(k Key) (types.RunAggregate, bool) {
	r, ok := s.runs[k]
	return r, ok
}

// BestTemplate looks up the best template for k, falling back from the
// toolchain-specific key to the workflow-only key.
func (s *Snapshot) BestTemplate(k Key) (types.BestTemplate, bool) {
	if t, ok := s.templates[k]; ok {
		return t, true
	}
	if k.Toolchain == "" {
		return types.BestTemplate{}, false
	}
	t, ok := s.templates[k.WorkflowOnly()]
	return t, ok
}

// FamilyHasTag reports whether the family is associated with tag.
func (s *Snapshot) FamilyHasTag(familyID, tag string) bool {
	set, ok := s.familyTags[familyID]
	if !ok {
		return false
	}
	_, ok = set[tag]
	return ok
}

// Profiles returns the constraint profiles in catalog order.
func (s *Snapshot) Profiles() []types.ConstraintProfile { return s.profiles }

// Profile looks up a constraint profile by slug.
func (s *Snapshot) Profile(slug string) (types.ConstraintProfile, bool) {
	i, ok := s.profileBySlg[slug]
	if !ok {
		return types.ConstraintProfile{}, false
	}
	return s.profiles[i], true
}

// Workflows returns the workflow selector options.
func (s *Snapshot) Workflows() []types.Workflow { return s.workflows }

// Toolchains returns the toolchain selector options.
func (s *Snapshot) Toolchains() []types.Toolchain { return s.toolchains }

// UseCaseTags returns tags of category use_case.
func (s *Snapshot) UseCaseTags() []types.Tag { return s.useCaseTags }
