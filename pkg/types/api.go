package types

import "github.com/go-playground/validator/v10"

var requestValidate = validator.New()

// QueryRequest is the filter/ranking request accepted by GET /variants,
// POST /query and GET /variants/{id}. Nil fields fall back to server defaults.
type QueryRequest struct {
	// Free-text substring matched against family slug, tag, display name and labels.
	// example: coder
	Q string `json:"q,omitempty" example:"coder"`
	// Workflow slug; run aggregates need both workflow and toolchain.
	// example: coding-agent
	Workflow string `json:"workflow,omitempty" example:"coding-agent"`
	// Toolchain slug.
	// example: ollama
	Toolchain string `json:"toolchain,omitempty" example:"ollama"`
	// Use-case tag slug.
	// example: coding
	UseCase string `json:"use_case,omitempty" example:"coding"`
	// VRAM budget in GiB. 0 means "unknown": every candidate gets the unknown tier.
	// example: 24
	BudgetGiB *float64 `json:"budget_gib,omitempty" validate:"omitempty,gte=0" example:"24"`
	// Constraint profile slug supplying the budget when budget_gib is omitted.
	// example: rtx-4090
	Profile string `json:"profile,omitempty" example:"rtx-4090"`
	// Context length in tokens.
	// example: 16384
	ContextLength *int `json:"context,omitempty" validate:"omitempty,gte=0" example:"16384"`
	// KV cache mode: fp16, q8/int8, q4/int4. Unrecognized values use fp16.
	// example: q8
	KV string `json:"kv,omitempty" validate:"max=32" example:"q8"`
	// Rank by quality (true) or by throughput (false).
	// example: true
	PreferQuality *bool `json:"prefer_quality,omitempty" example:"true"`
	// Minimum acceptable p50 tokens/sec; slower known variants are penalized.
	// example: 20
	MinTPS *float64 `json:"min_tps,omitempty" validate:"omitempty,gte=0" example:"20"`
	// Maximum acceptable p50 time-to-first-token in ms.
	// example: 1500
	MaxTTFTMs *float64 `json:"max_ttft_ms,omitempty" validate:"omitempty,gte=0" example:"1500"`
	// Maximum number of results (0 = all).
	// example: 50
	Limit int `json:"limit,omitempty" validate:"gte=0" example:"50"`
}

// Validate checks value ranges of the request.
func (r *QueryRequest) Validate() error {
	return requestValidate.Struct(r)
}

// ScoredResult is one ranked variant.
type ScoredResult struct {
	VariantID         string   `json:"variant_id"`
	FamilySlug        string   `json:"family_slug" example:"qwen2.5"`
	Tag               string   `json:"tag" example:"qwen2.5:14b"`
	TagShort          string   `json:"tag_short" example:"14b"`
	SizeGiB           *float64 `json:"size_gib"`
	MaxContextCatalog *int     `json:"max_context_catalog"`
	// One of unknown, fits_cons, fits_opt.
	// example: fits_cons
	FitTier             string  `json:"fit_tier" example:"fits_cons"`
	VRAMRequiredOptGiB  float64 `json:"vram_required_opt_gib" example:"15.2"`
	VRAMRequiredConsGiB float64 `json:"vram_required_cons_gib" example:"17.9"`
	// Largest context that fits the budget under the conservative estimate.
	// example: 40960
	MaxContextTokensCons int      `json:"max_context_tokens_cons" example:"40960"`
	RunCountTrusted      int64    `json:"run_count_trusted" example:"12"`
	P50TPS               *float64 `json:"p50_tps"`
	P50TTFTMs            *float64 `json:"p50_ttft_ms"`
	AvgQuality           *float64 `json:"avg_quality"`
	AvgSuccess           *float64 `json:"avg_success"`
	TemplateVoteSum      int64    `json:"template_vote_sum" example:"7"`
	RankScore            float64  `json:"rank_score" example:"131.4"`
}

// QueryEcho reports the effective parameters a query ran with after defaults.
type QueryEcho struct {
	BudgetGiB     float64  `json:"budget_gib"`
	ContextLength int      `json:"context"`
	KV            string   `json:"kv"`
	PreferQuality bool     `json:"prefer_quality"`
	Workflow      string   `json:"workflow,omitempty"`
	Toolchain     string   `json:"toolchain,omitempty"`
	UseCase       string   `json:"use_case,omitempty"`
	Profile       string   `json:"profile,omitempty"`
	MinTPS        *float64 `json:"min_tps,omitempty"`
	MaxTTFTMs     *float64 `json:"max_ttft_ms,omitempty"`
}

// QueryResponse wraps the ordered results of a query.
type QueryResponse struct {
	// Catalog snapshot version the query ran against.
	CatalogVersion string         `json:"catalog_version"`
	Query          QueryEcho      `json:"query"`
	Count          int            `json:"count"`
	Results        []ScoredResult `json:"results"`
}

// DetailView is the read-only re-derivation for a single variant.
type DetailView struct {
	CatalogVersion string  `json:"catalog_version"`
	Variant        Variant `json:"variant"`
	// Family is nil when the variant's family does not resolve.
	Family         *Family   `json:"family"`
	Query          QueryEcho `json:"query"`
	FitTier        string    `json:"fit_tier"`
	VRAMConsGiB    *float64  `json:"vram_required_cons_gib"`
	VRAMOptGiB     *float64  `json:"vram_required_opt_gib"`
	MaxContextCons *int      `json:"max_context_tokens_cons"`
	// Raw memory-model inputs; nil when the variant has no components.
	Components   *VariantComponents `json:"components"`
	RunAggregate *RunAggregate      `json:"run_aggregate"`
	BestTemplate *BestTemplate      `json:"best_template"`
	// Always true: figures are estimates, never measurements.
	Estimated bool `json:"estimated"`
}

// ProfilesResponse lists the constraint profiles of the current catalog.
type ProfilesResponse struct {
	Profiles []ConstraintProfile `json:"profiles"`
}

// FiltersResponse lists selector options for the input collection layer.
type FiltersResponse struct {
	Workflows  []Workflow          `json:"workflows"`
	Toolchains []Toolchain         `json:"toolchains"`
	UseCases   []Tag               `json:"use_cases"`
	Profiles   []ConstraintProfile `json:"profiles"`
	KVModes    []string            `json:"kv_modes"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// CatalogCounts reports entity counts of a snapshot.
type CatalogCounts struct {
	Families     int `json:"families"`
	Variants     int `json:"variants"`
	Components   int `json:"components"`
	Derived      int `json:"derived_components"`
	RunAggs      int `json:"run_aggregates"`
	Templates    int `json:"best_templates"`
	Profiles     int `json:"constraint_profiles"`
	UseCaseTags  int `json:"use_case_tags"`
	DuplicateKey int `json:"duplicate_keys"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// example: ready
	State string `json:"state" example:"ready"`
	// Snapshot version (changes on every successful load).
	CatalogVersion string        `json:"catalog_version,omitempty"`
	CatalogPath    string        `json:"catalog_path,omitempty"`
	GeneratedAt    string        `json:"generated_at,omitempty"`
	LoadedAtUnix   int64         `json:"loaded_at_unix,omitempty"`
	Counts         CatalogCounts `json:"counts"`
	LoadsTotal     uint64        `json:"loads_total"`
	LastError      string        `json:"last_error,omitempty"`
	UptimeSeconds  int64         `json:"uptime_seconds"`
}
