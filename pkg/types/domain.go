package types

// Catalog is the exported catalog document. It is produced by the catalog
// exporter and consumed read-only by the ranking engine.
type Catalog struct {
	// ISO-8601 timestamp of the export.
	// example: 2025-06-01T12:00:00Z
	GeneratedAt        string              `json:"generated_at" yaml:"generated_at"`
	Workflows          []Workflow          `json:"workflows" yaml:"workflows"`
	Toolchains         []Toolchain         `json:"toolchains" yaml:"toolchains"`
	Tags               []Tag               `json:"tags" yaml:"tags"`
	FamilyTags         []FamilyTag         `json:"family_tags" yaml:"family_tags"`
	ConstraintProfiles []ConstraintProfile `json:"constraint_profiles" yaml:"constraint_profiles"`
	Families           []Family            `json:"families" yaml:"families"`
	Variants           []Variant           `json:"variants" yaml:"variants"`
	VariantComponents  []VariantComponents `json:"variant_components" yaml:"variant_components"`
	WorkflowRunAgg     []RunAggregate      `json:"workflow_run_agg" yaml:"workflow_run_agg"`
	BestTemplates      []BestTemplate      `json:"best_templates" yaml:"best_templates"`
}

// Workflow is a task pipeline used to scope community data.
type Workflow struct {
	// example: coding-agent
	Slug        string `json:"slug" yaml:"slug" example:"coding-agent"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Category    string `json:"category,omitempty" yaml:"category"`
}

// Toolchain is an execution engine used to scope community data.
type Toolchain struct {
	// example: ollama
	Slug        string `json:"slug" yaml:"slug" example:"ollama"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Kind        string `json:"kind,omitempty" yaml:"kind"`
	Components  any    `json:"components,omitempty" yaml:"components"`
}

// Tag is a categorized label. Category "use_case" drives the use-case filter.
type Tag struct {
	// example: coding
	Slug        string `json:"slug" yaml:"slug" example:"coding"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category" example:"use_case"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// TagCategoryUseCase marks tags offered as use-case selectors.
const TagCategoryUseCase = "use_case"

// FamilyTag associates a family with a tag.
type FamilyTag struct {
	FamilyID     string   `json:"family_id" yaml:"family_id"`
	TagSlug      string   `json:"tag_slug" yaml:"tag_slug"`
	Confidence   *float64 `json:"confidence,omitempty" yaml:"confidence"`
	Source       string   `json:"source,omitempty" yaml:"source"`
	Verification string   `json:"verification,omitempty" yaml:"verification"`
}

// ConstraintProfile is a named hardware preset supplying a default VRAM budget.
type ConstraintProfile struct {
	// example: rtx-4090
	Slug         string   `json:"slug" yaml:"slug" example:"rtx-4090"`
	DisplayName  string   `json:"display_name" yaml:"display_name" example:"RTX 4090 (24 GiB)"`
	VRAMGiB      *float64 `json:"vram_gib" yaml:"vram_gib" example:"24"`
	RAMGiB       *float64 `json:"ram_gib,omitempty" yaml:"ram_gib"`
	GPUModel     string   `json:"gpu_model,omitempty" yaml:"gpu_model"`
	CPUModel     string   `json:"cpu_model,omitempty" yaml:"cpu_model"`
	Notes        string   `json:"notes,omitempty" yaml:"notes"`
	Verification string   `json:"verification,omitempty" yaml:"verification"`
}

// Family is a model family (e.g., llama3.1, qwen2.5).
type Family struct {
	ID           string   `json:"id" yaml:"id"`
	Slug         string   `json:"slug" yaml:"slug" example:"qwen2.5"`
	DisplayName  string   `json:"display_name" yaml:"display_name" example:"Qwen 2.5"`
	Description  string   `json:"description" yaml:"description"`
	Labels       []string `json:"labels" yaml:"labels"`
	Downloads    *int64   `json:"downloads,omitempty" yaml:"downloads"`
	FirstSeenAt  string   `json:"catalog_first_seen_at,omitempty" yaml:"catalog_first_seen_at"`
	LastSeenAt   string   `json:"last_seen_at,omitempty" yaml:"last_seen_at"`
	Verification string   `json:"verification" yaml:"verification" example:"estimated"`
}

// Variant is one released build (tag + quantization) of a family.
type Variant struct {
	ID           string   `json:"id" yaml:"id"`
	FamilyID     string   `json:"family_id" yaml:"family_id"`
	FamilySlug   string   `json:"family_slug" yaml:"family_slug" example:"qwen2.5"`
	Tag          string   `json:"tag" yaml:"tag" example:"qwen2.5:14b-instruct-q4_K_M"`
	TagShort     string   `json:"tag_short" yaml:"tag_short" example:"14b-instruct-q4_K_M"`
	Digest       string   `json:"digest,omitempty" yaml:"digest"`
	SizeBytes    *int64   `json:"size_bytes,omitempty" yaml:"size_bytes"`
	SizeGiB      *float64 `json:"size_gib,omitempty" yaml:"size_gib"`
	MaxContext   *int     `json:"max_context,omitempty" yaml:"max_context"`
	InputType    string   `json:"input_type,omitempty" yaml:"input_type"`
	FirstSeenAt  string   `json:"catalog_first_seen_at,omitempty" yaml:"catalog_first_seen_at"`
	LastSeenAt   string   `json:"last_seen_at,omitempty" yaml:"last_seen_at"`
	Verification string   `json:"verification" yaml:"verification"`
}

// VariantComponents holds the memory-model inputs of one variant. KV figures
// are fp16 basis values; the engine scales them by the requested KV mode.
type VariantComponents struct {
	VariantID           string   `json:"variant_id" yaml:"variant_id"`
	FamilySlug          string   `json:"family_slug,omitempty" yaml:"family_slug"`
	Tag                 string   `json:"tag,omitempty" yaml:"tag"`
	WeightsVRAMGiB      *float64 `json:"weights_vram_gib" yaml:"weights_vram_gib"`
	RuntimeOverheadGiB  *float64 `json:"runtime_overhead_gib" yaml:"runtime_overhead_gib"`
	KVBytesPerTokenOpt  *float64 `json:"kv_bytes_per_token_opt" yaml:"kv_bytes_per_token_opt"`
	KVBytesPerTokenCons *float64 `json:"kv_bytes_per_token_cons" yaml:"kv_bytes_per_token_cons"`
	KVCacheType         string   `json:"kv_cache_type,omitempty" yaml:"kv_cache_type"`
	// Set when the components were derived at load time rather than exported.
	Derived bool `json:"derived,omitempty" yaml:"-"`
}

// RunAggregate summarizes community runs for one (variant, workflow, toolchain).
type RunAggregate struct {
	VariantID       string   `json:"variant_id" yaml:"variant_id"`
	WorkflowSlug    string   `json:"workflow_slug" yaml:"workflow_slug"`
	ToolchainSlug   string   `json:"toolchain_slug" yaml:"toolchain_slug"`
	RunCount        *int64   `json:"run_count,omitempty" yaml:"run_count"`
	RunCountTrusted *int64   `json:"run_count_trusted" yaml:"run_count_trusted"`
	P50TPS          *float64 `json:"p50_tps" yaml:"p50_tps"`
	P50TTFTMs       *float64 `json:"p50_ttft_ms" yaml:"p50_ttft_ms"`
	AvgQuality      *float64 `json:"avg_quality" yaml:"avg_quality"`
	AvgSuccess      *float64 `json:"avg_success" yaml:"avg_success"`
	AvgStability    *float64 `json:"avg_stability,omitempty" yaml:"avg_stability"`
	LastRunAt       string   `json:"last_run_at,omitempty" yaml:"last_run_at"`
}

// BestTemplate is the highest-voted sampling preset for a key. A nil VariantID
// or ToolchainSlug means the template is not scoped on that axis.
type BestTemplate struct {
	VariantID       *string  `json:"variant_id" yaml:"variant_id"`
	WorkflowSlug    string   `json:"workflow_slug" yaml:"workflow_slug"`
	ToolchainSlug   *string  `json:"toolchain_slug" yaml:"toolchain_slug"`
	TaskName        string   `json:"task_name" yaml:"task_name"`
	Temperature     *float64 `json:"temperature" yaml:"temperature"`
	TopK            *int     `json:"top_k" yaml:"top_k"`
	TopP            *float64 `json:"top_p" yaml:"top_p"`
	ContextUsagePct *float64 `json:"context_usage_pct" yaml:"context_usage_pct"`
	Notes           string   `json:"notes,omitempty" yaml:"notes"`
	VoteCount       *int64   `json:"vote_count" yaml:"vote_count"`
	VoteSum         *int64   `json:"vote_sum" yaml:"vote_sum"`
	SubmittedAt     string   `json:"submitted_at,omitempty" yaml:"submitted_at"`
	Verification    string   `json:"verification,omitempty" yaml:"verification"`
}
