package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vramfit/internal/fit"
	"vramfit/internal/memory"
	"vramfit/internal/service"
	"vramfit/internal/ui"
	"vramfit/pkg/types"
)

// queryFlags mirror the HTTP query parameters.
type queryFlags struct {
	q, workflow, toolchain, useCase, profile, kv string
	budget, minTPS, maxTTFT                      float64
	context, limit                               int
	preferQuality                                bool
}

func (qf *queryFlags) register(f *pflag.FlagSet) {
	f.StringVarP(&qf.q, "query", "q", "", "Substring over family, tag, display name and labels")
	f.StringVar(&qf.workflow, "workflow", "", "Workflow slug")
	f.StringVar(&qf.toolchain, "toolchain", "", "Toolchain slug")
	f.StringVar(&qf.useCase, "use-case", "", "Use-case tag slug")
	f.StringVar(&qf.profile, "profile", "", "Constraint profile supplying the budget")
	f.StringVar(&qf.kv, "kv", "", "KV cache mode: fp16, q8, q4")
	f.Float64Var(&qf.budget, "budget", 0, "VRAM budget in GiB (0 = unknown)")
	f.Float64Var(&qf.minTPS, "min-tps", 0, "Minimum p50 tokens/sec")
	f.Float64Var(&qf.maxTTFT, "max-ttft-ms", 0, "Maximum p50 time to first token")
	f.IntVar(&qf.context, "context", 0, "Context length in tokens")
	f.IntVar(&qf.limit, "limit", 0, "Maximum number of results (0 = all)")
	f.BoolVar(&qf.preferQuality, "prefer-quality", true, "Rank by quality instead of speed")
}

// request converts flags to a request; unset flags stay nil so defaults apply.
func (qf *queryFlags) request(f *pflag.FlagSet) types.QueryRequest {
	req := types.QueryRequest{
		Q:         qf.q,
		Workflow:  qf.workflow,
		Toolchain: qf.toolchain,
		UseCase:   qf.useCase,
		Profile:   qf.profile,
		KV:        qf.kv,
		Limit:     qf.limit,
	}
	if f.Changed("budget") {
		req.BudgetGiB = types.Float(qf.budget)
	}
	if f.Changed("min-tps") {
		req.MinTPS = types.Float(qf.minTPS)
	}
	if f.Changed("max-ttft-ms") {
		req.MaxTTFTMs = types.Float(qf.maxTTFT)
	}
	if f.Changed("context") {
		req.ContextLength = types.Int(qf.context)
	}
	if f.Changed("prefer-quality") {
		req.PreferQuality = types.Bool(qf.preferQuality)
	}
	return req
}

// oneShot opens the catalog with logging to stderr.
func oneShot(o *globalOptions, cmd *cobra.Command) (*service.Service, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	cfg = cfg.WithDefaults()
	if cfg.CatalogPath == "" {
		return nil, errors.New("no catalog: pass --catalog or set VRAMFIT_CATALOG")
	}
	svc, _, err := openService(cfg, newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()))
	return svc, err
}

func queryCmd(o *globalOptions) *cobra.Command {
	qf := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Rank catalog variants for a budget, context and KV mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := oneShot(o, cmd)
			if err != nil {
				return err
			}
			resp, err := svc.Query(cmd.Context(), qf.request(cmd.Flags()))
			if err != nil {
				return err
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			ui.Results(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	qf.register(cmd.Flags())
	return cmd
}

func detailCmd(o *globalOptions) *cobra.Command {
	qf := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "detail <variant-id>",
		Short: "Show estimates and community data for one variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := oneShot(o, cmd)
			if err != nil {
				return err
			}
			view, err := svc.Detail(cmd.Context(), args[0], qf.request(cmd.Flags()))
			if err != nil {
				return err
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			ui.Detail(cmd.OutOrStdout(), view)
			return nil
		},
	}
	qf.register(cmd.Flags())
	return cmd
}

func profilesCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List constraint profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := oneShot(o, cmd)
			if err != nil {
				return err
			}
			resp, err := svc.Profiles()
			if err != nil {
				return err
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			ui.Profiles(cmd.OutOrStdout(), resp.Profiles)
			return nil
		},
	}
}

// estimateOutput is the JSON shape of `vramfit estimate`.
type estimateOutput struct {
	Tag            string                  `json:"tag"`
	SizeBytes      int64                   `json:"size_bytes"`
	Components     types.VariantComponents `json:"components"`
	ParamsB        *float64                `json:"params_b"`
	Confidence     string                  `json:"confidence"`
	Note           string                  `json:"note"`
	ContextLength  int                     `json:"context"`
	KV             string                  `json:"kv"`
	VRAMOptGiB     float64                 `json:"vram_required_opt_gib"`
	VRAMConsGiB    float64                 `json:"vram_required_cons_gib"`
	BudgetGiB      float64                 `json:"budget_gib,omitempty"`
	FitTier        string                  `json:"fit_tier,omitempty"`
	MaxContextCons *int                    `json:"max_context_tokens_cons,omitempty"`
}

func estimateCmd(o *globalOptions) *cobra.Command {
	var (
		tag       string
		sizeBytes int64
		sizeGiB   float64
		ctxLen    int
		kv        string
		budget    float64
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Derive memory components from a tag and file size, then estimate VRAM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sizeBytes <= 0 && sizeGiB > 0 {
				sizeBytes = int64(sizeGiB * memory.GiB)
			}
			if sizeBytes <= 0 {
				return errors.New("--size-bytes or --size-gib is required")
			}
			mode := memory.ParseKVMode(kv)
			d := memory.DeriveComponents(sizeBytes, tag)
			fp := d.Footprint()
			est, _ := fp.Estimate(ctxLen, mode)
			out := estimateOutput{
				Tag:           tag,
				SizeBytes:     sizeBytes,
				Components:    d.Components(""),
				ParamsB:       d.ParamsB,
				Confidence:    string(d.Confidence),
				Note:          d.Note,
				ContextLength: ctxLen,
				KV:            string(mode),
				VRAMOptGiB:    est.OptimisticGiB,
				VRAMConsGiB:   est.ConservativeGiB,
			}
			if budget > 0 {
				out.BudgetGiB = budget
				out.FitTier = fit.Classify(est.ConservativeGiB, est.OptimisticGiB, budget).String()
				if n, ok := fp.MaxContext(budget, mode); ok {
					out.MaxContextCons = &n
				}
			}
			if o.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printEstimate(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&tag, "tag", "", "Variant tag, e.g. llama3.1:8b (parameter tier is parsed from it)")
	f.Int64Var(&sizeBytes, "size-bytes", 0, "Model file size in bytes")
	f.Float64Var(&sizeGiB, "size-gib", 0, "Model file size in GiB (alternative to --size-bytes)")
	f.IntVar(&ctxLen, "context", 16384, "Context length in tokens")
	f.StringVar(&kv, "kv", "fp16", "KV cache mode: fp16, q8, q4")
	f.Float64Var(&budget, "budget", 0, "VRAM budget in GiB for a fit verdict")
	return cmd
}

func printEstimate(w io.Writer, e estimateOutput) {
	c := e.Components
	fmt.Fprintf(w, "%s %s\n", ui.Brand.Sprint("estimate"), e.Tag)
	fmt.Fprintf(w, "  weights     %s GiB\n", ui.Opt(c.WeightsVRAMGiB))
	fmt.Fprintf(w, "  runtime     %s GiB\n", ui.Opt(c.RuntimeOverheadGiB))
	fmt.Fprintf(w, "  kv/token    opt %s / cons %s bytes (fp16 basis)\n", ui.Opt(c.KVBytesPerTokenOpt), ui.Opt(c.KVBytesPerTokenCons))
	fmt.Fprintf(w, "  vram        opt %s / cons %s GiB at %d tokens, kv=%s\n", ui.GiB(e.VRAMOptGiB), ui.GiB(e.VRAMConsGiB), e.ContextLength, e.KV)
	if e.FitTier != "" {
		fmt.Fprintf(w, "  fit         %s under %s GiB\n", ui.TierColor(e.FitTier).Sprint(e.FitTier), ui.GiB(e.BudgetGiB))
	}
	if e.MaxContextCons != nil {
		fmt.Fprintf(w, "  max context %s tokens\n", ui.Tokens(*e.MaxContextCons))
	}
	ui.Subtle.Fprintf(w, "  confidence=%s %s\n", e.Confidence, e.Note)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
