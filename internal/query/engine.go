// Package query filters, estimates and ranks catalog variants for a given
// budget, context length and KV cache mode.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"vramfit/internal/catalog"
	"vramfit/internal/fit"
	"vramfit/internal/memory"
	"vramfit/internal/rank"
	"vramfit/pkg/types"
)

// Engine evaluates filters against catalog snapshots. It holds no per-query
// state and is safe for concurrent use.
type Engine struct {
	weights rank.Weights
}

// NewEngine returns an engine scoring with w.
func NewEngine(w rank.Weights) *Engine { return &Engine{weights: w} }

// Weights returns the scoring weights in use.
func (e *Engine) Weights() rank.Weights { return e.weights }

// Query returns the variants that pass f, best first. Variants without
// components, with non-computable estimates, or classified no_fit are
// excluded.
func (e *Engine) Query(snap *catalog.Snapshot, f Filter) []types.ScoredResult {
	if snap == nil {
		return []types.ScoredResult{}
	}
	mode := memory.ParseKVMode(string(f.KVMode))
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Text))
	prefs := rank.Preferences{PreferQuality: f.PreferQuality, MinTPS: f.MinTPS, MaxTTFTMs: f.MaxTTFTMs}

	out := make([]types.ScoredResult, 0, len(snap.Variants()))
	for _, v := range snap.Variants() {
		fam, famOK := snap.FamilyOf(v)
		if needle != "" && !strings.Contains(fold.String(haystack(v, fam)), needle) {
			continue
		}
		if f.UseCase != "" && (!famOK || !snap.FamilyHasTag(fam.ID, f.UseCase)) {
			continue
		}
		comps, ok := snap.Components(v.ID)
		if !ok {
			continue
		}
		fp := memory.FootprintOf(comps)
		est, ok := fp.Estimate(f.ContextLength, mode)
		if !ok {
			continue
		}
		tier := fit.Classify(est.ConservativeGiB, est.OptimisticGiB, f.BudgetGiB)
		if tier == fit.NoFit {
			continue
		}
		maxCtx, _ := fp.MaxContext(f.BudgetGiB, mode)

		row := types.ScoredResult{
			VariantID:            v.ID,
			FamilySlug:           v.FamilySlug,
			Tag:                  v.Tag,
			TagShort:             v.TagShort,
			SizeGiB:              v.SizeGiB,
			MaxContextCatalog:    v.MaxContext,
			FitTier:              tier.String(),
			VRAMRequiredOptGiB:   est.OptimisticGiB,
			VRAMRequiredConsGiB:  est.ConservativeGiB,
			MaxContextTokensCons: maxCtx,
		}
		sig := rank.Signals{Tier: tier}
		if run, ok := e.runFor(snap, v.ID, f); ok {
			row.RunCountTrusted = int64OrZero(run.RunCountTrusted)
			row.P50TPS = run.P50TPS
			row.P50TTFTMs = run.P50TTFTMs
			row.AvgQuality = run.AvgQuality
			row.AvgSuccess = run.AvgSuccess
			sig.TrustedRuns = row.RunCountTrusted
			sig.P50TPS = run.P50TPS
			sig.P50TTFTMs = run.P50TTFTMs
			sig.AvgQuality = run.AvgQuality
		}
		if tmpl, ok := templateFor(snap, v.ID, f); ok {
			row.TemplateVoteSum = int64OrZero(tmpl.VoteSum)
			sig.TemplateVoteSum = row.TemplateVoteSum
		}
		row.RankScore = e.weights.Score(sig, prefs)
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rank.Less(out[i].RankScore, out[i].VRAMRequiredConsGiB, out[j].RankScore, out[j].VRAMRequiredConsGiB)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Detail re-derives the figures of a single variant without filtering it
// out: a variant that would be excluded from Query still gets a view.
func (e *Engine) Detail(snap *catalog.Snapshot, variantID string, f Filter) (types.DetailView, error) {
	if snap == nil {
		return types.DetailView{}, ErrVariantNotFound(variantID)
	}
	v, ok := snap.Variant(variantID)
	if !ok {
		return types.DetailView{}, ErrVariantNotFound(variantID)
	}
	mode := memory.ParseKVMode(string(f.KVMode))

	view := types.DetailView{
		CatalogVersion: snap.Version(),
		Variant:        v,
		Query:          f.Echo(),
		FitTier:        fit.Unknown.String(),
		Estimated:      true,
	}
	if fam, ok := snap.FamilyOf(v); ok {
		view.Family = &fam
	}
	if comps, ok := snap.Components(v.ID); ok {
		view.Components = &comps
		fp := memory.FootprintOf(comps)
		if est, ok := fp.Estimate(f.ContextLength, mode); ok {
			view.FitTier = fit.Classify(est.ConservativeGiB, est.OptimisticGiB, f.BudgetGiB).String()
			view.VRAMConsGiB = &est.ConservativeGiB
			view.VRAMOptGiB = &est.OptimisticGiB
			if n, ok := fp.MaxContext(f.BudgetGiB, mode); ok {
				view.MaxContextCons = &n
			}
		}
	}
	if run, ok := e.runFor(snap, v.ID, f); ok {
		view.RunAggregate = &run
	}
	if tmpl, ok := templateFor(snap, v.ID, f); ok {
		view.BestTemplate = &tmpl
	}
	return view, nil
}

// runFor looks up run statistics; they are only scoped when both workflow
// and toolchain are selected.
func (e *Engine) runFor(snap *catalog.Snapshot, variantID string, f Filter) (types.RunAggregate, bool) {
	if f.Workflow == "" || f.Toolchain == "" {
		return types.RunAggregate{}, false
	}
	return snap.RunAggregate(catalog.Key{VariantID: variantID, Workflow: f.Workflow, Toolchain: f.Toolchain})
}

func templateFor(snap *catalog.Snapshot, variantID string, f Filter) (types.BestTemplate, bool) {
	if f.Workflow == "" {
		return types.BestTemplate{}, false
	}
	return snap.BestTemplate(catalog.Key{VariantID: variantID, Workflow: f.Workflow, Toolchain: f.Toolchain})
}

func haystack(v types.Variant, fam types.Family) string {
	var b strings.Builder
	b.WriteString(v.FamilySlug)
	b.WriteByte(' ')
	b.WriteString(v.Tag)
	b.WriteByte(' ')
	b.WriteString(fam.DisplayName)
	for _, l := range fam.Labels {
		b.WriteByte(' ')
		b.WriteString(l)
	}
	return b.String()
}

func int64OrZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
