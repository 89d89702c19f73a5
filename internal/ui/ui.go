// Package ui renders CLI output: aligned, colored tables of ranked variants,
// details and profiles.
package ui

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"vramfit/pkg/types"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Styler picks the color of a cell from its text; nil leaves it plain.
type Styler func(cell string) *color.Color

// Table prints an aligned table. Widths are computed on the plain text so
// colored cells stay aligned.
func Table(w io.Writer, headers []string, rows [][]string, styles map[int]Styler) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var head, sep strings.Builder
	head.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		fmt.Fprintf(&head, "%-*s  ", widths[i], h)
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(w, strings.TrimRight(head.String(), " "))
	Subtle.Fprintln(w, strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			padded := fmt.Sprintf("%-*s  ", widths[i], cell)
			if st, ok := styles[i]; ok {
				if c := st(cell); c != nil {
					padded = c.Sprint(padded)
				}
			}
			line.WriteString(padded)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// TierColor colors fit tiers: green fits, yellow optimistic, red no fit.
func TierColor(tier string) *color.Color {
	switch tier {
	case "fits_cons":
		return Good
	case "fits_opt":
		return Warn
	case "no_fit":
		return Bad
	default:
		return Subtle
	}
}

// GiB formats a GiB figure with two decimals.
func GiB(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// Opt formats an optional number; nil prints as "-".
func Opt(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// Tokens formats a context length; an unbounded value prints as "unbounded".
func Tokens(n int) string {
	if n == math.MaxInt {
		return "unbounded"
	}
	return strconv.Itoa(n)
}

// Results prints ranked variants.
func Results(w io.Writer, resp types.QueryResponse) {
	q := resp.Query
	fmt.Fprintf(w, "%s budget=%s GiB context=%d kv=%s prefer_quality=%t\n\n",
		Brand.Sprint("vramfit"), GiB(q.BudgetGiB), q.ContextLength, q.KV, q.PreferQuality)
	if resp.Count == 0 {
		Warn.Fprintln(w, "  no variants fit")
		return
	}
	headers := []string{"#", "TAG", "FIT", "VRAM OPT", "VRAM CONS", "MAX CTX", "RUNS", "TPS", "QUALITY", "VOTES", "SCORE"}
	rows := make([][]string, 0, len(resp.Results))
	for i, r := range resp.Results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Tag,
			r.FitTier,
			GiB(r.VRAMRequiredOptGiB),
			GiB(r.VRAMRequiredConsGiB),
			Tokens(r.MaxContextTokensCons),
			strconv.FormatInt(r.RunCountTrusted, 10),
			Opt(r.P50TPS),
			Opt(r.AvgQuality),
			strconv.FormatInt(r.TemplateVoteSum, 10),
			strconv.FormatFloat(r.RankScore, 'f', 1, 64),
		})
	}
	Table(w, headers, rows, map[int]Styler{2: TierColor})
	fmt.Fprintln(w)
	Subtle.Fprintf(w, "  %d variants (no_fit omitted). Figures are estimates.\n", resp.Count)
}

// Detail prints the projection of a single variant.
func Detail(w io.Writer, d types.DetailView) {
	fmt.Fprintf(w, "%s %s\n", Brand.Sprint(d.Variant.Tag), Subtle.Sprint("("+d.Variant.ID+")"))
	if d.Family != nil {
		fmt.Fprintf(w, "  family      %s (%s)\n", d.Family.DisplayName, d.Family.Slug)
	} else {
		fmt.Fprintf(w, "  family      %s\n", Warn.Sprint("not found"))
	}
	fmt.Fprintf(w, "  query       budget=%s GiB context=%d kv=%s\n", GiB(d.Query.BudgetGiB), d.Query.ContextLength, d.Query.KV)
	fmt.Fprintf(w, "  fit         %s\n", TierColor(d.FitTier).Sprint(d.FitTier))
	fmt.Fprintf(w, "  vram        opt %s / cons %s GiB\n", optGiB(d.VRAMOptGiB), optGiB(d.VRAMConsGiB))
	if d.MaxContextCons != nil {
		fmt.Fprintf(w, "  max context %s tokens\n", Tokens(*d.MaxContextCons))
	}
	if c := d.Components; c != nil {
		src := "exported"
		if c.Derived {
			src = "derived"
		}
		fmt.Fprintf(w, "  components  weights=%s runtime=%s kv_opt=%s kv_cons=%s (%s)\n",
			Opt(c.WeightsVRAMGiB), Opt(c.RuntimeOverheadGiB), Opt(c.KVBytesPerTokenOpt), Opt(c.KVBytesPerTokenCons), src)
	} else {
		fmt.Fprintf(w, "  components  %s\n", Warn.Sprint("none"))
	}
	if r := d.RunAggregate; r != nil {
		fmt.Fprintf(w, "  runs        trusted=%s tps=%s ttft_ms=%s quality=%s success=%s\n",
			optInt(r.RunCountTrusted), Opt(r.P50TPS), Opt(r.P50TTFTMs), Opt(r.AvgQuality), Opt(r.AvgSuccess))
	}
	if t := d.BestTemplate; t != nil {
		fmt.Fprintf(w, "  template    %s temperature=%s top_p=%s votes=%s\n", t.TaskName, Opt(t.Temperature), Opt(t.TopP), optInt(t.VoteSum))
	}
	Subtle.Fprintln(w, "  estimated figures, not measurements")
}

// Profiles prints constraint profiles.
func Profiles(w io.Writer, profiles []types.ConstraintProfile) {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{p.Slug, p.DisplayName, Opt(p.VRAMGiB), p.GPUModel})
	}
	Table(w, []string{"SLUG", "NAME", "VRAM GIB", "GPU"}, rows, nil)
}

func optGiB(p *float64) string {
	if p == nil {
		return "-"
	}
	return GiB(*p)
}

func optInt(p *int64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatInt(*p, 10)
}
