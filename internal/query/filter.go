package query

import (
	"vramfit/internal/memory"
	"vramfit/pkg/types"
)

// Filter holds the resolved query parameters. A BudgetGiB of 0 means no
// budget: every candidate is classified as unknown.
type Filter struct {
	Text          string
	Workflow      string
	Toolchain     string
	UseCase       string
	BudgetGiB     float64
	ContextLength int
	KVMode        memory.KVMode
	PreferQuality bool
	MinTPS        *float64
	MaxTTFTMs     *float64
	// Limit caps the number of results; 0 returns all.
	Limit int
}

// Echo reports the effective parameters for responses.
func (f Filter) Echo() types.QueryEcho {
	return types.QueryEcho{
		BudgetGiB:     f.BudgetGiB,
		ContextLength: f.ContextLength,
		KV:            string(memory.ParseKVMode(string(f.KVMode))),
		PreferQuality: f.PreferQuality,
		Workflow:      f.Workflow,
		Toolchain:     f.Toolchain,
		UseCase:       f.UseCase,
		MinTPS:        f.MinTPS,
		MaxTTFTMs:     f.MaxTTFTMs,
	}
}
