// Package service resolves query requests against the current catalog
// snapshot and is the Service behind the HTTP API and the CLI.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"vramfit/internal/catalog"
	"vramfit/internal/memory"
	"vramfit/internal/query"
	"vramfit/internal/rank"
	"vramfit/pkg/types"
)

// Defaults fill query parameters a request leaves out.
type Defaults struct {
	BudgetGiB     float64
	ContextLength int
	KVMode        string
	PreferQuality bool
	Profile       string
	Limit         int
}

// Options configures a Service.
type Options struct {
	Store    *catalog.Store
	Weights  *rank.Weights
	Defaults Defaults
	Logger   *zerolog.Logger
}

// Service is safe for concurrent use.
type Service struct {
	store    *catalog.Store
	engine   *query.Engine
	defaults Defaults
	log      zerolog.Logger
	started  time.Time
}

// New builds a service over opts.Store.
func New(opts Options) *Service {
	w := rank.DefaultWeights()
	if opts.Weights != nil {
		w = *opts.Weights
	}
	s := &Service{
		store:    opts.Store,
		engine:   query.NewEngine(w),
		defaults: opts.Defaults,
		log:      zerolog.Nop(),
		started:  time.Now(),
	}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "service").Logger()
	}
	return s
}

// Ready reports whether a catalog snapshot is available.
func (s *Service) Ready() bool { return s.store != nil && s.store.Ready() }

func (s *Service) snapshot() (*catalog.Snapshot, error) {
	if s.store == nil {
		return nil, catalogUnavailableError{}
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, catalogUnavailableError{reason: s.store.LastError()}
	}
	return snap, nil
}

// Query ranks the catalog for req.
func (s *Service) Query(ctx context.Context, req types.QueryRequest) (types.QueryResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.QueryResponse{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return types.QueryResponse{}, err
	}
	f, profile, err := s.resolve(snap, req)
	if err != nil {
		return types.QueryResponse{}, err
	}
	results := s.engine.Query(snap, f)
	echo := f.Echo()
	echo.Profile = profile
	s.log.Debug().
		Str("version", snap.Version()).
		Float64("budget_gib", f.BudgetGiB).
		Int("context", f.ContextLength).
		Str("kv", echo.KV).
		Int("results", len(results)).
		Msg("query")
	return types.QueryResponse{
		CatalogVersion: snap.Version(),
		Query:          echo,
		Count:          len(results),
		Results:        results,
	}, nil
}

// Detail re-derives the figures of one variant under req.
func (s *Service) Detail(ctx context.Context, variantID string, req types.QueryRequest) (types.DetailView, error) {
	if err := ctx.Err(); err != nil {
		return types.DetailView{}, err
	}
	snap, err := s.snapshot()
	if err != nil {
		return types.DetailView{}, err
	}
	f, profile, err := s.resolve(snap, req)
	if err != nil {
		return types.DetailView{}, err
	}
	view, err := s.engine.Detail(snap, variantID, f)
	if err != nil {
		return types.DetailView{}, err
	}
	view.Query.Profile = profile
	return view, nil
}

// Profiles lists the constraint profiles of the current catalog.
func (s *Service) Profiles() (types.ProfilesResponse, error) {
	snap, err := s.snapshot()
	if err != nil {
		return types.ProfilesResponse{}, err
	}
	return types.ProfilesResponse{Profiles: nonNil(snap.Profiles())}, nil
}

// Filters lists selector options.
func (s *Service) Filters() (types.FiltersResponse, error) {
	snap, err := s.snapshot()
	if err != nil {
		return types.FiltersResponse{}, err
	}
	return types.FiltersResponse{
		Workflows:  nonNil(snap.Workflows()),
		Toolchains: nonNil(snap.Toolchains()),
		UseCases:   nonNil(snap.UseCaseTags()),
		Profiles:   nonNil(snap.Profiles()),
		KVModes:    memory.KVModes(),
	}, nil
}

// Status reports the catalog state.
func (s *Service) Status() types.StatusResponse {
	st := types.StatusResponse{
		State:         "loading",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	}
	if s.store == nil {
		return st
	}
	st.CatalogPath = s.store.Path()
	st.LoadsTotal = s.store.LoadsTotal()
	st.LastError = s.store.LastError()
	snap := s.store.Current()
	if snap == nil {
		if st.LastError != "" {
			st.State = "error"
		}
		return st
	}
	st.State = "ready"
	st.CatalogVersion = snap.Version()
	st.GeneratedAt = snap.GeneratedAt()
	st.LoadedAtUnix = snap.LoadedAt().Unix()
	st.Counts = snap.Counts()
	return st
}

// resolve validates req and fills omitted values from the defaults. An
// explicit budget wins over a profile; a profile without a VRAM figure
// yields the unknown budget.
func (s *Service) resolve(snap *catalog.Snapshot, req types.QueryRequest) (query.Filter, string, error) {
	if err := req.Validate(); err != nil {
		return query.Filter{}, "", invalidRequestError{err: err}
	}
	d := s.defaults
	f := query.Filter{
		Text:          req.Q,
		Workflow:      req.Workflow,
		Toolchain:     req.Toolchain,
		UseCase:       req.UseCase,
		BudgetGiB:     d.BudgetGiB,
		ContextLength: d.ContextLength,
		KVMode:        memory.ParseKVMode(d.KVMode),
		PreferQuality: d.PreferQuality,
		MinTPS:        req.MinTPS,
		MaxTTFTMs:     req.MaxTTFTMs,
		Limit:         d.Limit,
	}
	if req.ContextLength != nil {
		f.ContextLength = *req.ContextLength
	}
	if req.KV != "" {
		f.KVMode = memory.ParseKVMode(req.KV)
	}
	if req.PreferQuality != nil {
		f.PreferQuality = *req.PreferQuality
	}
	if req.Limit > 0 {
		f.Limit = req.Limit
	}

	profile := ""
	switch {
	case req.BudgetGiB != nil:
		f.BudgetGiB = *req.BudgetGiB
	case req.Profile != "":
		p, ok := snap.Profile(req.Profile)
		if !ok {
			return query.Filter{}, "", profileNotFoundError{slug: req.Profile}
		}
		profile = p.Slug
		f.BudgetGiB = profileBudget(p)
	case d.Profile != "":
		if p, ok := snap.Profile(d.Profile); ok {
			profile = p.Slug
			f.BudgetGiB = profileBudget(p)
		} else {
			s.log.Warn().Str("profile", d.Profile).Msg("default profile not in catalog; using default budget")
		}
	}
	return f, profile, nil
}

func profileBudget(p types.ConstraintProfile) float64 {
	if p.VRAMGiB == nil {
		return 0
	}
	return *p.VRAMGiB
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
