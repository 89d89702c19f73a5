package catalog

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"vramfit/internal/common/fsutil"
	"vramfit/pkg/types"
)

// ErrNoPath is returned by Store.Load when the store has no catalog path.
var ErrNoPath = errors.New("catalog path not configured")

// StoreOptions configures a Store.
type StoreOptions struct {
	Path                    string
	DeriveMissingComponents bool
	Logger                  *zerolog.Logger
	Publisher               EventPublisher
}

// Store holds the current snapshot. Reloads build a new snapshot and swap it
// in atomically; readers keep whatever snapshot they already obtained.
type Store struct {
	path   string
	derive bool
	log    zerolog.Logger
	pub    EventPublisher

	cur   atomic.Pointer[Snapshot]
	loads atomic.Uint64

	mu      sync.Mutex // serializes loads
	lastErr string
}

// NewStore creates an empty store. Call Load (or Replace) before serving.
func NewStore(opts StoreOptions) *Store {
	s := &Store{derive: opts.DeriveMissingComponents, pub: opts.Publisher, log: zerolog.Nop()}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "catalog").Logger()
	}
	if s.pub == nil {
		s.pub = noopPublisher{}
	}
	if opts.Path != "" {
		if p, err := fsutil.ResolvePath(opts.Path); err == nil {
			s.path = p
		} else {
			s.path = opts.Path
		}
	}
	return s
}

// Path is the resolved catalog path.
func (s *Store) Path() string { return s.path }

// Current returns the active snapshot, or nil before the first successful load.
func (s *Store) Current() *Snapshot { return s.cur.Load() }

// Ready reports whether a snapshot is available.
func (s *Store) Ready() bool { return s.cur.Load() != nil }

// LoadsTotal counts successful loads.
func (s *Store) LoadsTotal() uint64 { return s.loads.Load() }

// LastError is the message of the most recent failed load, cleared on success.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load reads the catalog file and swaps in a fresh snapshot. On failure the
// previous snapshot stays active.
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	if s.path == "" {
		return nil, s.failLocked(ErrNoPath, start)
	}
	doc, err := LoadFile(s.path)
	if err != nil {
		return nil, s.failLocked(fmt.Errorf("load %s: %w", s.path, err), start)
	}
	return s.swapLocked(doc, start), nil
}

// Replace installs a snapshot built from an in-memory document.
func (s *Store) Replace(doc *types.Catalog) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapLocked(doc, time.Now())
}

func (s *Store) swapLocked(doc *types.Catalog, start time.Time) *Snapshot {
	snap := Build(doc, BuildOptions{DeriveMissingComponents: s.derive, Source: s.path})
	prev := s.cur.Swap(snap)
	s.loads.Add(1)
	s.lastErr = ""

	elapsed := time.Since(start)
	loadsTotal.WithLabelValues("ok").Inc()
	loadDuration.Observe(elapsed.Seconds())
	c := snap.Counts()
	observeCounts(c)

	ev := s.log.Info().
		Str("version", snap.Version()).
		Str("generated_at", snap.GeneratedAt()).
		Int("families", c.Families).
		Int("variants", c.Variants).
		Int("components", c.Components).
		Int("derived", c.Derived).
		Dur("took", elapsed)
	if prev != nil {
		ev = ev.Str("previous", prev.Version())
	}
	if c.DuplicateKey > 0 {
		ev = ev.Int("duplicate_keys", c.DuplicateKey)
	}
	ev.Msg("catalog loaded")

	s.pub.Publish(Event{Name: EventLoaded, Version: snap.Version(), Fields: map[string]any{
		"variants":   c.Variants,
		"components": c.Components,
		"path":       s.path,
	}})
	return snap
}

func (s *Store) failLocked(err error, start time.Time) error {
	s.lastErr = err.Error()
	loadsTotal.WithLabelValues("error").Inc()
	loadDuration.Observe(time.Since(start).Seconds())
	version := ""
	if cur := s.cur.Load(); cur != nil {
		version = cur.Version()
	}
	s.log.Error().Err(err).Str("path", s.path).Str("serving", version).Msg("catalog load failed")
	s.pub.Publish(Event{Name: EventLoadFailed, Version: version, Fields: map[string]any{"error": err.Error()}})
	return err
}
