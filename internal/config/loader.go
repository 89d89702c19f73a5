package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"vramfit/internal/common/fsutil"
	"vramfit/internal/rank"
)

// Defaults applied by WithDefaults.
const (
	DefaultAddr          = ":8080"
	DefaultBudgetGiB     = 24.0
	DefaultContextLength = 16384
	DefaultKVMode        = "fp16"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMaxBodyBytes  = 1 << 20
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr                    string        `json:"addr" yaml:"addr" toml:"addr"`
	CatalogPath             string        `json:"catalog_path" yaml:"catalog_path" toml:"catalog_path"`
	WatchCatalog            bool          `json:"watch_catalog" yaml:"watch_catalog" toml:"watch_catalog"`
	DeriveMissingComponents bool          `json:"derive_missing_components" yaml:"derive_missing_components" toml:"derive_missing_components"`
	Defaults                QueryDefaults `json:"defaults" yaml:"defaults" toml:"defaults"`
	Ranking                 RankingConfig `json:"ranking" yaml:"ranking" toml:"ranking"`
	LogLevel                string        `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=off error warn info debug"`
	LogFormat               string        `json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=console json"`
	MaxBodyBytes            int64         `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=0"`
	CORS                    CORSConfig    `json:"cors" yaml:"cors" toml:"cors"`
}

// QueryDefaults fill query parameters the caller leaves out.
type QueryDefaults struct {
	BudgetGiB     float64 `json:"budget_gib" yaml:"budget_gib" toml:"budget_gib" validate:"gte=0"`
	ContextLength int     `json:"context_length" yaml:"context_length" toml:"context_length" validate:"gte=0"`
	KVMode        string  `json:"kv_mode" yaml:"kv_mode" toml:"kv_mode"`
	PreferQuality *bool   `json:"prefer_quality" yaml:"prefer_quality" toml:"prefer_quality"`
	// Profile, when set, supplies the budget instead of BudgetGiB.
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Limit   int    `json:"limit" yaml:"limit" toml:"limit" validate:"gte=0"`
}

// RankingConfig overrides individual ranking weights. Nil keeps the default.
type RankingConfig struct {
	FitsConservative *float64 `json:"fits_conservative" yaml:"fits_conservative" toml:"fits_conservative"`
	FitsOptimistic   *float64 `json:"fits_optimistic" yaml:"fits_optimistic" toml:"fits_optimistic"`
	NoFit            *float64 `json:"no_fit" yaml:"no_fit" toml:"no_fit"`
	Unknown          *float64 `json:"unknown" yaml:"unknown" toml:"unknown"`
	Confidence       *float64 `json:"confidence" yaml:"confidence" toml:"confidence"`
	Quality          *float64 `json:"quality" yaml:"quality" toml:"quality"`
	Speed            *float64 `json:"speed" yaml:"speed" toml:"speed"`
	VoteFloor        *float64 `json:"vote_floor" yaml:"vote_floor" toml:"vote_floor"`
	VoteCap          *float64 `json:"vote_cap" yaml:"vote_cap" toml:"vote_cap"`
	MinTPSPenalty    *float64 `json:"min_tps_penalty" yaml:"min_tps_penalty" toml:"min_tps_penalty"`
	MaxTTFTPenalty   *float64 `json:"max_ttft_penalty" yaml:"max_ttft_penalty" toml:"max_ttft_penalty"`
}

// CORSConfig enables the CORS middleware of the HTTP API.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

var validate = validator.New()

// SearchPaths are tried in order by Discover.
var SearchPaths = []string{"vramfit.yaml", "~/.config/vramfit/config.yaml"}

// Discover returns the first existing config file in SearchPaths, or "".
func Discover() string {
	for _, p := range SearchPaths {
		full, err := fsutil.ExpandHome(p)
		if err != nil {
			continue
		}
		if fsutil.PathExists(full) {
			return full
		}
	}
	return ""
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// WithDefaults returns a copy with unspecified values filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Defaults.BudgetGiB == 0 && c.Defaults.Profile == "" {
		c.Defaults.BudgetGiB = DefaultBudgetGiB
	}
	if c.Defaults.ContextLength == 0 {
		c.Defaults.ContextLength = DefaultContextLength
	}
	if c.Defaults.KVMode == "" {
		c.Defaults.KVMode = DefaultKVMode
	}
	if c.Defaults.PreferQuality == nil {
		t := true
		c.Defaults.PreferQuality = &t
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Weights applies the overrides to the default ranking weights.
func (r RankingConfig) Weights() rank.Weights {
	w := rank.DefaultWeights()
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&w.FitsConservative, r.FitsConservative)
	set(&w.FitsOptimistic, r.FitsOptimistic)
	set(&w.NoFit, r.NoFit)
	set(&w.Unknown, r.Unknown)
	set(&w.Confidence, r.Confidence)
	set(&w.Quality, r.Quality)
	set(&w.Speed, r.Speed)
	set(&w.VoteFloor, r.VoteFloor)
	set(&w.VoteCap, r.VoteCap)
	set(&w.MinTPSPenalty, r.MinTPSPenalty)
	set(&w.MaxTTFTPenalty, r.MaxTTFTPenalty)
	return w
}
