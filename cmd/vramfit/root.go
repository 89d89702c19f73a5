package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vramfit/internal/catalog"
	"vramfit/internal/config"
	"vramfit/internal/service"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath    string
	catalogPath   string
	logLevel      string
	logFormat     string
	deriveMissing bool
	jsonOut       bool
}

func newRootCmd() *cobra.Command {
	o := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "vramfit",
		Short:         "Rank local LLM variants by estimated VRAM fit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", os.Getenv("VRAMFIT_CONFIG"), "Config file (.yaml, .json, .toml); defaults to ./vramfit.yaml or ~/.config/vramfit/config.yaml")
	pf.StringVar(&o.catalogPath, "catalog", os.Getenv("VRAMFIT_CATALOG"), "Catalog document (.json, .yaml)")
	pf.StringVar(&o.logLevel, "log-level", envOr("VRAMFIT_LOG_LEVEL", ""), "Log level: off, error, warn, info, debug")
	pf.StringVar(&o.logFormat, "log-format", "", "Log format: console or json")
	pf.BoolVar(&o.deriveMissing, "derive-missing", false, "Estimate components for variants the catalog lacks them for")
	pf.BoolVar(&o.jsonOut, "json", false, "Print JSON instead of tables")

	cmd.AddCommand(
		serveCmd(o),
		queryCmd(o),
		detailCmd(o),
		profilesCmd(o),
		estimateCmd(o),
	)
	return cmd
}

// loadConfig reads the config file, if any, and applies explicitly set
// persistent flags on top. Defaults are not filled in yet so subcommands can
// apply their own flags first.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	path := o.configPath
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("catalog") || cfg.CatalogPath == "" {
		cfg.CatalogPath = o.catalogPath
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("derive-missing") {
		cfg.DeriveMissingComponents = o.deriveMissing
	}
	return cfg, cfg.Validate()
}

// openService loads the catalog once and wraps it in a service.
func openService(cfg config.Config, log zerolog.Logger) (*service.Service, *catalog.Store, error) {
	store := catalog.NewStore(catalog.StoreOptions{
		Path:                    cfg.CatalogPath,
		DeriveMissingComponents: cfg.DeriveMissingComponents,
		Logger:                  &log,
		Publisher:               catalog.NewLogPublisher(log),
	})
	if _, err := store.Load(); err != nil {
		return nil, nil, err
	}
	w := cfg.Ranking.Weights()
	svc := service.New(service.Options{
		Store:    store,
		Weights:  &w,
		Defaults: serviceDefaults(cfg),
		Logger:   &log,
	})
	return svc, store, nil
}

func serviceDefaults(cfg config.Config) service.Defaults {
	d := service.Defaults{
		BudgetGiB:     cfg.Defaults.BudgetGiB,
		ContextLength: cfg.Defaults.ContextLength,
		KVMode:        cfg.Defaults.KVMode,
		PreferQuality: true,
		Profile:       cfg.Defaults.Profile,
		Limit:         cfg.Defaults.Limit,
	}
	if cfg.Defaults.PreferQuality != nil {
		d.PreferQuality = *cfg.Defaults.PreferQuality
	}
	return d
}

func newLogger(level, format string, w io.Writer) zerolog.Logger {
	var l zerolog.Logger
	if format == "json" {
		l = zerolog.New(w)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	}
	l = l.With().Timestamp().Logger()
	switch strings.ToLower(level) {
	case "off":
		return l.Level(zerolog.Disabled)
	case "":
		return l.Level(zerolog.InfoLevel)
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return l.Level(lvl)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
