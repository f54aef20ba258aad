package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/dirtree/internal/app"
	"github.com/atomicstack/dirtree/internal/render"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envRoot        = "DIRTREE_ROOT"
	envWidth       = "DIRTREE_WIDTH"
	envHeight      = "DIRTREE_HEIGHT"
	envShowFooter  = "DIRTREE_FOOTER"
	envMaxSiblings = "DIRTREE_MAX_SIBLINGS"
	envTick        = "DIRTREE_TICK"
	envTrace       = "DIRTREE_TRACE"
	envLogFile     = "DIRTREE_LOG_FILE"

	defaultRoot = "."
	defaultTick = 100 * time.Millisecond
)

// LoadArgs parses command-line arguments with the environment as fallback.
// The single optional positional argument is the root directory.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("dirtree", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "show the key help footer")
	maxSiblings := fs.Int("max-siblings", envOrInt(env, envMaxSiblings, render.DefaultMaxSiblings), "children shown per directory before windowing")
	tick := fs.Duration("tick", envOrDuration(env, envTick, defaultTick), "interval of the status message timer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	root := envOrDefault(env, envRoot, defaultRoot)
	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		root = rest[0]
	default:
		return Config{}, fmt.Errorf("expected at most one root path (got %d)", len(rest))
	}

	cfg := Config{
		App: app.Config{
			Root:        root,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			MaxSiblings: *maxSiblings,
			Tick:        *tick,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"root":        root,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"maxSiblings": strconv.Itoa(*maxSiblings),
			"tick":        tick.String(),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks values that flag parsing alone cannot reject.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Root) == "" {
		return fmt.Errorf("root path must not be empty")
	}
	if cfg.App.MaxSiblings < 1 {
		return fmt.Errorf("max-siblings must be >= 1 (got %d)", cfg.App.MaxSiblings)
	}
	if cfg.App.Tick <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", cfg.App.Tick)
	}
	return nil
}
