// Package cli implements the rackwatch command-line interface.
//
// The commands drive the coverage pipeline: place racks, solve the minimum
// guard set over refined grids and write the per-round artifacts. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - run: layout plus solved refinement rounds
//   - layout: place racks and write the scene snapshot
//   - solve: run rounds on a stored scene snapshot
//   - history: list recorded runs and their rounds
//   - cache: manage the solve cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rackwatch/pkg/buildinfo"
	"github.com/matzehuels/rackwatch/pkg/cache"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
	"github.com/matzehuels/rackwatch/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rackwatch"

	// defaultOutDir receives per-round artifacts.
	defaultOutDir = "images"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Rackwatch places cameras that keep every rack in view",
		Long:         `Rackwatch lays out rows of racks in a room and finds a minimum set of guard positions that together see every rack, refining the candidate grid round by round.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendFlags select the cache and history backends of a runner.
type backendFlags struct {
	noCache  bool
	redisURL string
	db       string
}

func (b *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&b.noCache, "no-cache", false, "disable the solve cache")
	cmd.Flags().StringVar(&b.redisURL, "redis-url", "", "share solves through redis (redis://host:port/db)")
	cmd.Flags().StringVar(&b.db, "db", "", "record runs in this sqlite database")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, b backendFlags) (*pipeline.Runner, error) {
	solves, err := c.newCache(ctx, b)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if b.redisURL != "" {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	runner := pipeline.NewRunner(solves, keyer, c.Logger)
	if b.db != "" {
		history, err := store.Open(b.db)
		if err != nil {
			runner.Close()
			return nil, err
		}
		runner.History = history
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, b backendFlags) (cache.Cache, error) {
	switch {
	case b.noCache:
		return cache.NewNullCache(), nil
	case b.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, b.redisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rackwatch/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	formats := strings.Split(s, ",")
	for i := range formats {
		formats[i] = strings.TrimSpace(formats[i])
	}
	return formats
}
