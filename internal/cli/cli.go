// Package cli implements the circuitgen command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/circuitgen/pkg/buildinfo"
	"github.com/matzehuels/circuitgen/pkg/cache"
	"github.com/matzehuels/circuitgen/pkg/decoders"
	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "circuitgen"

	// envCache selects the cache backend: file (default), none, a
	// directory, or a redis:// or mongodb:// URL.
	envCache = "CIRCUITGEN_CACHE"

	// envAddr is the default listen address of the serve command.
	envAddr = "CIRCUITGEN_ADDR"

	// defaultAddr is used when neither --addr nor envAddr is set.
	defaultAddr = ":8080"
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
		Use:   appName,
		Short: "circuitgen lays out redstone instruction decoders as schematics",
		Long: `circuitgen routes the bits of compressed RISC-V instructions through
redstone wiring and writes each decoder as a Sponge schematic.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the backend named by CIRCUITGEN_CACHE.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	loc := os.Getenv(envCache)
	if loc == "" {
		loc = "file"
	}
	if err := errors.ValidateCacheURL(loc); err != nil {
		return nil, fmt.Errorf("%s: %w", envCache, err)
	}

	switch {
	case loc == "none":
		return cache.NewNullCache(), nil
	case loc == "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case strings.HasPrefix(loc, "redis://"), strings.HasPrefix(loc, "rediss://"):
		return cache.NewRedisCache(ctx, loc)
	case strings.HasPrefix(loc, "mongodb://"), strings.HasPrefix(loc, "mongodb+srv://"):
		return cache.NewMongoCache(ctx, loc, appName)
	}
	return cache.NewFileCache(loc)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/circuitgen/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// loadTable reads a decoder table file, or returns the built-in table
// when path is empty.
func loadTable(path string) (*decoders.Table, error) {
	if path == "" {
		return decoders.RVC(), nil
	}
	return decoders.Load(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSchem}
	}
	return strings.Split(s, ",")
}

// offsetValue is a pflag.Value for an "x,y,z" paste offset.
type offsetValue [3]int

func (o *offsetValue) String() string {
	return fmt.Sprintf("%d,%d,%d", o[0], o[1], o[2])
}

func (o *offsetValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var v offsetValue
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("offset component %q: %w", p, err)
		}
		v[i] = n
	}
	*o = v
	return nil
}

func (o *offsetValue) Type() string { return "x,y,z" }

var _ pflag.Value = (*offsetValue)(nil)

// addTableFlag registers the shared --table flag.
func addTableFlag(fs *pflag.FlagSet, path *string) {
	fs.StringVarP(path, "table", "T", "", "decoder table file (.toml, .yaml, .jsonc; default: built-in RVC table)")
}
