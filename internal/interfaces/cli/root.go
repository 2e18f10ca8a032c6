// Package cli implements the biaslens command line interface.  Analysis
// commands run the embedded engine locally by default and switch to a remote
// gateway when --server is given.
package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appanalysis "github.com/turtacn/BiasLens-Intelligence/internal/application/analysis"
	"github.com/turtacn/BiasLens-Intelligence/internal/config"
	"github.com/turtacn/BiasLens-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BiasLens-Intelligence/internal/lexicon"
	"github.com/turtacn/BiasLens-Intelligence/internal/morphology"
	"github.com/turtacn/BiasLens-Intelligence/pkg/client"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	ServerAddr   string
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "biaslens",
		Short: "BiasLens CLI for linguistic bias analysis",
		Long: "BiasLens detects linguistic bias indicators in text: emotionally charged\n" +
			"language, framing, surface emphasis cues, and manipulation lexicon terms,\n" +
			"across multiple languages with morphology-aware matching.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./biaslens.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "json", "output format (json, text)")
	pf.StringVar(&opts.ServerAddr, "server", "", "run against a gateway instead of the embedded engine")

	cmd.AddCommand(
		newAnalyseCmd(opts),
		newLexiconCmd(opts),
		newCategoriesCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// Execute runs the CLI, printing errors to stderr.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadCLIConfig loads configuration with priority: --config flag, search
// paths, then environment variables alone.
func loadCLIConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./biaslens.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".biaslens", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/biaslens/config.yaml")

	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// newCLILogger builds a console logger on stderr so command output on stdout
// stays machine-readable.
func newCLILogger(opts *RootOptions) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            opts.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// newLocalService builds the embedded analysis engine.
func newLocalService(cfg *config.Config, logger logging.Logger) appanalysis.Service {
	store := lexicon.NewDefaultStore(dirOverlay(cfg.Lexicon.DataDir), logger)
	backends := morphology.NewDefaultRegistry(dirOverlay(cfg.Morphology.DictionaryDir), logger)
	return appanalysis.NewService(store, backends, nil, nil, logger)
}

// newRemoteClient builds the SDK client for --server runs.
func newRemoteClient(opts *RootOptions) (*client.Client, error) {
	return client.NewClient(opts.ServerAddr)
}

// dirOverlay maps an optional directory path to an overlay filesystem.
func dirOverlay(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}
