package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/config"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/storage"
)

var (
	// Global flags
	configPath string
	logLevel   string
	verbose    bool

	// Loaded before every command runs
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tracksim",
	Short: "Build track similarity datasets from a tagged music library",
	Long: `tracksim - tools for turning a tagged music library into similarity datasets.

Tracks carry a class comment such as "2,e;d": an energy digit followed by
genre letters from the alphabet h o d a t g e b f i r.

Examples:
  # Sample three triplets per anchor from a folder of tagged tracks
  tracksim triplets ~/Music/library -n 3 -o triplets.csv --pairs pairs.csv

  # Nearest neighbours of a track in a feature table
  tracksim rank track_features.csv --id "[hd] Artist - Title.mp3" -k 5

  # Label pairs of tracks as match / no match
  tracksim label ./tracks --matches matches.csv`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output, same as --log-level debug")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})

	globalConfig = cfg
	return nil
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	if globalConfig == nil {
		return config.Default()
	}
	return globalConfig
}

func openStorage(ctx context.Context) (storage.Storage, error) {
	return storage.New(ctx, GetConfig().Storage)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// createOutput opens path through store, or the command's stdout for "" and "-".
func createOutput(cmd *cobra.Command, store storage.Storage, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return store.GetWriter(path)
}

func writeTo(cmd *cobra.Command, store storage.Storage, path string, write func(io.Writer) error) error {
	w, err := createOutput(cmd, store, path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Close()
}

func isStdout(path string) bool {
	return path == "" || path == "-"
}

// listTracks returns the bare file names of the tracks in dir. Match tables key
// pairs by file name, so the same folder matches however it is spelled.
func listTracks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks folder: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
