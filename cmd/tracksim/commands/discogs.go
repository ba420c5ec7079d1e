package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/discogs"
	"github.com/jaki95/tracksim/internal/storage"
)

var discogsFlags struct {
	database string
	limit    int
}

var discogsCmd = &cobra.Command{
	Use:   "discogs",
	Short: "Import or explore a Discogs releases dump",
	Long: `Works on the monthly Discogs releases dump, plain or gzip compressed.

Examples:
  tracksim discogs explore discogs_20240101_releases.xml.gz --limit 60
  tracksim discogs import discogs_20240101_releases.xml.gz --db discogs.db`,
}

var discogsImportCmd = &cobra.Command{
	Use:   "import <releases.xml[.gz]>",
	Short: "Stream releases and their tracklists into SQLite",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscogsImport,
}

var discogsExploreCmd = &cobra.Command{
	Use:   "explore <releases.xml[.gz]>",
	Short: "Print the first elements of the dump, indented",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscogsExplore,
}

func init() {
	discogsImportCmd.Flags().StringVar(&discogsFlags.database, "db", "", "SQLite database (default from config)")
	discogsExploreCmd.Flags().IntVar(&discogsFlags.limit, "limit", 100, "number of start and end elements to print")
	discogsCmd.AddCommand(discogsImportCmd, discogsExploreCmd)

	rootCmd.AddCommand(discogsCmd)
}

// openDump opens path through store, decompressing .gz files.
func openDump(store storage.Storage, path string) (io.ReadCloser, error) {
	f, err := store.GetReader(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, f}, nil
}

func runDiscogsImport(cmd *cobra.Command, args []string) error {
	database := GetConfig().Discogs.Database
	if discogsFlags.database != "" {
		database = discogsFlags.database
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := openDump(store, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	db, err := discogs.NewSQLiteStore(database)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := discogs.Parse(cmd.Context(), r, func(rel *discogs.Release) error {
		return db.Insert(cmd.Context(), rel)
	})
	if err != nil {
		return fmt.Errorf("import stopped after %d releases: %w", n, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.Title.Render(fmt.Sprintf("Imported %d releases into %s", n, database)))
	return nil
}

func runDiscogsExplore(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := openDump(store, args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	return discogs.Explore(r, cmd.OutOrStdout(), discogsFlags.limit)
}
