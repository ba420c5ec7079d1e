package commands

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/export"
	"github.com/jaki95/tracksim/internal/pairmatch"
)

var exportFlags struct {
	matches string
	tracks  string
	output  string
}

var exportCmd = &cobra.Command{
	Use:   "export <dest dir>",
	Short: "Copy labelled tracks into a folder next to a relative match table",
	Long: `Copies every track referenced by the match table into the destination folder
and writes the table again with paths relative to the folder's parent, so the
parent can be moved or shared as one dataset. Tracks stored by bare file name,
as the label command writes them, are read from --tracks.

Examples:
  tracksim export ./dataset/tracks --tracks ~/Music/library
  # writes ./dataset/tracks/*.mp3 and ./dataset/matches.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.matches, "matches", "", "match table to export (default from config)")
	exportCmd.Flags().StringVar(&exportFlags.tracks, "tracks", "", "folder holding tracks stored by file name (default labelling.tracks_dir)")
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "relative match table (default <dest parent>/matches.csv)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dest := args[0]
	output := exportFlags.output
	if output == "" {
		output = filepath.Join(filepath.Dir(filepath.Clean(dest)), "matches.csv")
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := pairmatch.Open(matchesConfig(exportFlags.matches), store)
	if err != nil {
		return err
	}
	defer repo.Close()

	m, err := repo.Load(cmd.Context())
	if err != nil {
		return err
	}

	tracksDir := exportFlags.tracks
	if tracksDir == "" {
		tracksDir = GetConfig().Labelling.TracksDir
	}

	relative, err := export.Labelled(cmd.Context(), store, resolveTracks(m.Entries(), tracksDir), dest)
	if err != nil {
		return err
	}

	return writeTo(cmd, store, output, func(w io.Writer) error {
		return pairmatch.WritePairs(w, relative)
	})
}

// resolveTracks joins bare file names onto dir. Entries that already carry a
// folder are left alone.
func resolveTracks(pairs []domain.MatchPair, dir string) []domain.MatchPair {
	if dir == "" {
		return pairs
	}
	resolve := func(name string) string {
		if filepath.Base(name) != name {
			return name
		}
		return filepath.Join(dir, name)
	}
	out := make([]domain.MatchPair, len(pairs))
	for i, p := range pairs {
		out[i] = domain.MatchPair{Left: resolve(p.Left), Right: resolve(p.Right), Match: p.Match}
	}
	return out
}
