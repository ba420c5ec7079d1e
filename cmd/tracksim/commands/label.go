package commands

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/config"
	"github.com/jaki95/tracksim/internal/labelling"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/pairmatch"
)

var labelFlags struct {
	seed    uint64
	matches string
}

var labelCmd = &cobra.Command{
	Use:   "label [tracks dir]",
	Short: "Label pairs of tracks as match or no match",
	Long: `Walks every unlabelled pair of tracks in the folder in a seeded random order.
Answer each pair with:

  y  match
  n  no match
  s  skip for now
  w  write the match table
  q  write and quit

The table is also written when every pair has been answered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().Uint64Var(&labelFlags.seed, "seed", 0, "shuffle seed (default from config)")
	labelCmd.Flags().StringVar(&labelFlags.matches, "matches", "", "match table file (default from config)")

	rootCmd.AddCommand(labelCmd)
}

// matchesConfig returns the labelling config with a --matches override applied.
func matchesConfig(matches string) config.LabellingConfig {
	cfg := GetConfig().Labelling
	if matches != "" {
		cfg.MatchesFile = matches
	}
	return cfg
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg := matchesConfig(labelFlags.matches)
	if cmd.Flags().Changed("seed") {
		seed := labelFlags.seed
		cfg.Seed = &seed
	}
	dir := cfg.TracksDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no tracks folder given and labelling.tracks_dir is not set")
	}

	candidates, err := listTracks(dir)
	if err != nil {
		return err
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := pairmatch.Open(cfg, store)
	if err != nil {
		return err
	}
	defer repo.Close()

	matrix, err := repo.Load(cmd.Context())
	if err != nil {
		return err
	}

	session := labelling.NewSession(candidates, matrix, *cfg.Seed)
	logging.Info().
		Int("tracks", len(candidates)).
		Int("labelled", matrix.Len()).
		Int("remaining", session.Remaining()).
		Msg("Starting labelling session")

	save := func() error {
		if err := repo.Save(cmd.Context(), matrix); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Help.Render(fmt.Sprintf("saved %d labels to %s", matrix.Len(), cfg.MatchesFile)))
		return nil
	}

	return labelLoop(cmd.InOrStdin(), cmd.OutOrStdout(), dir, session, save)
}

// labelLoop reads one answer per line until the queue is empty, q, or EOF.
// Pairs are keyed by file name and shown resolved against dir.
func labelLoop(in io.Reader, out io.Writer, dir string, session *labelling.Session, save func() error) error {
	scanner := bufio.NewScanner(in)

	for {
		left, right, ok := session.Next()
		if !ok {
			fmt.Fprintln(out, styles.Title.Render("No more pairs to label."))
			return save()
		}

		fmt.Fprintln(out, renderPair(filepath.Join(dir, left), filepath.Join(dir, right), session.Remaining()))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return save()
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			session.Answer(left, right, true)
			fmt.Fprintln(out, matchLabel(true))
		case "n", "no":
			session.Answer(left, right, false)
			fmt.Fprintln(out, matchLabel(false))
		case "s", "skip":
			session.Skip()
		case "w", "save":
			if err := save(); err != nil {
				return err
			}
		case "q", "quit":
			return save()
		default:
			fmt.Fprintln(out, styles.Help.Render("answer y, n, s, w or q"))
		}
	}
}

func renderPair(left, right string, remaining int) string {
	body := strings.Join([]string{
		styles.Label.Render("left"),
		styles.Track.Render(left),
		styles.Label.Render("right"),
		styles.Track.Render(right),
	}, "\n")

	return styles.Box.Render(body) + "\n" +
		styles.Help.Render(fmt.Sprintf("%d pairs left  y match  n no match  s skip  w save  q quit", remaining)) + "\n" +
		styles.Title.Render("Is it a good match? ")
}
