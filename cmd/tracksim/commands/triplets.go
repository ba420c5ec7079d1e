package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/config"
	"github.com/jaki95/tracksim/internal/annotation"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/progress"
	"github.com/jaki95/tracksim/internal/triplet"
)

var tripletsFlags struct {
	perAnchor int
	allowSame bool
	seed      uint64
	output    string
	pairs     string
}

var tripletsCmd = &cobra.Command{
	Use:   "triplets <tracks dir>",
	Short: "Sample training triplets from the class comments of a track folder",
	Long: `Reads the class comment of every track in the folder, scores every pair of
annotated tracks, and samples per anchor a positive among the best scores and
a negative among the worst ones.

Examples:
  tracksim triplets ./tracks -n 3 --seed 42 -o triplets.csv
  tracksim triplets ./tracks --pairs pairs.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runTriplets,
}

func init() {
	bindTripletsFlags(tripletsCmd)
	rootCmd.AddCommand(tripletsCmd)
}

func bindTripletsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&tripletsFlags.perAnchor, "per-anchor", "n", 0, "triplets per anchor and distinct score values per pool (default from config)")
	f.BoolVar(&tripletsFlags.allowSame, "allow-same", false, "allow a track to pair with itself (default from config)")
	f.Uint64Var(&tripletsFlags.seed, "seed", 0, "random seed (default from config, or random)")
	f.StringVarP(&tripletsFlags.output, "output", "o", "-", "triplets CSV, - for stdout")
	f.StringVar(&tripletsFlags.pairs, "pairs", "", "also write similar/dissimilar training pairs to this CSV")
}

// tripletOptions starts from cfg and applies only the flags set on cmd.
func tripletOptions(cmd *cobra.Command, cfg config.TripletsConfig) triplet.Options {
	opts := triplet.Options{
		PerAnchor: cfg.PerAnchor,
		AllowSame: cfg.AllowSame,
		Seed:      cfg.Seed,
	}
	if cmd.Flags().Changed("per-anchor") {
		opts.PerAnchor = tripletsFlags.perAnchor
	}
	if cmd.Flags().Changed("allow-same") {
		opts.AllowSame = tripletsFlags.allowSame
	}
	if cmd.Flags().Changed("seed") {
		seed := tripletsFlags.seed
		opts.Seed = &seed
	}
	return opts
}

func runTriplets(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	dir := args[0]

	opts := tripletOptions(cmd, cfg.Triplets)

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	var bar progress.Bar = progress.Nop{}
	if !isStdout(tripletsFlags.output) {
		if n, err := triplet.CountFiles(dir); err == nil {
			bar = progress.NewConsole(n, "1/1", "Reading tags...")
		}
	}

	tracks, err := triplet.Scan(cmd.Context(), dir, annotation.NewFileReader(), bar)
	if err != nil {
		return err
	}

	triplets := triplet.NewSampler(opts).Generate(tracks)
	logging.Info().
		Int("tracks", len(tracks)).
		Int("triplets", len(triplets)).
		Int("per_anchor", opts.PerAnchor).
		Msg("Generated triplets")

	if err := writeTo(cmd, store, tripletsFlags.output, func(w io.Writer) error {
		return triplet.WriteTriplets(w, triplets)
	}); err != nil {
		return err
	}

	if tripletsFlags.pairs != "" {
		pairs := triplet.TrainingPairs(triplets)
		if err := writeTo(cmd, store, tripletsFlags.pairs, func(w io.Writer) error {
			return triplet.WriteTrainingPairs(w, pairs)
		}); err != nil {
			return err
		}
	}

	return nil
}
