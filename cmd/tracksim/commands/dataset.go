package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/features"
	"github.com/jaki95/tracksim/internal/logging"
)

var datasetFlags struct {
	sample int
	seed   uint64
	output string
}

var datasetCmd = &cobra.Command{
	Use:   "dataset <tracks dir>",
	Short: "Write the id and class flags of every track in a folder",
	Long: `Writes the first columns of a feature table: the track id and one class flag
per genre, read from file names like "[hd] Artist - Title.mp3". Feature
columns are left for an extraction step to append.

Examples:
  tracksim dataset ./music/h --sample 200 --seed 42 -o track_classes.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runDataset,
}

func init() {
	f := datasetCmd.Flags()
	f.IntVar(&datasetFlags.sample, "sample", -1, "random sample size, negative for every track")
	f.Uint64Var(&datasetFlags.seed, "seed", 42, "sample seed")
	f.StringVarP(&datasetFlags.output, "output", "o", "-", "output CSV, - for stdout")

	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.ListFiles(args[0], "")
	if err != nil {
		return err
	}
	if datasetFlags.sample >= 0 {
		names = features.SampleFiles(names, datasetFlags.sample, datasetFlags.seed)
	}

	table := &features.Table{Rows: features.ClassRows(names)}
	logging.Info().Int("tracks", len(table.Rows)).Str("dir", args[0]).Msg("Built class table")

	return writeTo(cmd, store, datasetFlags.output, func(w io.Writer) error {
		return table.Write(w)
	})
}
