package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/downloader"
	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/progress"
	"github.com/jaki95/tracksim/internal/storage"
)

var downloadFlags struct {
	dir     string
	workers int
}

var downloadCmd = &cobra.Command{
	Use:   "download <sources.csv>",
	Short: "Download the tracks listed in an id,url table",
	Long: `Downloads every source of the table into <dir>/<id>.<ext>. Rows repeating an
earlier id are ignored. A failed download is reported and the rest continue.
With GCS storage the downloaded files are uploaded under tracks/.

Examples:
  tracksim download tracks_sample.csv --dir ./tracks --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadFlags.dir, "dir", "", "download folder (default <output_dir>/tracks)")
	downloadCmd.Flags().IntVar(&downloadFlags.workers, "workers", 0, "parallel downloads (default from config)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dir := downloadFlags.dir
	if dir == "" {
		dir = filepath.Join(cfg.Storage.OutputDir, "tracks")
	}
	workers := cfg.Download.Workers
	if downloadFlags.workers > 0 {
		workers = downloadFlags.workers
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.GetReader(args[0])
	if err != nil {
		return err
	}
	sources, err := downloader.ReadSources(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	batch := &downloader.Batch{
		Downloader: downloader.NewHTTPDownloader(cfg.Download.Timeout),
		Workers:    workers,
	}
	bar := progress.NewConsole(len(sources), "1/1", "Downloading tracks...")

	results, err := batch.Run(cmd.Context(), sources, dir, bar)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if uploader, ok := store.(storage.Uploader); ok {
		for _, res := range results {
			if res.Err != nil {
				continue
			}
			object, err := uploader.UploadFile(res.Path, "tracks/"+filepath.Base(res.Path))
			if err != nil {
				return err
			}
			logging.Info().Str("id", res.Source.ID).Str("object", object).Msg("Uploaded track")
		}
	}

	failed := downloader.Failed(results)
	for _, res := range failed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", styles.No.Render("failed"), res.Source.ID, res.Err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d downloads failed", len(failed), len(results))
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.Title.Render(fmt.Sprintf("Downloaded %d tracks to %s", len(results), dir)))
	return nil
}
