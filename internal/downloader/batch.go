package downloader

import (
	"context"
	"sync"

	"github.com/jaki95/tracksim/internal/logging"
	"github.com/jaki95/tracksim/internal/progress"
)

// Result is the outcome of one source. Err is nil on success.
type Result struct {
	Source Source
	Path   string
	Err    error
}

// Batch downloads sources with at most Workers in flight.
type Batch struct {
	Downloader Downloader
	Workers    int
}

// Run downloads every source into dir. A failed source is logged and does
// not stop the others. Results are in source order; the error is non-nil
// only when ctx ends first.
func (b *Batch) Run(ctx context.Context, sources []Source, dir string, bar progress.Bar) ([]Result, error) {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(sources))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i, src := range sources {
		results[i].Source = src

		wg.Add(1)
		go func(i int, src Source) {
			defer func() {
				_ = bar.Add(1)
				wg.Done()
			}()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			defer func() { <-semaphore }()

			path, err := b.Downloader.Download(ctx, src.URL, dir, src.ID)
			if err != nil {
				logging.Warn().Err(err).Str("id", src.ID).Str("url", src.URL).Msg("Download failed")
				results[i].Err = err
				return
			}
			logging.Info().Str("id", src.ID).Str("path", path).Msg("Downloaded track")
			results[i].Path = path
		}(i, src)
	}

	wg.Wait()
	_ = bar.Finish()

	return results, ctx.Err()
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
