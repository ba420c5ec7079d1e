package downloader

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/tracksim/internal/progress"
)

type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) Download(ctx context.Context, url, outputDir, name string) (string, error) {
	args := m.Called(ctx, url, outputDir, name)
	return args.String(0), args.Error(1)
}

func TestBatchRun(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	d := new(mockDownloader)
	d.On("Download", mock.Anything, "http://a/1", dir, "1").Return(filepath.Join(dir, "1.mp3"), nil)
	d.On("Download", mock.Anything, "http://a/2", dir, "2").Return("", boom)
	d.On("Download", mock.Anything, "http://a/3", dir, "3").Return(filepath.Join(dir, "3.mp3"), nil)

	sources := []Source{
		{ID: "1", URL: "http://a/1"},
		{ID: "2", URL: "http://a/2"},
		{ID: "3", URL: "http://a/3"},
	}
	bar := &progress.Counter{}

	results, err := (&Batch{Downloader: d, Workers: 2}).Run(context.Background(), sources, dir, bar)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, filepath.Join(dir, "1.mp3"), results[0].Path)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, filepath.Join(dir, "3.mp3"), results[2].Path)
	for i, r := range results {
		assert.Equal(t, sources[i], r.Source)
	}

	assert.Equal(t, []Result{results[1]}, Failed(results))
	assert.Equal(t, 3, bar.Count)
	assert.True(t, bar.Finished)
	d.AssertExpectations(t)
}

type countingDownloader struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
}

func (c *countingDownloader) Download(ctx context.Context, url, outputDir, name string) (string, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-c.release
	return filepath.Join(outputDir, name), nil
}

func TestBatchRespectsWorkerLimit(t *testing.T) {
	d := &countingDownloader{release: make(chan struct{})}
	sources := make([]Source, 10)
	for i := range sources {
		sources[i] = Source{ID: string(rune('a' + i)), URL: "http://x"}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := (&Batch{Downloader: d, Workers: 3}).Run(context.Background(), sources, t.TempDir(), progress.Nop{})
		assert.NoError(t, err)
	}()

	for range sources {
		d.release <- struct{}{}
	}
	<-done

	assert.LessOrEqual(t, d.peak.Load(), int32(3))
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := new(mockDownloader)
	d.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", context.Canceled).Maybe()

	results, err := (&Batch{Downloader: d, Workers: 1}).Run(ctx, []Source{{ID: "1", URL: "http://a"}}, t.TempDir(), progress.Nop{})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
