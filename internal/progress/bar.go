// Package progress renders terminal progress bars for batch commands.
package progress

import (
	"sync"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// Bar tracks completion of a fixed number of steps.
type Bar interface {
	Add(n int) error
	Finish() error
}

// NewConsole returns a bar drawn on stdout. step is shown as "[step]".
func NewConsole(total int, step, description string) Bar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]["+step+"][reset] "+description),
	)
}

// Nop is a Bar that draws nothing.
type Nop struct{}

func (Nop) Add(int) error { return nil }
func (Nop) Finish() error { return nil }

// Counter is a Bar that only counts, for tests. It is safe for concurrent use.
type Counter struct {
	mu       sync.Mutex
	Count    int
	Finished bool
}

func (c *Counter) Add(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Count += n
	return nil
}

func (c *Counter) Finish() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Finished = true
	return nil
}
