// Package usage finds translation keys referenced from source files by
// textual pattern matching. It does not parse the sources: keys built at
// runtime (for example t(`menu.${name}`) or t(prefix + key)) are not
// resolved and must be protected with a keep-list if they should survive a
// cleanup.
package usage

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 10

// ScanContent returns the normalized keys found in one file's content by the
// default recognizers.
func ScanContent(content string) KeySet {
	return scanWith(DefaultRecognizers, content)
}

func scanWith(recognizers []Recognizer, content string) KeySet {
	keys := make(KeySet)
	for _, r := range recognizers {
		for _, raw := range r.Find(content) {
			keys.Add(Normalize(raw))
		}
	}
	return keys
}

// Scanner reads source files and collects the keys they use.
type Scanner struct {
	fs          afero.Fs
	workers     int
	recognizers []Recognizer
}

// NewScanner creates a scanner reading from fs with the default recognizers.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{
		fs:          fs,
		workers:     defaultWorkers,
		recognizers: DefaultRecognizers,
	}
}

// SetWorkers bounds the number of files read concurrently. Values below 1
// select the default.
func (s *Scanner) SetWorkers(n int) {
	if n < 1 {
		n = defaultWorkers
	}
	s.workers = n
}

// ScanFiles scans every path and returns the union of the keys found. The
// first read error aborts the scan.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) (KeySet, error) {
	used := make(KeySet)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := afero.ReadFile(s.fs, path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			keys := scanWith(s.recognizers, string(content))

			mu.Lock()
			used.Merge(keys)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return used, nil
}
