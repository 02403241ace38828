// Package dist finds and parses the metadata files a Python
// installation scatters across a tree: *.dist-info/METADATA and WHEEL
// for wheels, *.egg-info/PKG-INFO for sdists and legacy installs.
package dist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/rockstar/posy/pkg/metadata"
)

// DefaultPatterns matches the places package metadata normally lives.
// Patterns are doublestar globs, relative to the scan root, with '/'
// separators.
var DefaultPatterns = []string{
	"**/*.dist-info/METADATA",
	"**/*.dist-info/WHEEL",
	"**/*.egg-info/PKG-INFO",
	"PKG-INFO",
}

// Report is the outcome for one metadata file. Exactly one of Doc and
// Err is set: a file either parses completely or is rejected, there is
// no partial extraction.
type Report struct {
	// Path is relative to the scan root, with '/' separators.
	Path string
	Doc  *metadata.Document
	Err  error
}

// Scanner locates metadata files under a root directory and parses
// them. A broken file is reported and logged, never fatal: one corrupt
// package must not hide the rest of the tree.
type Scanner struct {
	root     string
	patterns []string
	logger   *slog.Logger
	limit    int

	mu            sync.RWMutex
	watcherActive bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithPatterns replaces the default glob patterns.
func WithPatterns(patterns ...string) Option {
	return func(s *Scanner) {
		if len(patterns) > 0 {
			s.patterns = patterns
		}
	}
}

// WithLogger sets the logger for the scanner.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds how many files are parsed at once.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScanner creates a Scanner rooted at root.
func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:     root,
		patterns: DefaultPatterns,
		logger:   slog.Default(),
		limit:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan globs for metadata files under the root and parses them
// concurrently. Reports come back sorted by path. Scan fails only on a
// bad pattern or a cancelled context; per-file problems land in the
// individual Report.
func (s *Scanner) Scan(ctx context.Context) ([]Report, error) {
	fsys := os.DirFS(s.root)

	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range s.patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad scan pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)

	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.parseFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// matches reports whether rel (slash-separated, relative to the root)
// matches any of the scanner's patterns.
func (s *Scanner) matches(rel string) bool {
	for _, pattern := range s.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// parseFile reads and parses one metadata file, identified by its
// slash-separated path relative to the root.
func (s *Scanner) parseFile(rel string) Report {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	data, err := os.ReadFile(full)
	if err != nil {
		s.logger.Warn("unreadable metadata file", "path", rel, "error", err)
		return Report{Path: rel, Err: fmt.Errorf("read metadata file: %w", err)}
	}
	doc, err := metadata.Parse(string(data))
	if err != nil {
		s.logger.Warn("broken metadata file", "path", rel, "error", err)
		return Report{Path: rel, Err: err}
	}
	return Report{Path: rel, Doc: doc}
}
