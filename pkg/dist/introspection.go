package dist

import (
	"github.com/aretw0/introspection"
)

// ScannerState exposes internal state for observability.
type ScannerState struct {
	Root          string   `json:"root"`
	Patterns      []string `json:"patterns"`
	Concurrency   int      `json:"concurrency"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Scanner) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ScannerState{
		Root:          s.root,
		Patterns:      append([]string(nil), s.patterns...),
		Concurrency:   s.limit,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Scanner) ComponentType() string {
	return "scanner"
}

var _ introspection.Introspectable = (*Scanner)(nil)
var _ introspection.Component = (*Scanner)(nil)

func (s *Scanner) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
