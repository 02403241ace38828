// Package platform models the compatibility-tag contract between posy
// and the host-platform detectors: an ordered list of tag strings, most
// preferred first. The detectors themselves (glibc probing, CPU feature
// checks) live outside this module; anything that can produce a tag
// list can plug in as a Provider.
package platform

import (
	"context"
	"log/slog"
)

// Tags is an ordered list of platform compatibility tags, most
// preferred first (so e.g. 64-bit tags usually come before 32-bit ones).
type Tags []string

// Preference returns the rank of tag in the list; 0 is most preferred.
func (t Tags) Preference(tag string) (rank int, ok bool) {
	for i, candidate := range t {
		if candidate == tag {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether tag is in the list.
func (t Tags) Contains(tag string) bool {
	_, ok := t.Preference(tag)
	return ok
}

// Provider is one detection strategy for platform compatibility tags.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Tags returns this provider's tags, most preferred first.
	Tags(ctx context.Context) ([]string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Func         func(ctx context.Context) ([]string, error)
}

func (p ProviderFunc) Name() string { return p.ProviderName }

func (p ProviderFunc) Tags(ctx context.Context) ([]string, error) {
	return p.Func(ctx)
}

// Detect runs each provider in order and concatenates their tags,
// dropping duplicates while keeping the first (most preferred)
// occurrence. Detection is tolerant: a failing provider is logged and
// its tags are omitted, but Detect itself never fails. A nil logger
// falls back to slog.Default.
func Detect(ctx context.Context, logger *slog.Logger, providers ...Provider) Tags {
	if logger == nil {
		logger = slog.Default()
	}

	var tags Tags
	seen := make(map[string]struct{})
	for _, p := range providers {
		got, err := p.Tags(ctx)
		if err != nil {
			logger.Warn("platform tag detection failed, omitting provider",
				"provider", p.Name(), "error", err)
			continue
		}
		for _, tag := range got {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
