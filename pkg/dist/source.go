package dist

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"
)

// String renders a report the way the CLI prints one, and makes Report
// usable as a lifecycle.Event.
func (r Report) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error  %s: %v", r.Path, r.Err)
	}
	line := "ok     " + r.Path
	if r.Doc != nil {
		if name, ok := r.Doc.Fields.First("Name"); ok {
			line += "  " + name
			if version, ok := r.Doc.Fields.First("Version"); ok {
				line += " " + version
			}
		}
	}
	return line
}

type reportSource struct {
	reports <-chan Report
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits scan reports, so the
// output of Watch can be fed into a supervision tree alongside other
// event sources.
func NewSource(reports <-chan Report) lifecycle.Source {
	return &reportSource{
		reports: reports,
		out:     make(chan lifecycle.Event),
	}
}

func (s *reportSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *reportSource) Start(ctx context.Context) error {
	// lifecycle.Go keeps the forwarding goroutine itself tracked and safe.
	lifecycle.Go(ctx, s.forward)
	return nil
}

// forward pumps reports into the generic event channel until the input
// channel closes or the context ends, then closes the output.
func (s *reportSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case r, ok := <-s.reports:
			if !ok {
				return nil
			}
			select {
			case s.out <- r:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
