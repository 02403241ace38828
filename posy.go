package posy

import (
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/rockstar/posy/pkg/dist"
	"github.com/rockstar/posy/pkg/metadata"
	"github.com/rockstar/posy/pkg/platform"
)

// --- Types ---

// Fields is a public alias for the field-name-to-values mapping.
type Fields = metadata.Fields

// Document is a public alias for a parsed metadata file.
type Document = metadata.Document

// CoreMetadata is a public alias for the metadata-aware field view.
type CoreMetadata = metadata.CoreMetadata

// ParseError is a public alias for the structural parse error.
type ParseError = metadata.ParseError

// Report is a public alias for one scan result.
type Report = dist.Report

// Scanner is a public alias for the metadata file scanner.
type Scanner = dist.Scanner

// PlatformTags is a public alias for an ordered compatibility-tag list.
type PlatformTags = platform.Tags

// --- Parsing ---

// Parse parses the complete contents of a metadata file.
func Parse(input string) (*Document, error) {
	return metadata.Parse(input)
}

// NewCoreMetadata folds a document's body, if any, into Description.
func NewCoreMetadata(doc *Document) CoreMetadata {
	return metadata.NewCoreMetadata(doc)
}

// ParseCoreMetadata parses input and folds the body in one step.
func ParseCoreMetadata(input string) (CoreMetadata, error) {
	return metadata.ParseCoreMetadata(input)
}

// --- Scanning ---

// ScanOption configures a Scanner.
type ScanOption = dist.Option

// WithPatterns replaces the default metadata glob patterns.
func WithPatterns(patterns ...string) ScanOption {
	return dist.WithPatterns(patterns...)
}

// WithLogger sets the logger for the scanner.
func WithLogger(logger *slog.Logger) ScanOption {
	return dist.WithLogger(logger)
}

// WithConcurrency bounds how many files are parsed at once.
func WithConcurrency(n int) ScanOption {
	return dist.WithConcurrency(n)
}

// NewScanner creates a metadata scanner rooted at the given directory.
func NewScanner(root string, opts ...ScanOption) *Scanner {
	return dist.NewScanner(root, opts...)
}

// NewReportSource bridges a report channel (e.g. the output of
// Scanner.Watch) to a lifecycle event source.
func NewReportSource(reports <-chan Report) lifecycle.Source {
	return dist.NewSource(reports)
}
