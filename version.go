package posy

import _ "embed"

// Version exposes the version of the library, read from the VERSION
// file at build time.
//
//go:embed VERSION
var Version string
