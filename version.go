package scribble

import (
	_ "embed"
)

// Version is the release version of the library and the CLI.
//
//go:embed VERSION
var Version string
