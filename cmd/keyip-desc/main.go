// Command keyip-desc computes molecular descriptor tables from SMILES files
// and serves the same computation over HTTP.
package main

import (
	"os"

	"github.com/turtacn/KeyIP-Descriptors/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	os.Exit(cli.Execute())
}

//Personal.AI order the ending
