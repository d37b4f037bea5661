// Command spectrum validates spectrum.toml, summarizes NDJSON run reports
// and scaffolds configuration for projects using the spectrum test library.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
