// adrctl is the operations CLI for the ADR-Intelligence analytics backend.
package main

import (
	"os"

	"github.com/gamotph/adr-intelligence/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
