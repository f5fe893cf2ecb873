// Command oasgen is the thin external driver for the oasgen library
// (SPEC_FULL.md §11): it is explicitly a non-goal of the core per spec.md
// §1 ("executing the emitted code... Not part of the core"), kept as a
// separate cmd/ binary the way a generator library ships a CLI alongside
// it without folding CLI concerns into the library itself.
package main

import (
	"context"
	"os"

	"github.com/talav/oasgen/cmd/oasgen/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
