// Package cli implements the oasgen command-line driver: reading a
// document and an optional config file, running the generator, and
// writing the requested targets to disk. Grounded on the teacher pack's
// go-mizu-mizu blueprint CLIs (cobra root command wired through
// charmbracelet/fang.Execute for consistent help/error rendering).
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags, following the teacher pack's
// blueprint convention.
var Version = "dev"

// Execute runs the oasgen CLI with the given context.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:           "oasgen",
		Short:         "Generate source code from an OpenAPI document",
		Long:          "oasgen translates an OpenAPI 3.0/3.1 document into type declarations, a client, and server stubs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Version = Version
	root.AddCommand(newGenerateCommand())

	if err := fang.Execute(ctx, root, fang.WithVersion(Version)); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(iconCross+" "+err.Error()))
		return err
	}

	return nil
}

func writeIfNonEmpty(outDir, filename, content string) error {
	if content == "" {
		return nil
	}

	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
