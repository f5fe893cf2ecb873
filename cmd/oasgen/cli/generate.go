package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talav/oasgen"
	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/internal/load"
)

func newGenerateCommand() *cobra.Command {
	var (
		configPath string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Translate an OpenAPI document into generated source files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], configPath, outDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML or YAML oasgen configuration file")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for generated files")

	return cmd
}

func runGenerate(documentPath, configPath, outDir string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("read document %s: %w", documentPath, err)
	}

	doc, err := load.Document(data)
	if err != nil {
		return err
	}

	result, genErr := oasgen.Generate(doc, cfg)
	if result != nil {
		printDiagnostics(result.Diagnostics)
	}
	if genErr != nil {
		return genErr
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	if err := writeIfNonEmpty(outDir, "Types.generated.swift", result.Types); err != nil {
		return err
	}
	if err := writeIfNonEmpty(outDir, "Client.generated.swift", result.Client); err != nil {
		return err
	}
	if err := writeIfNonEmpty(outDir, "Server.generated.swift", result.Server); err != nil {
		return err
	}

	fmt.Println(iconCheck, "generated", outDir)

	return nil
}
