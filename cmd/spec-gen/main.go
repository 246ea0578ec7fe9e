package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	cli "github.com/blimu-dev/spec-gen/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "spec-gen",
		Short: "Generate OpenAPI documents from declared controller metadata",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var logLevel string
	var pretty bool
	var fb cli.FallbackParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Pretty:     pretty,
				Fallback:   fb,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to spec-gen.yaml config")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Human readable log output")
	// Fallback flags when no config file is used
	cmd.Flags().StringArrayVar(&fb.Sources, "source", nil, "Declaration file (yaml/json), repeatable")
	cmd.Flags().StringVar(&fb.Output, "out", "", "Output file (.json, .yaml)")
	cmd.Flags().StringVar(&fb.Format, "format", "", "Output format (json, yaml); defaults to the --out extension")
	cmd.Flags().StringVar(&fb.Title, "title", "API", "info.title")
	cmd.Flags().StringVar(&fb.Version, "version", "1.0.0", "info.version")
	cmd.Flags().StringArrayVar(&fb.Servers, "server", nil, "Server URL, repeatable")
	cmd.Flags().StringArrayVar(&fb.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&fb.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")
	cmd.Flags().StringVar(&fb.OperationIDTemplate, "operation-id-template", "", "Template for synthesized operation ids")
	cmd.Flags().StringVar(&fb.LegacyAnnotations, "legacy-annotations", "", "Legacy annotation policy (merge, ignore, reject)")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI document (yaml/json) or URL")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
