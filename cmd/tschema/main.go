package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "tschema <file.ts>",
	Short: "Convert TypeScript type declarations to JSON Schema",
	Long: `tschema reads a TypeScript declaration file and writes a JSON Schema
(draft 2020-12) document to standard output.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	flags := rootCmd.Flags()
	flags.BoolP("version", "v", false, "print the version and exit")
	flags.Bool("doctor", false, "emit a diagnostic report instead of a schema")

	flags.StringP("rootType", "r", "", "emit this type as the root schema")
	flags.BoolP("includeSchema", "s", true, "prepend $schema to the output")
	flags.String("schemaVersion", "", "URL to use for $schema")
	flags.Bool("strictObjects", false, "set additionalProperties:false where nothing else applies")
	flags.String("additionalProperties", "", "fallback additionalProperties value (true|false)")
	flags.Bool("includeJSDoc", true, "apply JSDoc descriptions and constraints")
	flags.String("followImports", "local", "import follow mode (none|local|all)")
	flags.String("baseDir", "", "base directory for relative paths")

	flags.Bool("cache", false, "reuse cached schemas for unchanged inputs")
	flags.String("color", "auto", "colorize diagnostics (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
