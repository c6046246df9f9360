package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tschema/internal/diagfmt"
	"tschema/internal/driver"
	"tschema/internal/resolver"
	"tschema/internal/version"
)

func runConvert(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	if v, _ := flags.GetBool("version"); v {
		line := "tschema " + version.Version
		if version.GitCommit != "" {
			line += " " + version.GitCommit
		}
		if version.BuildDate != "" {
			line += " " + version.BuildDate
		}
		fmt.Println(line)
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input file (see --help)")
	}
	filePath := args[0]

	opts, err := buildOptions(cmd, filePath)
	if err != nil {
		return err
	}

	if doctor, _ := flags.GetBool("doctor"); doctor {
		// diagnostics replace normal output; failures are recorded inside
		// the report and the process still exits 0
		report := driver.RunDoctor(filePath, opts)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	var cache *driver.DiskCache
	if useCache, _ := flags.GetBool("cache"); useCache {
		// an unusable cache directory never blocks a conversion
		cache, _ = driver.OpenDiskCache("tschema")
	}

	data, bag, err := driver.ConvertFileEncoded(filePath, opts, cache)
	if err != nil {
		return err
	}

	if bag != nil && bag.HasWarnings() {
		colorFlag, _ := flags.GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor})
	}

	fmt.Println(string(data))
	return nil
}

// buildOptions layers the option sources: built-in defaults, then a
// discovered tschema.toml, then explicit flags.
func buildOptions(cmd *cobra.Command, filePath string) (driver.Options, error) {
	flags := cmd.Flags()
	opts := driver.Options{FollowImports: resolver.FollowLocal}

	startDir := filepath.Dir(filePath)
	if cfg, ok, err := loadProjectConfig(startDir); err != nil {
		return opts, err
	} else if ok {
		applyProjectConfig(&opts, cfg)
	}

	if flags.Changed("rootType") {
		opts.RootType, _ = flags.GetString("rootType")
	}
	if flags.Changed("includeSchema") {
		v, _ := flags.GetBool("includeSchema")
		opts.IncludeSchema = &v
	}
	if flags.Changed("schemaVersion") {
		opts.SchemaVersion, _ = flags.GetString("schemaVersion")
	}
	if flags.Changed("strictObjects") {
		opts.StrictObjects, _ = flags.GetBool("strictObjects")
	}
	if flags.Changed("additionalProperties") {
		raw, _ := flags.GetString("additionalProperties")
		v, err := parseBoolFlag("additionalProperties", raw)
		if err != nil {
			return opts, err
		}
		opts.AdditionalProperties = &v
	}
	if flags.Changed("includeJSDoc") {
		v, _ := flags.GetBool("includeJSDoc")
		opts.IncludeJSDoc = &v
	}
	if flags.Changed("followImports") {
		raw, _ := flags.GetString("followImports")
		mode, err := resolver.ParseFollowMode(raw)
		if err != nil {
			return opts, err
		}
		opts.FollowImports = mode
	}
	if flags.Changed("baseDir") {
		opts.BaseDir, _ = flags.GetString("baseDir")
	}
	return opts, nil
}

func parseBoolFlag(name, raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q for --%s (want true|false)", raw, name)
}
