package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-plotly"
)

// runAssetsCommand publishes the loading-indicator stylesheet under the
// output directory, at the location pages reference relative to the style
// base, and lists every asset URL pages will load.
func runAssetsCommand(args []string, deps *Dependencies) error {
	flags, positional, err := parseAssetsFlags(args, deps.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: assets takes no arguments, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(flags.common)
	if err != nil {
		return err
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	loader, err := plotly.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	css, err := plotly.Stylesheet(loader)
	if err != nil {
		return err
	}

	target := filepath.Join(flags.output, "css", "plotly.css")
	if err := os.MkdirAll(filepath.Dir(target), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrWriteOutput, filepath.Dir(target), err)
	}
	if err := writeOutput(target, []byte(css), deps.Stdout); err != nil {
		return err
	}

	if flags.common.quiet {
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Created %s\n", target)
	if flags.common.verbose {
		fmt.Fprintln(deps.Stdout, "Pages reference:")
		for _, a := range plotly.Describe(cfg.Assets.StyleBase, cfg.Assets.ScriptBase).Assets() {
			fmt.Fprintf(deps.Stdout, "  %s\n", a.URL())
		}
	}
	return nil
}
