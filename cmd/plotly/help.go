package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: plotly <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a chart file as a standalone HTML page")
	fmt.Fprintln(w, "  page       Convert Markdown with ```plotly blocks to HTML pages")
	fmt.Fprintln(w, "  assets     Write the loading-indicator stylesheet")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'plotly help <command>' for details on a specific command.")
}

// printWidgetFlags prints the flags shared by render and page.
func printWidgetFlags(w io.Writer) {
	fmt.Fprintln(w, "Widget:")
	fmt.Fprintln(w, "      --locale <tag>        Locale of the loading text (e.g. pl, pt-BR)")
	fmt.Fprintln(w, "      --style-base <url>    URL prefix of css/plotly.css")
	fmt.Fprintln(w, "      --script-base <url>   URL prefix of js/plotly.min.js")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/, templates/)")
	fmt.Fprintln(w, "      --no-loading          Disable the loading indicator")
	fmt.Fprintln(w)
}

// printCommonFlags prints the flags shared by every command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: plotly render <chart.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a chart file (YAML or JSON) as a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  chart    Chart file; \"-\" reads standard input")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html, \"-\" = stdout)")
	fmt.Fprintln(w, "      --title <s>           Page title (default: input file name)")
	fmt.Fprintln(w)
	printWidgetFlags(w)
	printCommonFlags(w)
}

// printPageUsage prints usage for the page command.
func printPageUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: plotly page <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to HTML pages. Fenced ```plotly blocks hold")
	fmt.Fprintln(w, "chart files and are replaced by interactive charts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --highlight <style>   Code highlighting style (default: github)")
	fmt.Fprintln(w)
	printWidgetFlags(w)
	printCommonFlags(w)
}

// printAssetsUsage prints usage for the assets command.
func printAssetsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: plotly assets [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write css/plotly.css under the output directory and list the files")
	fmt.Fprintln(w, "pages reference. The charting library itself is not bundled.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: .)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdRender:
		printRenderUsage(deps.Stdout)
	case cmdPage:
		printPageUsage(deps.Stdout)
	case cmdAssets:
		printAssetsUsage(deps.Stdout)
	case cmdVersion:
		fmt.Fprintln(deps.Stdout, "Usage: plotly version")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(deps.Stdout, "Usage: plotly help [command]")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n", args[0])
		printUsage(deps.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
