package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cheatsheets <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Render the content directory into a static site")
	fmt.Fprintln(w, "  serve       Build, serve and rebuild on change")
	fmt.Fprintln(w, "  doctor      Check the environment")
	fmt.Fprintln(w, "  completion  Generate shell completion scripts")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cheatsheets help <command>' for details on a specific command.")
}

// printBuildFlagsHelp prints the flags shared by build and serve.
func printBuildFlagsHelp(w io.Writer) {
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renderers (0 = auto)")
	fmt.Fprintln(w, "      --clean               Remove the output directory first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --title <s>           Site title")
	fmt.Fprintln(w, "      --base-path <s>       URL prefix, e.g. /sheets")
	fmt.Fprintln(w, "      --date-format <s>     Sheet date format (default: MMMM DD, YYYY)")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --template <s>        Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w, "      --inline-css          Embed the stylesheet in every page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Export each sheet to <slug>/<slug>.pdf")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout per page (e.g., 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cheatsheets build [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every Markdown sheet of the content directory into a static site.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Content directory (default: input.dir from config, or ./content)")
	fmt.Fprintln(w)
	printBuildFlagsHelp(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cheatsheets serve [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, serve it over HTTP and rebuild when content changes.")
	fmt.Fprintln(w, "Without --output, pages are written to a temporary directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --metrics             Expose Prometheus metrics at /metrics")
	fmt.Fprintln(w)
	printBuildFlagsHelp(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: cheatsheets doctor [--json] [input]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the content directory, the output directory, the config")
		fmt.Fprintln(env.Stdout, "and Chrome (needed for --pdf only).")
	case "completion":
		fmt.Fprintln(env.Stdout, "Usage: cheatsheets completion <bash|zsh|fish|powershell>")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print a shell completion script.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cheatsheets version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cheatsheets help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
