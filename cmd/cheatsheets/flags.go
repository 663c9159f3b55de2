package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags that describe the site.
type siteFlags struct {
	title      string
	basePath   string
	dateFormat string
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name, path or inline CSS
	template  string // Template set name
	assetPath string // Override asset directory
	noStyle   bool   // Disable CSS styling
	inlineCSS bool   // Embed CSS in every page
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	site    siteFlags
	assets  assetFlags
	pdf     bool
	clean   bool
}

// serveFlags holds the build flags plus the server settings.
type serveFlags struct {
	build   buildFlags
	addr    string
	metrics bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds site flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.title, "title", "", "site title")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix of the site, e.g. /sheets")
	fs.StringVar(&f.dateFormat, "date-format", "", "display format of sheet dates (tokens or preset)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.BoolVar(&f.inlineCSS, "inline-css", false, "embed the stylesheet in every page")
}

// addBuildFlags registers every build flag on fs.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout per page (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also export each sheet to PDF (needs Chrome)")
	fs.BoolVar(&f.clean, "clean", false, "remove the output directory first")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
}

// newBuildFlagSet returns the build FlagSet bound to f.
func newBuildFlagSet(f *buildFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	addBuildFlags(fs, f)
	fs.Usage = func() { printBuildUsage(usage) }
	return fs
}

// newServeFlagSet returns the serve FlagSet bound to f.
func newServeFlagSet(f *serveFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)
	addBuildFlags(fs, &f.build)
	fs.StringVar(&f.addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	fs.BoolVar(&f.metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	fs.Usage = func() { printServeUsage(usage) }
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
