/*
Command fontcli lists, filters and inspects the fonts installed on a system.

Configuration is read from environment variables (see package
internal/config), e.g.

	FONTMETA_DIRS=/usr/share/fonts:$HOME/.fonts FONTMETA_WORKERS=4 fontcli families

Sub-commands:

	list      list all faces
	families  list family names
	find      look up a face by name
	filter    select faces by style attributes
	inspect   dump the tables of a font file
	repl      interactive mode

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontmeta"
	"github.com/npillmayer/fontmeta/internal/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'fontmeta.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontmeta.cli")
}

func main() {
	initDisplay()
	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}
	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(cfg.TraceConf(), "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	app := &App{cfg: cfg, catalog: fontmeta.NewFromConfig(cfg), ctx: context.Background()}

	commando.
		SetExecutableName("fontcli").
		SetVersion("v0.1.0").
		SetDescription("CLI for listing, filtering and inspecting installed fonts.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("list").
		SetDescription("List the metadata records of all installed font faces.").
		SetShortDescription("list faces").
		AddFlag("all,a", "include faces without Latin script support", commando.Bool, nil).
		AddFlag("output,o", "output format: table|yaml|json", commando.String, "table").
		SetAction(app.runListCommand)

	commando.
		Register("families").
		SetDescription("List the distinct family names of all installed font faces.").
		SetShortDescription("list families").
		AddFlag("all,a", "include faces without Latin script support", commando.Bool, nil).
		SetAction(app.runFamiliesCommand)

	commando.
		Register("find").
		SetDescription("Find a face by full name or family name (case-insensitive).").
		SetShortDescription("find a face").
		AddArgument("name...", "name of the face", "").
		AddFlag("output,o", "output format: table|yaml|json", commando.String, "table").
		SetAction(app.runFindCommand)

	filter := commando.
		Register("filter").
		SetDescription("Select faces matching all given attributes.").
		SetShortDescription("filter faces").
		AddFlag("all,a", "include faces without Latin script support", commando.Bool, nil).
		AddFlag("output,o", "output format: table|yaml|json", commando.String, "table")
	for _, f := range filterFlags {
		filter.AddFlag(f.flag, f.help, commando.String, "-")
	}
	filter.SetAction(app.runFilterCommand)

	commando.
		Register("inspect").
		SetDescription("Print the tables, names and style of every face in a font file.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "font file path", "").
		AddFlag("verify", "cross-check with the golang.org/x/image sfnt parser", commando.Bool, nil).
		AddFlag("errors,e", "print warnings found while decoding", commando.Bool, nil).
		SetAction(app.runInspectCommand)

	commando.
		Register("repl").
		SetDescription("Start an interactive session.").
		SetShortDescription("interactive mode").
		SetAction(app.runREPLCommand)

	commando.Parse(nil)
}

// App holds the state shared by all sub-commands.
type App struct {
	cfg     *config.Config
	catalog *fontmeta.Catalog
	ctx     context.Context
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fontcli: "+format+"\n", args...)
	os.Exit(1)
}
