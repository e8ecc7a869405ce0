package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// filterFlag maps a command line flag of 'filter' to a criterion key.
type filterFlag struct {
	flag string // commando flag spec, "name[,short]"
	key  string // key for fontinfo.Criteria.ParseCriterion
	help string
}

var filterFlags = []filterFlag{
	{"family,f", "family", "family name (exact, case-insensitive)"},
	{"contains,c", "family_contains", "substring of the family name"},
	{"full-name", "full_name", "full name (exact, case-insensitive)"},
	{"postscript-name", "postscript_name", "PostScript name (exact, case-insensitive)"},
	{"weight-name", "weight_name", "weight name, e.g. Bold"},
	{"format", "format", "file format: ttf|otf|ttc|otc"},
	{"bold,b", "is_bold", "bold flag: true|false"},
	{"italic,i", "is_italic", "italic flag: true|false"},
	{"oblique", "is_oblique", "oblique flag: true|false"},
	{"mono,m", "is_monospace", "monospace flag: true|false"},
	{"latin", "supports_latin", "Latin script support: true|false"},
	{"weight,w", "weight", "weight class (number or name)"},
	{"weight-min", "weight_min", "minimum weight class (number or name)"},
	{"weight-max", "weight_max", "maximum weight class (number or name)"},
	{"width", "width_class", "width class 1…9"},
}

// flagName strips the short form from a commando flag spec.
func (f filterFlag) flagName() string {
	name, _, _ := strings.Cut(f.flag, ",")
	return name
}

// criteriaFromFlags builds criteria from the flags of 'filter'. Unset flags
// carry the value "-".
func criteriaFromFlags(values map[string]string) (fontinfo.Criteria, error) {
	c := fontinfo.NewCriteria()
	for _, f := range filterFlags {
		v, ok := values[f.flagName()]
		if !ok || v == "-" || v == "" {
			continue
		}
		var err error
		if c, err = c.ParseCriterion(f.key, v); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (app *App) runListCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	records, err := app.catalog.GetAll(app.ctx, !mustFlagBool(flags["all"], "all"))
	if err != nil {
		fatalf("%v", err)
	}
	app.mustPrint(records, mustFlagString(flags["output"], "output"))
}

func (app *App) runFamiliesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	families, err := app.catalog.ListFamilies(app.ctx, !mustFlagBool(flags["all"], "all"))
	if err != nil {
		fatalf("%v", err)
	}
	for _, family := range families {
		pterm.Println(family)
	}
	tracer().Infof("%d families", len(families))
}

func (app *App) runFindCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	name := strings.TrimSpace(strings.ReplaceAll(args["name"].Value, ",", " "))
	if name == "" {
		fatalf("name is required")
	}
	r, ok, err := app.catalog.FindByName(app.ctx, name)
	if err != nil {
		fatalf("%v", err)
	}
	if !ok {
		pterm.Error.Printf("no font named %q\n", name)
		os.Exit(2)
	}
	app.mustPrint([]fontinfo.Record{r}, mustFlagString(flags["output"], "output"))
}

func (app *App) runFilterCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	values := make(map[string]string, len(filterFlags))
	for _, f := range filterFlags {
		values[f.flagName()] = mustFlagString(flags[f.flagName()], f.flagName())
	}
	criteria, err := criteriaFromFlags(values)
	if err != nil {
		fatalf("%v", err)
	}
	records, err := app.catalog.GetAll(app.ctx, !mustFlagBool(flags["all"], "all"))
	if err != nil {
		fatalf("%v", err)
	}
	tracer().Infof("filtering %d faces with %s", len(records), criteria)
	matches, err := app.catalog.Filter(app.ctx, records, criteria)
	if err != nil {
		fatalf("%v", err)
	}
	app.mustPrint(matches, mustFlagString(flags["output"], "output"))
}

func (app *App) mustPrint(records []fontinfo.Record, format string) {
	if err := printRecords(os.Stdout, records, format); err != nil {
		fatalf("%v", err)
	}
}

func (app *App) runREPLCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	intp, err := NewIntp(app)
	if err != nil {
		fatalf("%v", err)
	}
	defer intp.repl.Close()
	pterm.Info.Println("Welcome to the font catalog CLI")
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
}

// describe formats a short summary line for a face.
func describe(r fontinfo.Record) string {
	return fmt.Sprintf("%s  [%s, %s]", r.String(), r.WeightName, r.WidthName())
}
