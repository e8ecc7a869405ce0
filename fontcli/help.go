package main

import (
	"strings"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/pterm/pterm"
)

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "filter", "refine", "criteria":
		pterm.Info.Println("filter / refine")
		pterm.Println(`
	filter key=value ...   select faces matching all constraints
	refine key=value ...   apply constraints to the result of the last query

	Blanks in values are written as '+', e.g. family=Noto+Sans.
	Weights may be given as numbers or names: weight_min=semibold.
	Keys:`)
		pterm.Println("\t" + strings.Join(fontinfo.CriterionKeys, ", "))
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	list                 list faces
	families             list family names
	find <name>          look up a face by full name or family name
	filter key=value ... select faces (see 'help filter')
	refine key=value ... narrow down the last result
	latin [on|off]       restrict to faces supporting Latin
	output <format>      table, yaml or json
	rescan               drop cached font metadata
	quit                 leave
	`)
	}
}
