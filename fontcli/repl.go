package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	app       *App
	repl      *readline.Instance
	latinOnly bool
	format    string            // output format for records
	last      []fontinfo.Record // result of the last query, input for 'refine'
}

// NewIntp creates an interpreter reading commands from the terminal.
func NewIntp(app *App) (*Intp, error) {
	repl, err := readline.New("fonts > ")
	if err != nil {
		return nil, err
	}
	return &Intp{app: app, repl: repl, latinOnly: app.cfg.LatinOnly, format: "table"}, nil
}

func (intp *Intp) String() string {
	return fmt.Sprintf("( latin-only=%v, output=%s, last=%d )", intp.latinOnly, intp.format, len(intp.last))
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed line of input.
type Command struct {
	op   int
	args []string
}

const (
	QUIT int = iota
	HELP
	LIST
	FAMILIES
	FIND
	FILTER
	REFINE
	LATIN
	OUTPUT
	RESCAN
)

var opMap = map[string]int{
	"quit":     QUIT,
	"exit":     QUIT,
	"help":     HELP,
	"list":     LIST,
	"families": FAMILIES,
	"find":     FIND,
	"filter":   FILTER,
	"refine":   REFINE,
	"latin":    LATIN,
	"output":   OUTPUT,
	"rescan":   RESCAN,
}

var errUnknownCommand = errors.New("unknown command, try 'help'")

// parseCommand splits a line into an op-code and its arguments.
func parseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errUnknownCommand
	}
	op, ok := opMap[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", errUnknownCommand, fields[0])
	}
	tracer().Debugf("parsed command: %v", fields)
	return Command{op: op, args: fields[1:]}, nil
}

// parseCriteria parses arguments of the form key=value.
func parseCriteria(args []string) (fontinfo.Criteria, error) {
	c := fontinfo.NewCriteria()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return c, fmt.Errorf("%w: expected key=value, have %q", fontinfo.ErrCriterion, arg)
		}
		value = strings.ReplaceAll(value, "+", " ") // family=Noto+Sans
		var err error
		if c, err = c.ParseCriterion(key, value); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (intp *Intp) execute(cmd Command) (quit bool, err error) {
	ctx := intp.app.ctx
	catalog := intp.app.catalog
	switch cmd.op {
	case QUIT:
		return true, nil
	case HELP:
		help(strings.Join(cmd.args, " "))
	case LIST:
		intp.last, err = catalog.GetAll(ctx, intp.latinOnly)
		if err == nil {
			err = printRecords(os.Stdout, intp.last, intp.format)
		}
	case FAMILIES:
		var families []string
		if families, err = catalog.ListFamilies(ctx, intp.latinOnly); err == nil {
			pterm.Println(strings.Join(families, "\n"))
			pterm.Info.Printf("%d families\n", len(families))
		}
	case FIND:
		name := strings.Join(cmd.args, " ")
		r, ok, ferr := catalog.FindByName(ctx, name)
		if err = ferr; err == nil {
			if !ok {
				return false, fmt.Errorf("no font named %q", name)
			}
			intp.last = []fontinfo.Record{r}
			pterm.Println(describe(r))
		}
	case FILTER, REFINE:
		var c fontinfo.Criteria
		if c, err = parseCriteria(cmd.args); err != nil {
			return false, err
		}
		var input []fontinfo.Record
		if cmd.op == REFINE {
			if intp.last == nil {
				return false, errors.New("nothing to refine, run a query first")
			}
			input = intp.last
		} else if input, err = catalog.GetAll(ctx, intp.latinOnly); err != nil {
			return false, err
		}
		if intp.last, err = catalog.Filter(ctx, input, c); err == nil {
			err = printRecords(os.Stdout, intp.last, intp.format)
		}
	case LATIN:
		if len(cmd.args) > 0 {
			intp.latinOnly = cmd.args[0] != "off" && cmd.args[0] != "false"
		} else {
			intp.latinOnly = !intp.latinOnly
		}
	case OUTPUT:
		if len(cmd.args) != 1 {
			return false, errors.New("usage: output table|yaml|json")
		}
		intp.format = strings.ToLower(cmd.args[0])
	case RESCAN:
		catalog.Invalidate()
		intp.last = nil
		pterm.Info.Println("cache cleared")
	}
	return false, err
}
