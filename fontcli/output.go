package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/fontmeta/fontinfo"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// tableColumns are the columns of the tabular listing; the remaining fields
// of a record are available with yaml or json output.
var tableColumns = []string{"family", "full_name", "weight", "weight_name", "width_class",
	"is_bold", "is_italic", "is_monospace", "supports_latin", "format", "file_path"}

// printRecords writes records to w. Tables are rendered to the terminal by
// pterm.
func printRecords(w io.Writer, records []fontinfo.Record, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		if len(records) == 0 {
			pterm.Info.Println("no matching fonts")
			return nil
		}
		pterm.DefaultTable.WithHasHeader().WithData(tableData(records)).Render()
		return nil
	case "yaml", "json":
		return encodeRecords(w, records, format)
	}
	return fmt.Errorf("unknown output format %q (use table, yaml or json)", format)
}

// encodeRecords writes records as a YAML or JSON list.
func encodeRecords(w io.Writer, records []fontinfo.Record, format string) error {
	if records == nil {
		records = []fontinfo.Record{}
	}
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return fmt.Errorf("cannot encode records as %q", format)
}

// tableData converts records to rows of strings, with a header row.
func tableData(records []fontinfo.Record) [][]string {
	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = strings.ReplaceAll(col, "_", " ")
	}
	data := [][]string{header}
	for _, r := range records {
		m := r.ToMap()
		row := make([]string, len(tableColumns))
		for i, col := range tableColumns {
			row[i] = cell(col, m[col])
		}
		data = append(data, row)
	}
	return data
}

func cell(col string, v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "✓"
		}
		return ""
	case int:
		return strconv.Itoa(x)
	case string:
		if col == "file_path" {
			return filepath.Base(x)
		}
		return x
	}
	return fmt.Sprint(v)
}
