package fontinfo

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/fontmeta/otquery"
	"golang.org/x/text/cases"
)

// ErrCriterion is wrapped by errors of ParseCriterion.
var ErrCriterion = errors.New("invalid filter criterion")

// opt is an optional criterion value.
type opt[T any] struct {
	value T
	set   bool
}

func some[T any](v T) opt[T] {
	return opt[T]{value: v, set: true}
}

// Criteria is a set of optional constraints on records. The zero value has
// no constraints and matches every record. Criteria are built by chaining,
// where every call returns a new value:
//
//	c := fontinfo.NewCriteria().FamilyContains("sans").Bold(true).WeightMin(600)
//
// String constraints are case-insensitive. All constraints present must hold
// for a record to match.
type Criteria struct {
	family, familyContains opt[string]
	fullName, psName       opt[string]
	weightName             opt[string]
	format                 opt[string]
	bold, italic           opt[bool]
	oblique, monospace     opt[bool]
	latin                  opt[bool]
	weight, width          opt[int]
	weightMin, weightMax   opt[int]
	custom                 func(Record) bool
}

// NewCriteria returns criteria without constraints.
func NewCriteria() Criteria {
	return Criteria{}
}

// Family requires an exact (case-insensitive) family name.
func (c Criteria) Family(name string) Criteria { c.family = some(fold(name)); return c }

// FamilyContains requires the family name to contain a substring (case-insensitive).
func (c Criteria) FamilyContains(s string) Criteria { c.familyContains = some(fold(s)); return c }

// FullName requires an exact (case-insensitive) full name.
func (c Criteria) FullName(name string) Criteria { c.fullName = some(fold(name)); return c }

// PostScriptName requires an exact (case-insensitive) PostScript name.
func (c Criteria) PostScriptName(name string) Criteria { c.psName = some(fold(name)); return c }

// WeightName requires an exact (case-insensitive) weight name, e.g. "Bold".
func (c Criteria) WeightName(name string) Criteria { c.weightName = some(fold(name)); return c }

// Format requires a file format. "TTF", "ttf" and ".ttf" are equivalent.
func (c Criteria) Format(format string) Criteria { c.format = some(NormalizeFormat(format)); return c }

// Bold requires the bold flag to equal b.
func (c Criteria) Bold(b bool) Criteria { c.bold = some(b); return c }

// Italic requires the italic flag to equal b.
func (c Criteria) Italic(b bool) Criteria { c.italic = some(b); return c }

// Oblique requires the oblique flag to equal b.
func (c Criteria) Oblique(b bool) Criteria { c.oblique = some(b); return c }

// Monospace requires the monospace flag to equal b.
func (c Criteria) Monospace(b bool) Criteria { c.monospace = some(b); return c }

// SupportsLatin requires Latin script support to equal b.
func (c Criteria) SupportsLatin(b bool) Criteria { c.latin = some(b); return c }

// Weight requires an exact weight class.
func (c Criteria) Weight(w int) Criteria { c.weight = some(w); return c }

// WeightMin requires a weight class ≥ w.
func (c Criteria) WeightMin(w int) Criteria { c.weightMin = some(w); return c }

// WeightMax requires a weight class ≤ w.
func (c Criteria) WeightMax(w int) Criteria { c.weightMax = some(w); return c }

// WidthClass requires an exact width class.
func (c Criteria) WidthClass(w int) Criteria { c.width = some(w); return c }

// Custom adds an arbitrary predicate. A nil predicate removes a previously
// set one.
func (c Criteria) Custom(pred func(Record) bool) Criteria { c.custom = pred; return c }

// Predicate is a single constraint of a Criteria.
type Predicate struct {
	Name  string // criterion key, as accepted by ParseCriterion
	Match func(Record) bool
}

// Predicates returns the constraints present in c.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	str := func(name string, o opt[string], field func(Record) string, contains bool) {
		if !o.set {
			return
		}
		v := o.value
		preds = append(preds, Predicate{Name: name, Match: func(r Record) bool {
			if contains {
				return strings.Contains(fold(field(r)), v)
			}
			return fold(field(r)) == v
		}})
	}
	str("family", c.family, func(r Record) string { return r.Family }, false)
	str("family_contains", c.familyContains, func(r Record) string { return r.Family }, true)
	str("full_name", c.fullName, func(r Record) string { return r.FullName }, false)
	str("postscript_name", c.psName, func(r Record) string { return r.PostScriptName }, false)
	str("weight_name", c.weightName, func(r Record) string { return r.WeightName }, false)
	flag := func(name string, o opt[bool], field func(Record) bool) {
		if o.set {
			v := o.value
			preds = append(preds, Predicate{Name: name, Match: func(r Record) bool { return field(r) == v }})
		}
	}
	flag("is_bold", c.bold, func(r Record) bool { return r.IsBold })
	flag("is_italic", c.italic, func(r Record) bool { return r.IsItalic })
	flag("is_oblique", c.oblique, func(r Record) bool { return r.IsOblique })
	flag("is_monospace", c.monospace, func(r Record) bool { return r.IsMonospace })
	flag("supports_latin", c.latin, func(r Record) bool { return r.SupportsLatin })
	num := func(name string, o opt[int], test func(Record, int) bool) {
		if o.set {
			v := o.value
			preds = append(preds, Predicate{Name: name, Match: func(r Record) bool { return test(r, v) }})
		}
	}
	num("weight", c.weight, func(r Record, v int) bool { return r.Weight == v })
	num("weight_min", c.weightMin, func(r Record, v int) bool { return r.Weight >= v })
	num("weight_max", c.weightMax, func(r Record, v int) bool { return r.Weight <= v })
	num("width_class", c.width, func(r Record, v int) bool { return r.WidthClass == v })
	if c.format.set {
		v := c.format.value
		preds = append(preds, Predicate{Name: "format", Match: func(r Record) bool {
			return strings.ToLower(r.Format) == v
		}})
	}
	if c.custom != nil {
		preds = append(preds, Predicate{Name: "custom", Match: c.custom})
	}
	return preds
}

// IsEmpty reports whether c has no constraints.
func (c Criteria) IsEmpty() bool {
	return len(c.Predicates()) == 0
}

// Matches reports whether r satisfies all constraints of c.
func (c Criteria) Matches(r Record) bool {
	for _, p := range c.Predicates() {
		if !p.Match(r) {
			return false
		}
	}
	return true
}

// String lists the names of the constraints present in c.
func (c Criteria) String() string {
	preds := c.Predicates()
	if len(preds) == 0 {
		return "{}"
	}
	names := make([]string, len(preds))
	for i, p := range preds {
		names[i] = p.Name
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// CriterionKeys lists the keys accepted by ParseCriterion.
var CriterionKeys = []string{
	"family", "family_contains", "full_name", "postscript_name", "weight_name", "format",
	"is_bold", "is_italic", "is_oblique", "is_monospace", "supports_latin",
	"weight", "weight_min", "weight_max", "width_class",
}

// ParseCriterion adds a constraint given as key and string value to c.
// Keys are the field names of Record.ToMap (plus "family_contains",
// "weight_min" and "weight_max"). Boolean values are parsed with
// strconv.ParseBool. Weight names are accepted for the weight keys.
func (c Criteria) ParseCriterion(key, value string) (Criteria, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	if !slices.Contains(CriterionKeys, key) {
		return c, fmt.Errorf("%w: unknown key %q", ErrCriterion, key)
	}
	switch key {
	case "family":
		return c.Family(value), nil
	case "family_contains":
		return c.FamilyContains(value), nil
	case "full_name":
		return c.FullName(value), nil
	case "postscript_name":
		return c.PostScriptName(value), nil
	case "weight_name":
		return c.WeightName(value), nil
	case "format":
		return c.Format(value), nil
	case "is_bold", "is_italic", "is_oblique", "is_monospace", "supports_latin":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q is not a boolean", ErrCriterion, key, value)
		}
		switch key {
		case "is_bold":
			return c.Bold(b), nil
		case "is_italic":
			return c.Italic(b), nil
		case "is_oblique":
			return c.Oblique(b), nil
		case "is_monospace":
			return c.Monospace(b), nil
		}
		return c.SupportsLatin(b), nil
	}
	n, err := parseWeightValue(key, value)
	if err != nil {
		return c, err
	}
	switch key {
	case "weight":
		return c.Weight(n), nil
	case "weight_min":
		return c.WeightMin(n), nil
	case "weight_max":
		return c.WeightMax(n), nil
	}
	return c.WidthClass(n), nil
}

func parseWeightValue(key, value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	if key != "width_class" {
		if w, ok := otquery.ParseWeightName(value); ok {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %s=%q is not a number", ErrCriterion, key, value)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
