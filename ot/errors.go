package ot

import (
	"errors"
	"fmt"
)

// Sentinel errors. All error types of this package wrap one of these, so
// clients may test with errors.Is.
var (
	ErrFormat       = errors.New("OpenType font format")
	ErrMissingTable = errors.New("OpenType table missing")
	ErrDecode       = errors.New("OpenType name decoding")
	ErrFaceIndex    = errors.New("OpenType face index out of range")
)

// ErrorSeverity represents the severity level of a font parsing issue.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the face unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a table had to be dropped.
	SeverityMajor
	// SeverityMinor indicates an irregularity that can be safely ignored.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FormatError is returned if a container signature is unrecognized, or if a
// header or table directory is truncated or corrupt. It is fatal for the
// container (or, within a collection, for a single face).
type FormatError struct {
	Table   Tag    // The OpenType table where the error occurred; 0 for headers
	Section string // Specific section (e.g., "Header", "TableRecords")
	Issue   string // Human-readable description of the issue
	Offset  uint32 // Byte offset in the font file where the error occurred (0 if unknown)
}

func errFontFormat(section, issue string, offset uint32) *FormatError {
	return &FormatError{Section: section, Issue: issue, Offset: offset}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	where := e.Section
	if e.Table != 0 {
		where = e.Table.String() + "/" + e.Section
	}
	if e.Offset > 0 {
		return fmt.Sprintf("%s: %s at offset %d: %s", ErrFormat, where, e.Offset, e.Issue)
	}
	return fmt.Sprintf("%s: %s: %s", ErrFormat, where, e.Issue)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// MissingTableError reports that a table is not present in a face (or could
// not be decoded). It is never fatal: every consumer has a documented default.
type MissingTableError struct {
	Table Tag
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("%s: '%s'", ErrMissingTable, e.Table)
}

func (e *MissingTableError) Unwrap() error {
	return ErrMissingTable
}

// DecodeError reports a name record whose string could not be decoded.
type DecodeError struct {
	PlatformID PlatformID
	EncodingID uint16
	NameID     uint16
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: name %d (platform=%d, encoding=%d): %v", ErrDecode,
		e.NameID, e.PlatformID, e.EncodingID, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}
	return []error{ErrDecode, e.Err}
}

// IndexError is returned when asking a container for a face outside
// [0, FaceCount).
type IndexError struct {
	Index, Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d not in [0,%d)", ErrFaceIndex, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error {
	return ErrFaceIndex
}

// FontWarning represents a non-critical issue encountered during decoding of a
// face. Warnings indicate potential problems but do not prevent usage of the face.
type FontWarning struct {
	Table    Tag           // The OpenType table where the warning occurred
	Issue    string        // Human-readable description of the warning
	Severity ErrorSeverity // SeverityMajor if a table has been dropped
	Offset   uint32        // Byte offset in the font file (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[%s] %s at offset %d: %s", w.Severity, w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.Table, w.Issue)
}

// warningCollector accumulates warnings during decoding of a face.
type warningCollector struct {
	warnings []FontWarning
}

// add records a decoding warning.
func (wc *warningCollector) add(table Tag, issue string, severity ErrorSeverity, offset uint32) {
	tracer().Debugf("table %s: %s", table, issue)
	wc.warnings = append(wc.warnings, FontWarning{
		Table:    table,
		Issue:    issue,
		Severity: severity,
		Offset:   offset,
	})
}

// dropped records that a table could not be decoded and will be treated as absent.
func (wc *warningCollector) dropped(table Tag, issue string, offset uint32) {
	wc.add(table, issue+"; table ignored", SeverityMajor, offset)
}
