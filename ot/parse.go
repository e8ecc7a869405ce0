package ot

import (
	"fmt"
)

// Code comment often will cite passage from the
// OpenType specification version 1.9;
// see https://learn.microsoft.com/en-us/typography/opentype/spec/.

// Maximum reasonable counts for container structures.
// These limits prevent malicious fonts from claiming unreasonably large counts
// that could lead to excessive memory allocation.
const (
	MaxCollectionFaces = 1024
	MaxTableCount      = 512
)

const (
	ttcHeaderSize    = 12 // tag, version, numFonts
	offsetTableSize  = 12 // sfnt version, numTables, searchRange, entrySelector, rangeShift
	tableRecordSize  = 16 // tag, checksum, offset, length
	headTableSize    = 54
	postHeaderSize   = 16 // up to and including isFixedPitch
	os2MinSize       = 64 // up to and including fsSelection
	os2CodePagesSize = 86 // version 1 and later
	nameHeaderSize   = 6
	nameRecordSize   = 12
)

// Open opens a font container from a byte slice. It recognizes single-face
// fonts (TrueType, CFF) and collections ('ttcf'). An unrecognized signature or a
// truncated header results in a *FormatError.
func Open(font []byte) (*Container, error) {
	b := binarySegm(font)
	sig, err := b.u32(0)
	if err != nil {
		return nil, errFontFormat("Header", "file too short for a font signature", 0)
	}
	if sig == SignatureTTC {
		return OpenCollection(font)
	}
	return OpenSingle(font)
}

// OpenCollection opens a font collection (*.ttc, *.otc). It fails with a
// *FormatError if the data does not start with a valid collection header.
// The table directories of the faces are not checked until a face is requested.
func OpenCollection(font []byte) (*Container, error) {
	b := binarySegm(font)
	sig, err := b.u32(0)
	if err != nil || sig != SignatureTTC {
		return nil, errFontFormat("Header", fmt.Sprintf("not a font collection: %x", sig), 0)
	}
	// "TTC Header Version 1.0: ttcTag, majorVersion, minorVersion, numFonts,
	// tableDirectoryOffsets[numFonts]". Version 2.0 appends DSIG fields, which we ignore.
	numFonts, err := b.u32(8)
	if err != nil {
		return nil, errFontFormat("Header", "collection header truncated", 8)
	}
	if numFonts == 0 || numFonts > MaxCollectionFaces {
		return nil, errFontFormat("Header", fmt.Sprintf("implausible face count %d", numFonts), 8)
	}
	c := &Container{data: b, collection: true, dirs: make([]uint32, numFonts)}
	for i := range c.dirs {
		off, err := b.u32(ttcHeaderSize + 4*i)
		if err != nil {
			return nil, errFontFormat("Header", "collection offset table truncated", uint32(ttcHeaderSize+4*i))
		}
		if int(off) >= len(b) {
			return nil, errFontFormat("Header", fmt.Sprintf("face %d directory offset out of bounds", i), off)
		}
		c.dirs[i] = off
	}
	tracer().Debugf("opened collection with %d faces", numFonts)
	return c, nil
}

// OpenSingle opens a single-face font, i.e. a font with a table directory at
// offset 0. Collections are rejected with a *FormatError, as are fonts with
// an unknown signature or a truncated table directory.
func OpenSingle(font []byte) (*Container, error) {
	b := binarySegm(font)
	if _, _, err := readDirectory(b, 0); err != nil {
		return nil, err
	}
	return &Container{data: b, dirs: []uint32{0}}, nil
}

type tableRecord struct {
	tag    Tag
	offset uint32
	length uint32
}

// readDirectory reads the table directory located at offset dir.
func readDirectory(src binarySegm, dir uint32) (uint32, []tableRecord, error) {
	flavor, err := src.u32(int(dir))
	if err != nil {
		return 0, nil, errFontFormat("Header", "file too short for a font signature", dir)
	}
	if !isFaceFlavor(flavor) {
		return 0, nil, errFontFormat("Header", fmt.Sprintf("font type not supported: %x", flavor), dir)
	}
	numTables, err := src.u16(int(dir) + 4)
	if err != nil {
		return 0, nil, errFontFormat("Header", "offset table truncated", dir)
	}
	if numTables == 0 || numTables > MaxTableCount {
		return 0, nil, errFontFormat("Header", fmt.Sprintf("implausible table count %d", numTables), dir)
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	size, err := checkedMulInt(tableRecordSize, int(numTables))
	if err != nil {
		return 0, nil, errFontFormat("TableRecords", err.Error(), dir)
	}
	buf, err := src.view(int(dir)+offsetTableSize, size)
	if err != nil {
		return 0, nil, errFontFormat("TableRecords", "table record entries truncated", dir+offsetTableSize)
	}
	records := make([]tableRecord, 0, numTables)
	for b := buf; len(b) > 0; b = b[tableRecordSize:] {
		rec := tableRecord{tag: MakeTag(b[:4]), offset: u32(b[8:12]), length: u32(b[12:16])}
		end, err := checkedAddUint32(rec.offset, rec.length)
		if err != nil || end > uint32(len(src)) {
			return 0, nil, &FormatError{
				Table:   rec.tag,
				Section: "Bounds",
				Issue:   fmt.Sprintf("bounds [%d:%d] exceed font size %d", rec.offset, end, len(src)),
				Offset:  rec.offset,
			}
		}
		records = append(records, rec)
	}
	return flavor, records, nil
}

// parseFace decodes the table directory at offset dir and the typed tables of
// the face.
func parseFace(src binarySegm, dir uint32, index int) (*FaceTables, error) {
	flavor, records, err := readDirectory(src, dir)
	if err != nil {
		return nil, err
	}
	face := &FaceTables{Index: index, Flavor: flavor, tables: make(map[Tag]binarySegm, len(records))}
	var prevTag Tag
	for _, rec := range records {
		if rec.tag < prevTag {
			face.wc.add(rec.tag, "table records not sorted by tag", SeverityMinor, dir)
		}
		prevTag = rec.tag
		if rec.offset&3 != 0 { // "all tables must begin on four byte boundries".
			face.wc.add(rec.tag, "table offset not 4-byte aligned", SeverityMinor, rec.offset)
		}
		if _, dup := face.tables[rec.tag]; dup {
			face.wc.add(rec.tag, "duplicate table record; first one wins", SeverityMinor, rec.offset)
			continue
		}
		face.tables[rec.tag] = src[rec.offset : rec.offset+rec.length]
	}
	face.name = parseName(face)
	face.os2 = parseOS2(face)
	face.head = parseHead(face)
	face.post = parsePost(face)
	tracer().Debugf("face %d: %d tables, %d warnings", index, len(face.tables), len(face.wc.warnings))
	return face, nil
}

// --- Head table ------------------------------------------------------------

func parseHead(face *FaceTables) Option[*HeadTable] {
	tag := T("head")
	b, ok := face.tables[tag]
	if !ok {
		return None[*HeadTable]()
	}
	if len(b) < headTableSize {
		face.wc.dropped(tag, fmt.Sprintf("head table too small: %d bytes (need %d)", len(b), headTableSize), 0)
		return None[*HeadTable]()
	}
	return Some(&HeadTable{
		MagicNumber: b.U32(12),
		Flags:       b.U16(16),
		UnitsPerEm:  b.U16(18),
		MacStyle:    b.U16(44),
	})
}

// --- OS/2 table ------------------------------------------------------------

func parseOS2(face *FaceTables) Option[*OS2Table] {
	tag := T("OS/2")
	b, ok := face.tables[tag]
	if !ok {
		return None[*OS2Table]()
	}
	if len(b) < os2MinSize {
		face.wc.dropped(tag, fmt.Sprintf("OS/2 table too small: %d bytes (need %d)", len(b), os2MinSize), 0)
		return None[*OS2Table]()
	}
	os2 := &OS2Table{
		Version:     b.U16(0),
		WeightClass: b.U16(4),
		WidthClass:  b.U16(6),
		FsSelection: b.U16(62),
	}
	// ulCodePageRange1/2 were introduced with version 1. Version 0 tables
	// written by Apple tools may be as short as 68 bytes.
	if os2.Version >= 1 {
		if len(b) >= os2CodePagesSize {
			os2.HasCodePages = true
			os2.CodePageRange1 = b.U32(78)
			os2.CodePageRange2 = b.U32(82)
		} else {
			face.wc.add(tag, fmt.Sprintf("version %d table lacks code page ranges", os2.Version), SeverityMinor, 0)
		}
	}
	return Some(os2)
}

// --- post table ------------------------------------------------------------

func parsePost(face *FaceTables) Option[*PostTable] {
	tag := T("post")
	b, ok := face.tables[tag]
	if !ok {
		return None[*PostTable]()
	}
	if len(b) < postHeaderSize {
		face.wc.dropped(tag, fmt.Sprintf("post table too small: %d bytes (need %d)", len(b), postHeaderSize), 0)
		return None[*PostTable]()
	}
	return Some(&PostTable{
		Version:      b.U32(0),
		ItalicAngle:  float64(int32(b.U32(4))) / 65536.0,
		IsFixedPitch: b.U32(12),
	})
}

// --- name table ------------------------------------------------------------

// parseName decodes the name record directory. Records pointing outside of the
// table are skipped; a truncated record directory drops the whole table.
func parseName(face *FaceTables) Option[*NameTable] {
	tag := T("name")
	b, ok := face.tables[tag]
	if !ok {
		return None[*NameTable]()
	}
	if len(b) < nameHeaderSize {
		face.wc.dropped(tag, fmt.Sprintf("name table too short: %d", len(b)), 0)
		return None[*NameTable]()
	}
	format, count, strOff := b.U16(0), int(b.U16(2)), int(b.U16(4))
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		face.wc.dropped(tag, fmt.Sprintf("record section out of bounds: count=%d", count), 0)
		return None[*NameTable]()
	}
	table := &NameTable{Format: format, records: make([]NameRecord, 0, count)}
	for i := range count {
		rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
		strLen, recOff := int(u16(rec[8:10])), int(u16(rec[10:12]))
		value, err := b.view(strOff+recOff, strLen)
		if err != nil && strLen > 0 {
			face.wc.add(tag, fmt.Sprintf("name record %d out of bounds", i), SeverityMinor, 0)
			continue
		}
		table.records = append(table.records, NameRecord{
			PlatformID: PlatformID(u16(rec[0:2])),
			EncodingID: u16(rec[2:4]),
			LanguageID: u16(rec[4:6]),
			NameID:     u16(rec[6:8]),
			Value:      value,
		})
	}
	return Some(table)
}
