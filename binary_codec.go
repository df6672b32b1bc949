package catalog

import (
	"encoding/binary"
	"fmt"
	"sort"
)

const (
	binaryMagic = "I18N"

	v1HeaderSize = 20
	v2HeaderSize = 24

	fnvSeed = 0x811C9DC5
)

// sniffBinary reports whether src looks like a binary catalog: first 4
// bytes equal "I18N" and the 5th byte is 1 or 2 (spec §4.2 "Format sniffing").
func sniffBinary(src []byte) bool {
	if len(src) < 5 {
		return false
	}
	if string(src[:4]) != binaryMagic {
		return false
	}
	return src[4] == 1 || src[4] == 2
}

// binaryEntryRecord is one row of the entry table, prior to string-table layout.
type binaryEntryRecord struct {
	base       string
	variant    string
	textOffset uint32
	textLength uint32
}

// parseBinary decodes a v1 or v2 binary catalog (spec §4.2). Checksum
// mismatches are fatal only in strict mode.
func parseBinary(src []byte, strict bool) (*CatalogSnapshot, error) {
	if len(src) < v1HeaderSize {
		return nil, fmt.Errorf("%w: header too short", ErrTruncated)
	}
	if string(src[0:4]) != binaryMagic {
		return nil, ErrBadMagic
	}

	version := src[4]
	if version != 1 && version != 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	entryCount := binary.LittleEndian.Uint32(src[8:12])
	stringTableSize := binary.LittleEndian.Uint32(src[12:16])
	checksum := binary.LittleEndian.Uint32(src[16:20])

	var pluralRule PluralRule
	headerSize := v1HeaderSize
	metadataSize := uint32(0)

	if version == 2 {
		if len(src) < v2HeaderSize {
			return nil, fmt.Errorf("%w: v2 header too short", ErrTruncated)
		}
		pluralRule = PluralRule(src[6])
		metadataSize = binary.LittleEndian.Uint32(src[20:24])
		headerSize = v2HeaderSize
	}

	offset := headerSize
	if len(src) < offset+int(metadataSize) {
		return nil, fmt.Errorf("%w: metadata block", ErrTruncated)
	}
	metadataBlock := src[offset : offset+int(metadataSize)]
	offset += int(metadataSize)

	var meta Metadata
	meta.PluralRule = pluralRule
	if version == 2 && metadataSize > 0 {
		m, err := decodeMetadataBlock(metadataBlock)
		if err != nil {
			return nil, err
		}
		meta = m
		meta.PluralRule = pluralRule
	}

	records := make([]binaryEntryRecord, 0, entryCount)
	for i := uint32(0); i < entryCount; i++ {
		if len(src) < offset+2 {
			return nil, fmt.Errorf("%w: entry table", ErrTruncated)
		}
		baseLen := int(src[offset])
		offset++
		if len(src) < offset+baseLen {
			return nil, fmt.Errorf("%w: entry base", ErrTruncated)
		}
		base := foldToken(string(src[offset : offset+baseLen]))
		offset += baseLen

		if baseLen < minHexTokenLen || baseLen > maxHexTokenLen {
			return nil, fmt.Errorf("%w: base length %d", ErrBadTokenLength, baseLen)
		}

		if len(src) < offset+1 {
			return nil, fmt.Errorf("%w: entry variant length", ErrTruncated)
		}
		variantLen := int(src[offset])
		offset++
		if len(src) < offset+variantLen {
			return nil, fmt.Errorf("%w: entry variant", ErrTruncated)
		}
		variant := foldToken(string(src[offset : offset+variantLen]))
		offset += variantLen
		if variant != "" && !isValidVariant(variant) {
			return nil, fmt.Errorf("%w: variant %q", ErrBadTokenLength, variant)
		}

		if len(src) < offset+8 {
			return nil, fmt.Errorf("%w: entry text pointer", ErrTruncated)
		}
		textOffset := binary.LittleEndian.Uint32(src[offset : offset+4])
		textLength := binary.LittleEndian.Uint32(src[offset+4 : offset+8])
		offset += 8

		records = append(records, binaryEntryRecord{base: base, variant: variant, textOffset: textOffset, textLength: textLength})
	}

	entryTableEnd := offset
	if len(src) < offset+int(stringTableSize) {
		return nil, fmt.Errorf("%w: string table", ErrTruncated)
	}
	stringsBase := src[offset : offset+int(stringTableSize)]

	// Checksum verification.
	var sum uint32
	if version == 1 {
		sum = fnv1a32(stringsBase)
	} else {
		entryTableBytes := src[headerSize+int(metadataSize) : entryTableEnd]
		combined := make([]byte, 0, len(metadataBlock)+len(entryTableBytes)+len(stringsBase))
		combined = append(combined, metadataBlock...)
		combined = append(combined, entryTableBytes...)
		combined = append(combined, stringsBase...)
		sum = fnv1a32(combined)
	}
	if sum != checksum && strict {
		return nil, ErrChecksumMismatch
	}

	snap := newSnapshot()
	snap.metadata = meta

	for _, rec := range records {
		if uint64(rec.textOffset)+uint64(rec.textLength) > uint64(len(stringsBase)) {
			return nil, fmt.Errorf("%w: text range out of bounds", ErrTruncated)
		}
		text := string(stringsBase[rec.textOffset : rec.textOffset+rec.textLength])
		if err := snap.addEntry(rec.base, rec.variant, text, ""); err != nil {
			return nil, err
		}
	}

	if snap.entryCount() == 0 {
		return nil, ErrEmptyCatalog
	}

	snap.populateStyleRegistry()
	return snap, nil
}

// decodeMetadataBlock parses the v2 metadata block: two-byte lengths for
// locale/fallback/note followed by the concatenated strings (spec §4.2).
func decodeMetadataBlock(b []byte) (Metadata, error) {
	if len(b) < 6 {
		return Metadata{}, ErrBadMetadataBlock
	}
	localeLen := int(binary.LittleEndian.Uint16(b[0:2]))
	fallbackLen := int(binary.LittleEndian.Uint16(b[2:4]))
	noteLen := int(binary.LittleEndian.Uint16(b[4:6]))

	want := 6 + localeLen + fallbackLen + noteLen
	if len(b) != want {
		return Metadata{}, ErrBadMetadataBlock
	}

	pos := 6
	locale := string(b[pos : pos+localeLen])
	pos += localeLen
	fallback := string(b[pos : pos+fallbackLen])
	pos += fallbackLen
	note := string(b[pos : pos+noteLen])

	return Metadata{Locale: locale, Fallback: fallback, Note: note}, nil
}

// exportBinary writes the snapshot in v2 binary form (spec §4.2 "Writer").
// Entries are sorted by (base, variant) ascending for deterministic output.
func exportBinary(snap *CatalogSnapshot) []byte {
	type keyed struct {
		base, variant, text string
	}
	rows := make([]keyed, 0, snap.entryCount())
	for full, entry := range snap.catalog {
		base, variant, _ := splitVariant(full)
		rows = append(rows, keyed{base: base, variant: variant, text: entry.Template})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].base != rows[j].base {
			return rows[i].base < rows[j].base
		}
		return rows[i].variant < rows[j].variant
	})

	locale, fallback, note := []byte(snap.metadata.Locale), []byte(snap.metadata.Fallback), []byte(snap.metadata.Note)
	metadataBlock := make([]byte, 6+len(locale)+len(fallback)+len(note))
	binary.LittleEndian.PutUint16(metadataBlock[0:2], uint16(len(locale)))
	binary.LittleEndian.PutUint16(metadataBlock[2:4], uint16(len(fallback)))
	binary.LittleEndian.PutUint16(metadataBlock[4:6], uint16(len(note)))
	pos := 6
	pos += copy(metadataBlock[pos:], locale)
	pos += copy(metadataBlock[pos:], fallback)
	copy(metadataBlock[pos:], note)

	var entryTable []byte
	var stringTable []byte
	for _, r := range rows {
		textOffset := uint32(len(stringTable))
		textBytes := []byte(r.text)
		stringTable = append(stringTable, textBytes...)

		rec := make([]byte, 0, 1+len(r.base)+1+len(r.variant)+8)
		rec = append(rec, byte(len(r.base)))
		rec = append(rec, r.base...)
		rec = append(rec, byte(len(r.variant)))
		rec = append(rec, r.variant...)

		lenBuf := make([]byte, 8)
		binary.LittleEndian.PutUint32(lenBuf[0:4], textOffset)
		binary.LittleEndian.PutUint32(lenBuf[4:8], uint32(len(textBytes)))
		rec = append(rec, lenBuf...)

		entryTable = append(entryTable, rec...)
	}

	combined := make([]byte, 0, len(metadataBlock)+len(entryTable)+len(stringTable))
	combined = append(combined, metadataBlock...)
	combined = append(combined, entryTable...)
	combined = append(combined, stringTable...)
	checksum := fnv1a32(combined)

	header := make([]byte, v2HeaderSize)
	copy(header[0:4], binaryMagic)
	header[4] = 2
	header[5] = 0
	header[6] = byte(snap.metadata.PluralRule)
	header[7] = 0
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(rows)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(stringTable)))
	binary.LittleEndian.PutUint32(header[16:20], checksum)
	binary.LittleEndian.PutUint32(header[20:24], uint32(len(metadataBlock)))

	out := make([]byte, 0, len(header)+len(combined))
	out = append(out, header...)
	out = append(out, combined...)
	return out
}
