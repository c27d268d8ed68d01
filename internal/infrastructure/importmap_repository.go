package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Francouer/deno-sync/internal/domain"
)

type ImportMapRepositoryImpl struct {
	logger   domain.Logger
	fileRepo domain.FileRepository
}

// NewImportMapRepository creates a new deno.json repository
func NewImportMapRepository(logger domain.Logger, fileRepo domain.FileRepository) domain.ImportMapRepository {
	return &ImportMapRepositoryImpl{
		logger:   logger,
		fileRepo: fileRepo,
	}
}

// rawMember is one object member kept as its original bytes
type rawMember struct {
	key string
	raw json.RawMessage
}

// ImportMapDocumentImpl decodes deno.json at the token level so that member
// order and the exact bytes of every untouched value survive a round trip.
// Only the imports object is decomposed further; all other top-level members
// are carried opaquely.
type ImportMapDocumentImpl struct {
	members    []rawMember
	imports    []rawMember
	hasImports bool
	byAlias    map[string]int
}

func (r *ImportMapRepositoryImpl) Load(importMapPath string) (domain.ImportMapDocument, error) {
	if !r.fileRepo.FileExists(importMapPath) {
		return nil, fmt.Errorf("import map file not found at: %s", importMapPath)
	}

	data, err := r.fileRepo.ReadFile(importMapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read import map file: %w", err)
	}

	doc, err := decodeImportMap(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", importMapPath, err)
	}

	return doc, nil
}

func decodeImportMap(data []byte) (*ImportMapDocumentImpl, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top level is not a JSON object")
	}

	doc := &ImportMapDocumentImpl{byAlias: map[string]int{}}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := keyTok.(string)

		if key == "imports" && !doc.hasImports {
			if err := doc.decodeImports(dec); err != nil {
				return nil, err
			}
			doc.members = append(doc.members, rawMember{key: key})
			continue
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		doc.members = append(doc.members, rawMember{key: key, raw: raw})
	}

	// Consume the closing brace and require clean EOF after it
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return doc, nil
}

func (d *ImportMapDocumentImpl) decodeImports(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("imports is not a JSON object")
	}

	for dec.More() {
		aliasTok, err := dec.Token()
		if err != nil {
			return err
		}
		alias := aliasTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		d.byAlias[alias] = len(d.imports)
		d.imports = append(d.imports, rawMember{key: alias, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	d.hasImports = true
	return nil
}

// Entries returns the textual imports members in document order.
// Non-string values are carried through Encode verbatim but never
// surfaced as entries.
func (d *ImportMapDocumentImpl) Entries() []domain.ImportEntry {
	var entries []domain.ImportEntry
	for _, member := range d.imports {
		var specifier string
		if err := json.Unmarshal(member.raw, &specifier); err != nil {
			continue
		}
		entries = append(entries, domain.ImportEntry{Alias: member.key, Specifier: specifier})
	}
	return entries
}

func (d *ImportMapDocumentImpl) SetSpecifier(alias, specifier string) bool {
	idx, ok := d.byAlias[alias]
	if !ok {
		return false
	}

	raw, err := json.Marshal(specifier)
	if err != nil {
		return false
	}

	d.imports[idx].raw = raw
	return true
}

// Encode rebuilds the document with two-space indentation and a single
// trailing newline, keeping every member in its original position
func (d *ImportMapDocumentImpl) Encode() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')

	for i, member := range d.members {
		if i > 0 {
			compact.WriteByte(',')
		}

		key, err := json.Marshal(member.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')

		if member.key == "imports" && member.raw == nil {
			d.encodeImports(&compact)
			continue
		}
		compact.Write(member.raw)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func (d *ImportMapDocumentImpl) encodeImports(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, member := range d.imports {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(member.key)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(member.raw)
	}
	buf.WriteByte('}')
}
