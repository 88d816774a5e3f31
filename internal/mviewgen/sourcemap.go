package mviewgen

import (
	"bytes"
	"encoding/json"
)

// SourceMap maps the expansions in a generated .go file back to the
// invocations in the .mview source. All line and column numbers are 0-indexed.
type SourceMap struct {
	// SourceFile is the .mview file path
	SourceFile string `json:"sourceFile"`

	// Mappings has one entry per expanded invocation, in file order
	Mappings []SourceMapping `json:"mappings"`
}

// SourceMapping maps the first line of one expansion.
type SourceMapping struct {
	// GoLine is the line in the generated .go file
	GoLine int `json:"goLine"`
	// GoCol is the column in the generated .go file
	GoCol int `json:"goCol"`
	// SrcLine is the line of the invocation in the .mview file
	SrcLine int `json:"srcLine"`
	// SrcCol is the column of the invocation in the .mview file
	SrcCol int `json:"srcCol"`
	// Length is the length of the generated code
	Length int `json:"length"`
	// Lines is the number of lines the generated code spans
	Lines int `json:"lines"`
}

// NewSourceMap creates a new empty source map.
func NewSourceMap(sourceFile string) *SourceMap {
	return &SourceMap{
		SourceFile: sourceFile,
		Mappings:   make([]SourceMapping, 0),
	}
}

// AddMapping adds a new position mapping.
func (sm *SourceMap) AddMapping(m SourceMapping) {
	sm.Mappings = append(sm.Mappings, m)
}

// GoToSource converts a .go line to the line of the invocation that
// produced it. Returns false when the line is not inside an expansion.
func (sm *SourceMap) GoToSource(goLine int) (srcLine, srcCol int, found bool) {
	for _, m := range sm.Mappings {
		if goLine >= m.GoLine && goLine < m.GoLine+max(m.Lines, 1) {
			return m.SrcLine, m.SrcCol, true
		}
	}
	return goLine, 0, false
}

// SourceToGo converts an invocation position to the start of its expansion.
func (sm *SourceMap) SourceToGo(srcLine, srcCol int) (goLine, goCol int, found bool) {
	for _, m := range sm.Mappings {
		if m.SrcLine == srcLine && m.SrcCol == srcCol {
			return m.GoLine, m.GoCol, true
		}
	}
	return srcLine, srcCol, false
}

// shiftFrom moves every mapping at or after line by delta lines.
func (sm *SourceMap) shiftFrom(line, delta int) {
	if delta == 0 {
		return
	}
	for i := range sm.Mappings {
		if sm.Mappings[i].GoLine >= line {
			sm.Mappings[i].GoLine += delta
		}
	}
}

// ToJSON serializes the source map to JSON.
func (sm *SourceMap) ToJSON() ([]byte, error) {
	return json.MarshalIndent(sm, "", "  ")
}

// ParseSourceMap parses a source map from JSON.
func ParseSourceMap(data []byte) (*SourceMap, error) {
	var sm SourceMap
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, err
	}
	return &sm, nil
}

// SourceMapFileName returns the source map filename for a given generated file.
// e.g., "page_mview.go" -> "page_mview.go.map"
func SourceMapFileName(goFile string) string {
	return goFile + ".map"
}

// firstLineAfterImports finds the first non-blank line after the import
// section, or after the package clause when there are no imports.
func firstLineAfterImports(code []byte) int {
	lines := bytes.Split(code, []byte("\n"))
	inImportBlock := false
	headerEnd := -1

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)

		switch {
		case inImportBlock:
			if len(trimmed) == 1 && trimmed[0] == ')' {
				inImportBlock = false
				headerEnd = i
			}
			continue
		case bytes.HasPrefix(trimmed, []byte("import (")):
			inImportBlock = true
			continue
		case bytes.HasPrefix(trimmed, []byte("import ")), bytes.HasPrefix(trimmed, []byte("package ")):
			headerEnd = i
			continue
		}

		if headerEnd >= 0 && len(trimmed) > 0 {
			return i
		}
	}

	return len(lines) // Fallback if no content found
}
