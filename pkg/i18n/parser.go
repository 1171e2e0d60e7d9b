package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser turns catalog content into translations keyed by language.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)
	// SupportsFileExtension accepts the extension with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension. It returns nil for
// formats without a parser.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}
