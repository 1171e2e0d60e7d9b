package i18n

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// TranslationAdapter is a source of translations keyed by language.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return map[string]map[string]any{}, nil
	}
	return a.Data, nil
}

// FileAdapter reads a single catalog file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter chooses the parser from the file extension.
func NewFileAdapter(path string) (*FileAdapter, error) {
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	return NewFileAdapterWithParser(parser, path)
}

func NewFileAdapterWithParser(parser Parser, path string) (*FileAdapter, error) {
	if parser == nil || path == "" {
		return nil, fmt.Errorf("%w: parser and path are required", ErrUnsupportedFile)
	}
	return &FileAdapter{parser: parser, path: path}, nil
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingFileCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, a.path)
	}

	translations, err := a.parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return translations, nil
}
