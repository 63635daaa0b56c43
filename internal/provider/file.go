package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"lingo/internal/domain"
)

// ErrVocabularyNotFound is returned when the vocabulary file is missing
var ErrVocabularyNotFound = errors.New("couldn't find vocabulary file")

// DefaultVocabularyFile is the starter vocabulary shipped with the widget
const DefaultVocabularyFile = "public/lingo-starter.json"

// FileProvider reads the vocabulary from a local JSON file
type FileProvider struct {
	path string
}

// NewFileProvider creates the "custom" provider for path
func NewFileProvider(path string) *FileProvider {
	if path == "" {
		path = DefaultVocabularyFile
	}
	return &FileProvider{path: path}
}

// Name returns "custom"
func (p *FileProvider) Name() string {
	return "custom"
}

// GetData reads and decodes the whole file
func (p *FileProvider) GetData(ctx context.Context) ([]domain.WordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(p.path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrVocabularyNotFound, p.path)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var sets []domain.WordSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse vocabulary file: %w", err)
	}
	return sets, nil
}
