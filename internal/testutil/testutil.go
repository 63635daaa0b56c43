package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"lingo/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWordSet creates a test word set in English/Spanish
func NewTestWordSet(category, nativeWord, foreignWord string) domain.WordSet {
	return domain.WordSet{
		Category:        category,
		NativeLanguage:  "en",
		ForeignLanguage: "es",
		NativeWord:      nativeWord,
		ForeignWord:     foreignWord,
	}
}

// NewTestVocabulary returns a small vocabulary list
func NewTestVocabulary() []domain.WordSet {
	return []domain.WordSet{
		NewTestWordSet("Food", "apple", "manzana"),
		NewTestWordSet("Food", "bread", "pan"),
		NewTestWordSet("Animals", "dog", "perro"),
		NewTestWordSet("Animals", "cat", "gato"),
	}
}

// NewTestDisplayConfig returns a display config with short timeouts
func NewTestDisplayConfig() domain.DisplayConfig {
	cfg := domain.DefaultDisplayConfig()
	cfg.NativeTimeout = 1000
	cfg.ForeignTimeout = 2000
	cfg.UpdateInterval = 500
	return cfg
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}
