package main

import (
	"context"
	"fmt"

	"lingo/internal/config"
	"lingo/internal/provider"

	"go.uber.org/zap"
)

// runImport copies the vocabulary file into the target store
func runImport(ctx context.Context, opts *options, logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.file != "" {
		cfg.VocabularyFile = opts.file
	}

	if !isStore(opts.target) {
		return fmt.Errorf("unsupported import target %q (postgres, sqlite or redis)", opts.target)
	}

	sets, err := provider.NewFileProvider(cfg.VocabularyFile).GetData(ctx)
	if err != nil {
		return err
	}

	repo, closeStore, err := openStore(ctx, opts.target, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := repo.SaveWordSets(ctx, sets); err != nil {
		return fmt.Errorf("failed to import vocabulary: %w", err)
	}

	logger.Info("Vocabulary imported",
		zap.String("to", opts.target),
		zap.String("file", cfg.VocabularyFile),
		zap.Int("word_sets", len(sets)),
	)
	return nil
}
