package repository

import (
	"context"

	"lingo/internal/domain"
)

// WordSetRepository defines vocabulary storage operations
type WordSetRepository interface {
	ListWordSets(ctx context.Context) ([]domain.WordSet, error)
	SaveWordSets(ctx context.Context, sets []domain.WordSet) error
}
