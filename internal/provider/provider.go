package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"lingo/internal/domain"
	"lingo/internal/repository"
)

var (
	// ErrUnknownProvider is returned when no provider is registered under a name.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrDuplicateProvider is returned when a name is registered twice.
	ErrDuplicateProvider = errors.New("provider already registered")
)

// Provider supplies the full vocabulary list
type Provider interface {
	// Name returns the name the provider is registered under
	Name() string

	// GetData fetches every word set in a single shot
	GetData(ctx context.Context) ([]domain.WordSet, error)
}

// Registry maps provider names to implementations
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a registry holding the given providers
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a provider under its name
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, p.Name())
	}
	r.providers[p.Name()] = p
	return nil
}

// Lookup returns the provider registered under name
func (r *Registry) Lookup(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names lists registered provider names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StoreProvider serves word sets from a repository
type StoreProvider struct {
	name string
	repo repository.WordSetRepository
}

// NewStoreProvider creates a provider backed by repo
func NewStoreProvider(name string, repo repository.WordSetRepository) *StoreProvider {
	return &StoreProvider{name: name, repo: repo}
}

// Name returns the provider name
func (p *StoreProvider) Name() string {
	return p.name
}

// GetData lists every stored word set
func (p *StoreProvider) GetData(ctx context.Context) ([]domain.WordSet, error) {
	sets, err := p.repo.ListWordSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	return sets, nil
}
