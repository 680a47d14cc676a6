// Package catalog models the product catalog reference carried through the
// decision pipeline. Catalog CRUD lives elsewhere; the core only needs a
// stable reference and focus matching.
package catalog

import (
	"context"
	"sync"

	"dermis/internal/profile"
	"dermis/internal/taxonomy"
)

// Product is one catalog entry as the decision layer sees it.
type Product struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Concerns      []taxonomy.ConcernKey    `json:"concerns"`
	Ingredients   []taxonomy.IngredientKey `json:"ingredients"`
	BudgetSegment profile.BudgetSegment    `json:"budget_segment"`
}

// MatchesFocus reports whether the product belongs to the given primary focus.
func (p Product) MatchesFocus(focus taxonomy.PrimaryFocus) bool {
	return taxonomy.ProductConcernsMatchPrimaryFocus(p.Concerns, focus)
}

// Ref identifies the catalog snapshot a decision was made against.
type Ref struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Size    int    `json:"size"`
}

// Source supplies the catalog snapshot to the pipeline boundary.
type Source interface {
	Ref(ctx context.Context) (Ref, error)
	Products(ctx context.Context) ([]Product, error)
}

// MemorySource is an in-memory Source for tests and single-node deployments.
type MemorySource struct {
	mu       sync.RWMutex
	ref      Ref
	products []Product
}

// NewMemorySource builds a source over a fixed product list.
func NewMemorySource(ref Ref, products []Product) *MemorySource {
	ref.Size = len(products)
	return &MemorySource{ref: ref, products: products}
}

func (s *MemorySource) Ref(_ context.Context) (Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ref, nil
}

func (s *MemorySource) Products(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Replace swaps the catalog snapshot.
func (s *MemorySource) Replace(ref Ref, products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref.Size = len(products)
	s.ref = ref
	s.products = products
}
