package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/normalize"
	"portfolio/internal/store"
)

// entityRef mirrors normalize's pointer-receiver constraint.
type entityRef[T any] interface {
	*T
	domain.Entity
}

// Resource is the CRUD service for one of the five collections. The five
// instances differ only in their accessor closures and, for projects, the
// legacy-field reconcile hook; everything else is this one implementation.
//
// Every operation is a whole-document read-mutate-write cycle. Overlapping
// writes are last-write-wins.
type Resource[T any, PT entityRef[T]] struct {
	name      string
	store     store.Store
	logger    *slog.Logger
	items     func(*domain.PortfolioDocument) []T
	setItems  func(*domain.PortfolioDocument, []T)
	reconcile normalize.ReconcileFunc

	// now is swappable for deterministic timestamps in tests
	now func() time.Time
}

func NewResource[T any, PT entityRef[T]](
	name string,
	st store.Store,
	logger *slog.Logger,
	items func(*domain.PortfolioDocument) []T,
	setItems func(*domain.PortfolioDocument, []T),
	reconcile normalize.ReconcileFunc,
) *Resource[T, PT] {
	return &Resource[T, PT]{
		name:      name,
		store:     st,
		logger:    logger,
		items:     items,
		setItems:  setItems,
		reconcile: reconcile,
		now:       time.Now,
	}
}

// Name is the collection name as it appears in API paths.
func (r *Resource[T, PT]) Name() string { return r.name }

// List returns the full collection, hidden entities included. This is the
// admin view; the public projection lives on PortfolioService.
func (r *Resource[T, PT]) List(ctx context.Context) ([]T, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	items := r.items(doc)
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create normalizes the body into a new entity, appends it, and persists.
func (r *Resource[T, PT]) Create(ctx context.Context, body map[string]any) (T, error) {
	var zero T

	doc, err := r.store.Read(ctx)
	if err != nil {
		return zero, err
	}

	items := r.items(doc)
	merged := normalize.ForWrite(nil, body, len(items), r.reconcile, r.now())

	entity, err := entityFromMap[T](merged)
	if err != nil {
		return zero, err
	}

	r.setItems(doc, append(items, entity))
	if err := r.store.Write(ctx, doc); err != nil {
		return zero, err
	}

	r.logger.Info("entity created", "collection", r.name, "id", PT(&entity).Meta().ID)
	return entity, nil
}

// Update merges the body over the entity whose id the body carries. The id
// itself is immutable.
func (r *Resource[T, PT]) Update(ctx context.Context, id string, body map[string]any) (T, error) {
	var zero T

	doc, err := r.store.Read(ctx)
	if err != nil {
		return zero, err
	}

	items := r.items(doc)
	idx := r.indexOf(items, id)
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s %q", domain.ErrNotFound, r.name, id)
	}

	existing, err := entityToMap(items[idx])
	if err != nil {
		return zero, err
	}

	merged := normalize.ForWrite(existing, body, len(items), r.reconcile, r.now())
	entity, err := entityFromMap[T](merged)
	if err != nil {
		return zero, err
	}

	items[idx] = entity
	r.setItems(doc, items)
	if err := r.store.Write(ctx, doc); err != nil {
		return zero, err
	}

	r.logger.Info("entity updated", "collection", r.name, "id", id)
	return entity, nil
}

// Delete removes the entity by id. Hard delete: no tombstone, no cascade.
func (r *Resource[T, PT]) Delete(ctx context.Context, id string) error {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return err
	}

	items := r.items(doc)
	idx := r.indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, r.name, id)
	}

	r.setItems(doc, append(items[:idx:idx], items[idx+1:]...))
	if err := r.store.Write(ctx, doc); err != nil {
		return err
	}

	r.logger.Info("entity deleted", "collection", r.name, "id", id)
	return nil
}

// Reorder swaps the order values of two entities and persists, returning the
// updated pair. Unlike two independent updates, both sides land in one write.
func (r *Resource[T, PT]) Reorder(ctx context.Context, idA, idB string) ([]T, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	items := r.items(doc)
	ia, ib, err := normalize.SwapOrder[T, PT](items, idA, idB, r.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %q/%q", domain.ErrNotFound, r.name, idA, idB)
		}
		return nil, err
	}

	r.setItems(doc, items)
	if err := r.store.Write(ctx, doc); err != nil {
		return nil, err
	}

	r.logger.Info("entities reordered", "collection", r.name, "id_a", idA, "id_b", idB)
	return []T{items[ia], items[ib]}, nil
}

func (r *Resource[T, PT]) indexOf(items []T, id string) int {
	for i := range items {
		if PT(&items[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

// entityToMap and entityFromMap convert between the typed model and the
// map form the normalizer merges. The JSON round trip keeps field names and
// value types identical to the persisted document.
func entityToMap[T any](entity T) (map[string]any, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	return m, nil
}

func entityFromMap[T any](m map[string]any) (T, error) {
	var entity T
	payload, err := json.Marshal(m)
	if err != nil {
		return entity, fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(payload, &entity); err != nil {
		return entity, fmt.Errorf("%w: malformed entity fields: %v", domain.ErrValidation, err)
	}
	return entity, nil
}
