// Package resolver turns consumption items into tagged catalog references.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/nutrition"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/errors"
)

// Resolver batch-resolves item references against the catalog
type Resolver struct {
	store   outbound.CatalogStore
	metrics outbound.EngineMetrics
	logger  *zap.Logger
}

// New creates a resolver
func New(store outbound.CatalogStore, metrics outbound.EngineMetrics, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:   store,
		metrics: metrics,
		logger:  logger.Named("resolver"),
	}
}

// Resolve looks up every referenced food and recipe with one batch query per
// collection. Missing references come back unresolved; only store failures
// are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, items []nutrition.ConsumptionItem) ([]nutrition.ResolvedItem, error) {
	var foodIDs, recipeIDs []string
	for _, item := range items {
		switch item.SourceType {
		case nutrition.SourceFood:
			foodIDs = append(foodIDs, item.SourceID)
		case nutrition.SourceRecipe:
			recipeIDs = append(recipeIDs, item.SourceID)
		}
	}

	lookup, err := r.Lookup(ctx, foodIDs, recipeIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]nutrition.ResolvedItem, len(items))
	for i, item := range items {
		resolved[i] = lookup.Resolve(item)
	}
	r.reportUnresolved(resolved)
	return resolved, nil
}

// Lookup holds the catalog entries fetched for a set of references
type Lookup struct {
	foods   map[string]catalog.FoodItem
	recipes map[string]catalog.Recipe
}

// Lookup fetches the given ids without tagging items.
func (r *Resolver) Lookup(ctx context.Context, foodIDs, recipeIDs []string) (*Lookup, error) {
	l := &Lookup{}
	if len(foodIDs) > 0 {
		foods, err := r.store.GetFoodItems(ctx, dedupe(foodIDs))
		if err != nil {
			r.logger.Error("Failed to load foods", zap.Int("count", len(foodIDs)), zap.Error(err))
			return nil, errors.NewDataStoreError("get food items", err)
		}
		l.foods = foods
	}
	if len(recipeIDs) > 0 {
		recipes, err := r.store.GetRecipes(ctx, dedupe(recipeIDs))
		if err != nil {
			r.logger.Error("Failed to load recipes", zap.Int("count", len(recipeIDs)), zap.Error(err))
			return nil, errors.NewDataStoreError("get recipes", err)
		}
		l.recipes = recipes
	}
	return l, nil
}

// Resolve tags one item against the fetched entries.
func (l *Lookup) Resolve(item nutrition.ConsumptionItem) nutrition.ResolvedItem {
	switch item.SourceType {
	case nutrition.SourceFood:
		if f, ok := l.foods[item.SourceID]; ok {
			return nutrition.ResolvedFood(item, f)
		}
	case nutrition.SourceRecipe:
		if rc, ok := l.recipes[item.SourceID]; ok {
			return nutrition.ResolvedRecipe(item, rc)
		}
	}
	return nutrition.Unresolved(item)
}

func (r *Resolver) reportUnresolved(items []nutrition.ResolvedItem) {
	missing := 0
	for _, item := range items {
		if !item.Resolved() {
			missing++
			r.logger.Debug("Reference not found",
				zap.String("type", string(item.Item.SourceType)),
				zap.String("item_id", item.Item.SourceID),
			)
		}
	}
	if missing > 0 {
		r.metrics.AddUnresolvedReferences(missing)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
