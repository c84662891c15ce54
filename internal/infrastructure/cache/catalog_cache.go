package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// DefaultCatalogTTL applies when no TTL is configured
const DefaultCatalogTTL = 10 * time.Minute

// CatalogCache is a read-through cache in front of a catalog store.
// Single and batch id lookups are cached; candidate queries pass through.
// Cache failures are logged and never fail a lookup.
type CatalogCache struct {
	store   outbound.CatalogStore
	cache   outbound.CacheRepository
	metrics outbound.EngineMetrics
	prefix  string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCatalogCache wraps store with cache
func NewCatalogCache(store outbound.CatalogStore, cache outbound.CacheRepository, metrics outbound.EngineMetrics, prefix string, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{
		store:   store,
		cache:   cache,
		metrics: metrics,
		prefix:  prefix,
		ttl:     ttl,
		logger:  logger.Named("catalog-cache"),
	}
}

var _ outbound.CatalogStore = (*CatalogCache)(nil)

func (c *CatalogCache) foodKey(id string) string   { return c.prefix + "food:" + id }
func (c *CatalogCache) recipeKey(id string) string { return c.prefix + "recipe:" + id }

// GetFoodItem returns the cached food or loads and caches it
func (c *CatalogCache) GetFoodItem(ctx context.Context, id string) (*catalog.FoodItem, error) {
	var food catalog.FoodItem
	if c.lookup(ctx, "food", c.foodKey(id), &food) {
		return &food, nil
	}

	loaded, err := c.store.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store1(ctx, c.foodKey(id), loaded)
	return loaded, nil
}

// GetRecipe returns the cached recipe or loads and caches it
func (c *CatalogCache) GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error) {
	var recipe catalog.Recipe
	if c.lookup(ctx, "recipe", c.recipeKey(id), &recipe) {
		return &recipe, nil
	}

	loaded, err := c.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store1(ctx, c.recipeKey(id), loaded)
	return loaded, nil
}

// GetFoodItems serves cached foods and loads the rest in one batch
func (c *CatalogCache) GetFoodItems(ctx context.Context, ids []string) (map[string]catalog.FoodItem, error) {
	return getMany(ctx, c, "food", ids, c.foodKey, c.store.GetFoodItems)
}

// GetRecipes serves cached recipes and loads the rest in one batch
func (c *CatalogCache) GetRecipes(ctx context.Context, ids []string) (map[string]catalog.Recipe, error) {
	return getMany(ctx, c, "recipe", ids, c.recipeKey, c.store.GetRecipes)
}

// QueryCompatibleFoods delegates to the store
func (c *CatalogCache) QueryCompatibleFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	return c.store.QueryCompatibleFoods(ctx, q)
}

// QueryFoods delegates to the store
func (c *CatalogCache) QueryFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	return c.store.QueryFoods(ctx, q)
}

// InvalidateFood drops a cached food
func (c *CatalogCache) InvalidateFood(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, c.foodKey(id))
}

// InvalidateRecipe drops a cached recipe
func (c *CatalogCache) InvalidateRecipe(ctx context.Context, id string) error {
	return c.cache.Delete(ctx, c.recipeKey(id))
}

// Writer returns a CatalogWriter that saves through w and then drops
// the cached copy of each saved entry
func (c *CatalogCache) Writer(w outbound.CatalogWriter) *InvalidatingWriter {
	return &InvalidatingWriter{writer: w, cache: c}
}

// InvalidatingWriter keeps the catalog cache consistent with writes
type InvalidatingWriter struct {
	writer outbound.CatalogWriter
	cache  *CatalogCache
}

var _ outbound.CatalogWriter = (*InvalidatingWriter)(nil)

// SaveFoodItem saves the food and invalidates its cache entry
func (w *InvalidatingWriter) SaveFoodItem(ctx context.Context, food *catalog.FoodItem) error {
	if err := w.writer.SaveFoodItem(ctx, food); err != nil {
		return err
	}
	if err := w.cache.InvalidateFood(ctx, food.ID); err != nil {
		w.cache.logger.Warn("Cache invalidation failed", zap.String("food_id", food.ID), zap.Error(err))
	}
	return nil
}

// SaveRecipe saves the recipe and invalidates its cache entry
func (w *InvalidatingWriter) SaveRecipe(ctx context.Context, recipe *catalog.Recipe) error {
	if err := w.writer.SaveRecipe(ctx, recipe); err != nil {
		return err
	}
	if err := w.cache.InvalidateRecipe(ctx, recipe.ID); err != nil {
		w.cache.logger.Warn("Cache invalidation failed", zap.String("recipe_id", recipe.ID), zap.Error(err))
	}
	return nil
}

func (c *CatalogCache) lookup(ctx context.Context, entity, key string, dst interface{}) bool {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, outbound.ErrCacheMiss) {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.metrics.ObserveCacheLookup(entity, 0, 1)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		c.metrics.ObserveCacheLookup(entity, 0, 1)
		return false
	}
	c.metrics.ObserveCacheLookup(entity, 1, 0)
	return true
}

func (c *CatalogCache) store1(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func getMany[T any](
	ctx context.Context,
	c *CatalogCache,
	entity string,
	ids []string,
	keyFor func(string) string,
	load func(context.Context, []string) (map[string]T, error),
) (map[string]T, error) {
	out := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(id)
	}

	cached, err := c.cache.MGet(ctx, keys)
	if err != nil {
		c.logger.Warn("Cache batch read failed", zap.String("entity", entity), zap.Error(err))
		cached = nil
	}

	var missing []string
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		var v T
		if data, ok := cached[keys[i]]; ok && json.Unmarshal(data, &v) == nil {
			out[id] = v
			continue
		}
		missing = append(missing, id)
	}
	c.metrics.ObserveCacheLookup(entity, len(out), len(missing))

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}

	fresh := make(map[string][]byte, len(loaded))
	for id, v := range loaded {
		out[id] = v
		if data, err := json.Marshal(v); err == nil {
			fresh[keyFor(id)] = data
		}
	}
	if err := c.cache.MSet(ctx, fresh, c.ttl); err != nil {
		c.logger.Warn("Cache batch write failed", zap.String("entity", entity), zap.Error(err))
	}

	return out, nil
}
