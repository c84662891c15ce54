// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/patient"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("record not found")

// ErrCacheMiss is returned by caches when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// FoodQuery filters the candidate pool for meal composition.
// Allergens match food names as case-insensitive substrings.
// An empty DoshaParts disables dosha filtering.
type FoodQuery struct {
	ExcludeIDs []string
	Allergens  []string
	DoshaParts []catalog.Dosha
	Limit      int
}

// CatalogStore is the read-only food and recipe catalog
type CatalogStore interface {
	// Single lookups return ErrNotFound for unknown ids
	GetFoodItem(ctx context.Context, id string) (*catalog.FoodItem, error)
	GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error)

	// Batch lookups omit unknown ids from the result
	GetFoodItems(ctx context.Context, ids []string) (map[string]catalog.FoodItem, error)
	GetRecipes(ctx context.Context, ids []string) (map[string]catalog.Recipe, error)

	// Candidate retrieval. QueryCompatibleFoods keeps foods whose dosha tags
	// intersect q.DoshaParts or contain "all"; QueryFoods ignores q.DoshaParts.
	QueryCompatibleFoods(ctx context.Context, q FoodQuery) ([]catalog.FoodItem, error)
	QueryFoods(ctx context.Context, q FoodQuery) ([]catalog.FoodItem, error)
}

// CatalogWriter stores catalog entries; used by seeding
type CatalogWriter interface {
	SaveFoodItem(ctx context.Context, food *catalog.FoodItem) error
	SaveRecipe(ctx context.Context, recipe *catalog.Recipe) error
}

// PatientRepository reads and stores patients
type PatientRepository interface {
	FindByID(ctx context.Context, id string) (*patient.Patient, error)
	Save(ctx context.Context, p *patient.Patient) error
}

// DietChartRepository persists diet charts
type DietChartRepository interface {
	Save(ctx context.Context, chart *dietchart.Chart) error
	FindByID(ctx context.Context, id string) (*dietchart.Chart, error)
	FindByPatient(ctx context.Context, patientID string, offset, limit int) ([]*dietchart.Chart, int, error)
	UpdateStatus(ctx context.Context, id string, status dietchart.Status, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Batch operations
	MGet(ctx context.Context, keys []string) (map[string][]byte, error)
	MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error
}
