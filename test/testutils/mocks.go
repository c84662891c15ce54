// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/patient"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// MockCatalogStore provides a mock implementation of CatalogStore
type MockCatalogStore struct {
	mock.Mock
}

// GetFoodItem finds a food by ID
func (m *MockCatalogStore) GetFoodItem(ctx context.Context, id string) (*catalog.FoodItem, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*catalog.FoodItem); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetRecipe finds a recipe by ID
func (m *MockCatalogStore) GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*catalog.Recipe); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetFoodItems loads foods by ID
func (m *MockCatalogStore) GetFoodItems(ctx context.Context, ids []string) (map[string]catalog.FoodItem, error) {
	args := m.Called(ctx, ids)
	if f, ok := args.Get(0).(map[string]catalog.FoodItem); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetRecipes loads recipes by ID
func (m *MockCatalogStore) GetRecipes(ctx context.Context, ids []string) (map[string]catalog.Recipe, error) {
	args := m.Called(ctx, ids)
	if r, ok := args.Get(0).(map[string]catalog.Recipe); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// QueryCompatibleFoods returns dosha-compatible candidates
func (m *MockCatalogStore) QueryCompatibleFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	args := m.Called(ctx, q)
	if f, ok := args.Get(0).([]catalog.FoodItem); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// QueryFoods returns candidates without dosha filtering
func (m *MockCatalogStore) QueryFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	args := m.Called(ctx, q)
	if f, ok := args.Get(0).([]catalog.FoodItem); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPatientRepository provides a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

// FindByID finds a patient by ID
func (m *MockPatientRepository) FindByID(ctx context.Context, id string) (*patient.Patient, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*patient.Patient); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save saves a patient
func (m *MockPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDietChartRepository provides a mock implementation of DietChartRepository
type MockDietChartRepository struct {
	mock.Mock
	charts map[string]*dietchart.Chart
	mu     sync.RWMutex
}

// NewMockDietChartRepository creates a new mock diet chart repository
func NewMockDietChartRepository() *MockDietChartRepository {
	return &MockDietChartRepository{charts: make(map[string]*dietchart.Chart)}
}

// Save saves a chart
func (m *MockDietChartRepository) Save(ctx context.Context, c *dietchart.Chart) error {
	args := m.Called(ctx, c)

	if args.Error(0) == nil {
		m.mu.Lock()
		m.charts[c.ID] = c
		m.mu.Unlock()
	}

	return args.Error(0)
}

// FindByID finds a chart by ID, preferring charts stored through Save
func (m *MockDietChartRepository) FindByID(ctx context.Context, id string) (*dietchart.Chart, error) {
	args := m.Called(ctx, id)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, exists := m.charts[id]; exists {
		return c, nil
	}
	if c, ok := args.Get(0).(*dietchart.Chart); ok {
		return c, nil
	}
	return nil, outbound.ErrNotFound
}

// FindByPatient lists a patient's charts
func (m *MockDietChartRepository) FindByPatient(ctx context.Context, patientID string, offset, limit int) ([]*dietchart.Chart, int, error) {
	args := m.Called(ctx, patientID, offset, limit)
	charts, _ := args.Get(0).([]*dietchart.Chart)
	return charts, args.Int(1), args.Error(2)
}

// UpdateStatus sets a chart's status
func (m *MockDietChartRepository) UpdateStatus(ctx context.Context, id string, status dietchart.Status, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

// Delete deletes a chart
func (m *MockDietChartRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	if args.Error(0) == nil {
		m.mu.Lock()
		delete(m.charts, id)
		m.mu.Unlock()
	}

	return args.Error(0)
}

// NopMetrics discards every observation
type NopMetrics struct{}

func (NopMetrics) ObserveCompliance(string, int) {}
func (NopMetrics) ObserveSuggestion(string, int, int) {}
func (NopMetrics) ObserveCandidatePool(int, int) {}
func (NopMetrics) AddUnresolvedReferences(int) {}
func (NopMetrics) ObserveCacheLookup(string, int, int) {}

// RecordingMetrics keeps the last observations for assertions
type RecordingMetrics struct {
	mu             sync.Mutex
	Compliance     []int
	Suggestions    []int
	PoolCompatible int
	PoolFallback   int
	Unresolved     int
	CacheHits      int
	CacheMisses    int
}

func (r *RecordingMetrics) ObserveCompliance(_ string, overall int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Compliance = append(r.Compliance, overall)
}

func (r *RecordingMetrics) ObserveSuggestion(_ string, _ int, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Suggestions = append(r.Suggestions, score)
}

func (r *RecordingMetrics) ObserveCandidatePool(compatible, fallback int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PoolCompatible, r.PoolFallback = compatible, fallback
}

func (r *RecordingMetrics) AddUnresolvedReferences(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Unresolved += n
}

func (r *RecordingMetrics) ObserveCacheLookup(_ string, hits, misses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CacheHits += hits
	r.CacheMisses += misses
}
