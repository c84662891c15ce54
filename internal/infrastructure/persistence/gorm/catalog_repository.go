package gorm

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayurplan/engine/internal/domain/catalog"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// CatalogRepository implements the catalog store using GORM
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var (
	_ outbound.CatalogStore  = (*CatalogRepository)(nil)
	_ outbound.CatalogWriter = (*CatalogRepository)(nil)
)

// GetFoodItem finds a food by ID
func (r *CatalogRepository) GetFoodItem(ctx context.Context, id string) (*catalog.FoodItem, error) {
	var model FoodItemModel

	result := r.db.WithContext(ctx).
		Preload("Doshas").
		First(&model, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}

	food := ModelToFood(&model)
	return &food, nil
}

// GetRecipe finds a recipe by ID
func (r *CatalogRepository) GetRecipe(ctx context.Context, id string) (*catalog.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrNotFound
		}
		return nil, result.Error
	}

	recipe := ModelToRecipe(&model)
	return &recipe, nil
}

// GetFoodItems loads the foods with the given IDs; unknown IDs are omitted
func (r *CatalogRepository) GetFoodItems(ctx context.Context, ids []string) (map[string]catalog.FoodItem, error) {
	out := make(map[string]catalog.FoodItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var models []FoodItemModel
	result := r.db.WithContext(ctx).
		Preload("Doshas").
		Where("id IN ?", ids).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range models {
		out[models[i].ID] = ModelToFood(&models[i])
	}
	return out, nil
}

// GetRecipes loads the recipes with the given IDs; unknown IDs are omitted
func (r *CatalogRepository) GetRecipes(ctx context.Context, ids []string) (map[string]catalog.Recipe, error) {
	out := make(map[string]catalog.Recipe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range models {
		out[models[i].ID] = ModelToRecipe(&models[i])
	}
	return out, nil
}

// QueryCompatibleFoods returns foods tagged for any of q.DoshaParts or "all"
func (r *CatalogRepository) QueryCompatibleFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	doshas := make([]string, 0, len(q.DoshaParts)+1)
	for _, d := range q.DoshaParts {
		doshas = append(doshas, string(d))
	}
	doshas = append(doshas, string(catalog.DoshaAll))

	tagged := r.db.Model(&FoodDoshaModel{}).
		Select("food_id").
		Where("dosha IN ?", doshas)

	query := r.foodQuery(ctx, q).Where("id IN (?)", tagged)
	return r.findFoods(query, q.Limit)
}

// QueryFoods returns foods matching q without dosha filtering
func (r *CatalogRepository) QueryFoods(ctx context.Context, q outbound.FoodQuery) ([]catalog.FoodItem, error) {
	return r.findFoods(r.foodQuery(ctx, q), q.Limit)
}

func (r *CatalogRepository) foodQuery(ctx context.Context, q outbound.FoodQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&FoodItemModel{}).Preload("Doshas")

	if len(q.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", q.ExcludeIDs)
	}
	for _, term := range q.Allergens {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		query = query.Where(`LOWER(name) NOT LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(term)+"%")
	}

	return query
}

// likeEscaper makes allergy terms match literally inside LIKE patterns
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *CatalogRepository) findFoods(query *gorm.DB, limit int) ([]catalog.FoodItem, error) {
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []FoodItemModel
	result := query.Order("created_at ASC").Order("id ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	foods := make([]catalog.FoodItem, len(models))
	for i := range models {
		foods[i] = ModelToFood(&models[i])
	}
	return foods, nil
}

// SaveFoodItem upserts a food and replaces its dosha tags
func (r *CatalogRepository) SaveFoodItem(ctx context.Context, food *catalog.FoodItem) error {
	model := FoodToModel(food)
	tags := model.Doshas
	model.Doshas = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		food.ID = model.ID

		if err := tx.Where("food_id = ?", model.ID).Delete(&FoodDoshaModel{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		for i := range tags {
			tags[i].FoodID = model.ID
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
	})
}

// SaveRecipe upserts a recipe
func (r *CatalogRepository) SaveRecipe(ctx context.Context, recipe *catalog.Recipe) error {
	model := RecipeToModel(recipe)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	recipe.ID = model.ID
	return nil
}
