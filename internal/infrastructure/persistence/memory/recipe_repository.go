package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/domain/recipe"
	"github.com/culina/v2/internal/ports/outbound"
)

// RecipeRepository implements recipe persistence in memory. Records
// are stored by value so callers can never mutate stored state through
// a returned pointer.
type RecipeRepository struct {
	recipes map[string]recipe.Recipe
	mutex   sync.RWMutex
}

// NewRecipeRepository creates an empty in-memory recipe repository.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[string]recipe.Recipe),
	}
}

// Save stores a recipe, assigning an id when it has none.
func (r *RecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	if rec == nil {
		return errors.New("recipe cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	r.recipes[rec.ID] = *rec
	return nil
}

// FindByID retrieves one recipe by id.
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec, exists := r.recipes[id]
	if !exists {
		return nil, outbound.ErrRecipeNotFound
	}
	return &rec, nil
}

// List returns all recipes ordered by title.
func (r *RecipeRepository) List(ctx context.Context) ([]*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*recipe.Recipe, 0, len(r.recipes))
	for id := range r.recipes {
		rec := r.recipes[id]
		result = append(result, &rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Delete removes a recipe by id.
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.recipes[id]; !exists {
		return outbound.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

// Catalog returns the id/title snapshot used for plan reconciliation.
func (r *RecipeRepository) Catalog(ctx context.Context) ([]plan.CatalogEntry, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entries := make([]plan.CatalogEntry, 0, len(r.recipes))
	for _, rec := range r.recipes {
		entries = append(entries, plan.CatalogEntry{
			ID:         rec.ID,
			Title:      rec.Title,
			Difficulty: rec.Difficulty,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)
