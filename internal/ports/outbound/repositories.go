package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/domain/recipe"
)

// ErrRecipeNotFound is returned by recipe repositories for unknown ids.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository defines the interface for recipe persistence. The
// reconciliation engine never calls this directly: callers persist only
// records that already passed validation.
type RecipeRepository interface {
	Save(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	List(ctx context.Context) ([]*recipe.Recipe, error)
	Delete(ctx context.Context, id string) error

	// Catalog returns the id/title snapshot the plan reconciler
	// cross-references against.
	Catalog(ctx context.Context) ([]plan.CatalogEntry, error)
}

// PlanRepository stores the weekly plan. Plans are replaced wholesale on
// each successful generation or manual edit.
type PlanRepository interface {
	Replace(ctx context.Context, p plan.WeeklyPlan) error
	Current(ctx context.Context) (plan.WeeklyPlan, error)
	ReplaceDay(ctx context.Context, date string, day plan.Day) error
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
