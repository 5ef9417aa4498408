package memory

import (
	"context"
	"sync"

	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/ports/outbound"
)

// PlanRepository stores the current weekly plan in memory. The plan is
// replaced wholesale on each generation; single days can be swapped
// after a manual edit.
type PlanRepository struct {
	current plan.WeeklyPlan
	mutex   sync.RWMutex
}

// NewPlanRepository creates an empty in-memory plan repository.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

// Replace swaps the stored plan for a new one.
func (r *PlanRepository) Replace(ctx context.Context, p plan.WeeklyPlan) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.current = clonePlan(p)
	return nil
}

// Current returns the stored plan, nil when none was generated yet.
func (r *PlanRepository) Current(ctx context.Context) (plan.WeeklyPlan, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return clonePlan(r.current), nil
}

// ReplaceDay overwrites one day of the stored plan.
func (r *PlanRepository) ReplaceDay(ctx context.Context, date string, day plan.Day) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.current == nil {
		r.current = plan.WeeklyPlan{}
	}
	r.current[date] = day
	return nil
}

func clonePlan(p plan.WeeklyPlan) plan.WeeklyPlan {
	if p == nil {
		return nil
	}
	cloned := make(plan.WeeklyPlan, len(p))
	for date, day := range p {
		cloned[date] = day
	}
	return cloned
}

var _ outbound.PlanRepository = (*PlanRepository)(nil)
