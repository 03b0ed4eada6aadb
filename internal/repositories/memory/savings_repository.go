package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
)

// SavingsRepository keeps goals and contributions in process memory. It is used when no
// database is configured and in tests. A single lock makes every write atomic.
type SavingsRepository struct {
	mu            sync.RWMutex
	goals         map[string]domain.SavingsGoal
	contributions map[string][]domain.Contribution // by goal ID, in insertion order
}

// NewSavingsRepository creates an empty in-memory repository.
func NewSavingsRepository() *SavingsRepository {
	return &SavingsRepository{
		goals:         make(map[string]domain.SavingsGoal),
		contributions: make(map[string][]domain.Contribution),
	}
}

var _ portsrepo.SavingsRepositoryFacade = (*SavingsRepository)(nil)

// FindGoalForOwner returns a copy of the goal when it belongs to ownerID.
func (r *SavingsRepository) FindGoalForOwner(ctx context.Context, goalID, ownerID string) (*domain.SavingsGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("find savings goal", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[goalID]
	if !ok || goal.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return &goal, nil
}

// ListContributions returns a goal's contributions, newest first.
func (r *SavingsRepository) ListContributions(ctx context.Context, goalID string) ([]domain.Contribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list contributions", err)
	}
	return r.sortedContributions(goalID), nil
}

// ListContributionsPage returns up to limit contributions strictly after the cursor.
func (r *SavingsRepository) ListContributionsPage(ctx context.Context, goalID string, limit int, after *domain.ContributionCursor) ([]domain.Contribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list contributions", err)
	}
	all := r.sortedContributions(goalID)

	start := 0
	if after != nil {
		start = sort.Search(len(all), func(i int) bool {
			return olderThan(all[i], *after)
		})
	}
	end := start + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// sortedContributions copies a goal's contributions ordered by creation time then ID, newest first.
func (r *SavingsRepository) sortedContributions(goalID string) []domain.Contribution {
	r.mu.RLock()
	stored := r.contributions[goalID]
	out := make([]domain.Contribution, len(stored))
	copy(out, stored)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ContributionID > out[j].ContributionID
	})
	return out
}

// olderThan reports whether c sorts after the cursor in newest-first order.
func olderThan(c domain.Contribution, cursor domain.ContributionCursor) bool {
	if !c.CreatedAt.Equal(cursor.CreatedAt) {
		return c.CreatedAt.Before(cursor.CreatedAt)
	}
	return c.ContributionID < cursor.ContributionID
}

// ListDueRecurringGoals returns due goals not yet credited for day, ordered by goal ID.
func (r *SavingsRepository) ListDueRecurringGoals(ctx context.Context, day time.Time) ([]domain.SavingsGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list recurring goals", err)
	}
	runOn := domain.RecurringDate(day)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []domain.SavingsGoal
	for _, goal := range r.goals {
		if !goal.IsRecurringDueOn(day) || r.hasRecurringOn(goal.GoalID, runOn) {
			continue
		}
		due = append(due, goal)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].GoalID < due[j].GoalID })
	return due, nil
}

// hasRecurringOn must be called with r.mu held.
func (r *SavingsRepository) hasRecurringOn(goalID string, runOn time.Time) bool {
	return slices.ContainsFunc(r.contributions[goalID], func(c domain.Contribution) bool {
		return c.RecurringOn != nil && c.RecurringOn.Equal(runOn)
	})
}

// SaveGoal stores a new goal.
func (r *SavingsRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistenceError("save savings goal", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.goals[goal.GoalID]; exists {
		return fmt.Errorf("%w: savings goal %s", apperrors.ErrDuplicate, goal.GoalID)
	}
	goal.Contributions = nil
	r.goals[goal.GoalID] = goal
	return nil
}

// SaveContribution appends the contribution and increments the goal under one lock.
func (r *SavingsRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) (*domain.SavingsGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.goals[contribution.GoalID]
	if !ok || goal.OwnerID != contribution.OwnerID {
		return nil, apperrors.ErrNotFound
	}
	for _, existing := range r.contributions[contribution.GoalID] {
		if existing.ContributionID == contribution.ContributionID {
			return nil, apperrors.NewPersistenceError("contribution already recorded",
				fmt.Errorf("%w: %s", apperrors.ErrDuplicate, contribution.ContributionID))
		}
	}
	if contribution.RecurringOn != nil && r.hasRecurringOn(goal.GoalID, *contribution.RecurringOn) {
		return nil, apperrors.NewPersistenceError("recurring saving already recorded",
			fmt.Errorf("%w: goal %s on %s", apperrors.ErrDuplicate, goal.GoalID, contribution.RecurringOn.Format(time.DateOnly)))
	}
	// Last point at which the write can still be abandoned.
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("save contribution", err)
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(contribution.ConvertedAmount)
	goal.LastUpdatedAt = contribution.CreatedAt
	r.goals[goal.GoalID] = goal
	r.contributions[goal.GoalID] = append(r.contributions[goal.GoalID], contribution)

	return &goal, nil
}
