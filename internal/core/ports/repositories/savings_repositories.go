package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
)

// SavingsGoalReader defines read operations for savings goals.
type SavingsGoalReader interface {
	// FindGoalForOwner returns the goal only when it belongs to ownerID.
	// Both a missing goal and a foreign goal yield apperrors.ErrNotFound.
	FindGoalForOwner(ctx context.Context, goalID, ownerID string) (*domain.SavingsGoal, error)

	// ListContributions returns a goal's contributions, newest first.
	ListContributions(ctx context.Context, goalID string) ([]domain.Contribution, error)

	// ListContributionsPage returns at most limit contributions older than after,
	// ordered by creation time then ID, newest first. A nil cursor starts from the newest.
	ListContributionsPage(ctx context.Context, goalID string, limit int, after *domain.ContributionCursor) ([]domain.Contribution, error)
}

// RecurringGoalReader finds goals whose monthly saving is due.
type RecurringGoalReader interface {
	// ListDueRecurringGoals returns goals with a recurring day in domain.RecurringDaysDueOn(day)
	// and no contribution recorded yet for domain.RecurringDate(day).
	ListDueRecurringGoals(ctx context.Context, day time.Time) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriter defines write operations for savings goals.
type SavingsGoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error
}

// ContributionWriter is the only write path for a goal's running total.
type ContributionWriter interface {
	// SaveContribution inserts contribution and adds its ConvertedAmount to the goal's
	// current amount as one atomic unit, returning the goal as committed.
	// Nothing is written when an error is returned. A second contribution with the same
	// goal and RecurringOn date fails with apperrors.ErrDuplicate.
	SaveContribution(ctx context.Context, contribution domain.Contribution) (*domain.SavingsGoal, error)
}

// SavingsRepositoryFacade combines all savings-related repository interfaces.
type SavingsRepositoryFacade interface {
	SavingsGoalReader
	RecurringGoalReader
	SavingsGoalWriter
	ContributionWriter
}
