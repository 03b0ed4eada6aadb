package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger/internal/models"
	"github.com/SscSPs/savings_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const goalColumns = `goal_id, owner_id, name, currency_code, target_amount, current_amount,
		recurring_amount, recurring_day_of_month, created_at, last_updated_at`

type PgxSavingsRepository struct {
	BaseRepository
}

// newPgxSavingsRepository creates a new repository for savings goals and contributions.
func newPgxSavingsRepository(pool *pgxpool.Pool) *PgxSavingsRepository {
	return &PgxSavingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SavingsRepositoryFacade = (*PgxSavingsRepository)(nil)

func scanGoal(row pgx.Row) (models.SavingsGoal, error) {
	var goal models.SavingsGoal
	err := row.Scan(
		&goal.GoalID,
		&goal.OwnerID,
		&goal.Name,
		&goal.CurrencyCode,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.RecurringAmount,
		&goal.RecurringDayOfMonth,
		&goal.CreatedAt,
		&goal.LastUpdatedAt,
	)
	return goal, err
}

// FindGoalForOwner retrieves a goal by ID, filtered by owner.
func (r *PgxSavingsRepository) FindGoalForOwner(ctx context.Context, goalID, ownerID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + goalColumns + `
		FROM savings_goals
		WHERE goal_id = $1 AND owner_id = $2;
	`
	modelGoal, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to find savings goal %s", goalID), err)
	}

	goal := mapping.ToDomainSavingsGoal(modelGoal)
	return &goal, nil
}

const contributionColumns = `contribution_id, goal_id, owner_id, original_amount, original_currency, converted_amount,
		       description, is_automatic, recurring_on, created_at, last_updated_at`

func collectContributions(rows pgx.Rows) ([]domain.Contribution, error) {
	defer rows.Close()
	modelContributions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Contribution, error) {
		var c models.Contribution
		err := row.Scan(
			&c.ContributionID,
			&c.GoalID,
			&c.OwnerID,
			&c.OriginalAmount,
			&c.OriginalCurrency,
			&c.ConvertedAmount,
			&c.Description,
			&c.IsAutomatic,
			&c.RecurringOn,
			&c.CreatedAt,
			&c.LastUpdatedAt,
		)
		return c, err
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan contributions", err)
	}
	return mapping.ToDomainContributionSlice(modelContributions), nil
}

// ListContributions retrieves a goal's contributions, newest first.
func (r *PgxSavingsRepository) ListContributions(ctx context.Context, goalID string) ([]domain.Contribution, error) {
	query := `
		SELECT ` + contributionColumns + `
		FROM contributions
		WHERE goal_id = $1
		ORDER BY created_at DESC, contribution_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query contributions", err)
	}
	return collectContributions(rows)
}

// ListContributionsPage retrieves one keyset page of a goal's contributions, newest first.
func (r *PgxSavingsRepository) ListContributionsPage(ctx context.Context, goalID string, limit int, after *domain.ContributionCursor) ([]domain.Contribution, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `
			SELECT ` + contributionColumns + `
			FROM contributions
			WHERE goal_id = $1
			ORDER BY created_at DESC, contribution_id DESC
			LIMIT $2;
		`
		rows, err = r.Pool.Query(ctx, query, goalID, limit)
	} else {
		query := `
			SELECT ` + contributionColumns + `
			FROM contributions
			WHERE goal_id = $1 AND (created_at, contribution_id) < ($2, $3)
			ORDER BY created_at DESC, contribution_id DESC
			LIMIT $4;
		`
		rows, err = r.Pool.Query(ctx, query, goalID, after.CreatedAt, after.ContributionID, limit)
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query contributions page", err)
	}
	return collectContributions(rows)
}

// ListDueRecurringGoals retrieves recurring goals due on day that have no saving recorded for it yet.
func (r *PgxSavingsRepository) ListDueRecurringGoals(ctx context.Context, day time.Time) ([]domain.SavingsGoal, error) {
	dueDays := domain.RecurringDaysDueOn(day)
	days := make([]int16, len(dueDays))
	for i, d := range dueDays {
		days[i] = int16(d)
	}

	query := `
		SELECT ` + goalColumns + `
		FROM savings_goals g
		WHERE g.recurring_day_of_month = ANY($1)
		  AND g.recurring_amount IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM contributions c
			WHERE c.goal_id = g.goal_id AND c.recurring_on = $2
		  )
		ORDER BY g.goal_id;
	`
	rows, err := r.Pool.Query(ctx, query, days, domain.RecurringDate(day))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query recurring goals", err)
	}
	defer rows.Close()

	modelGoals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SavingsGoal, error) {
		return scanGoal(row)
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan recurring goals", err)
	}
	goals := make([]domain.SavingsGoal, len(modelGoals))
	for i, m := range modelGoals {
		goals[i] = mapping.ToDomainSavingsGoal(m)
	}
	return goals, nil
}

// SaveGoal inserts a new savings goal.
func (r *PgxSavingsRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	modelGoal := mapping.ToModelSavingsGoal(goal)
	query := `
		INSERT INTO savings_goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelGoal.GoalID,
		modelGoal.OwnerID,
		modelGoal.Name,
		modelGoal.CurrencyCode,
		modelGoal.TargetAmount,
		modelGoal.CurrentAmount,
		modelGoal.RecurringAmount,
		modelGoal.RecurringDayOfMonth,
		modelGoal.CreatedAt,
		modelGoal.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: savings goal %s", apperrors.ErrDuplicate, modelGoal.GoalID)
		}
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to save savings goal %s", modelGoal.GoalID), err)
	}
	return nil
}

// SaveContribution inserts the contribution and increments the goal in one transaction.
// The increment is relative (current_amount + delta) so concurrent contributions never
// overwrite each other.
func (r *PgxSavingsRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) (*domain.SavingsGoal, error) {
	modelContribution := mapping.ToModelContribution(contribution)

	var modelGoal models.SavingsGoal
	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		updateQuery := `
			UPDATE savings_goals
			SET current_amount = current_amount + $1, last_updated_at = $2
			WHERE goal_id = $3 AND owner_id = $4
			RETURNING ` + goalColumns + `;
		`
		var err error
		modelGoal, err = scanGoal(tx.QueryRow(ctx, updateQuery,
			modelContribution.ConvertedAmount,
			modelContribution.CreatedAt,
			modelContribution.GoalID,
			modelContribution.OwnerID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewPersistenceError(fmt.Sprintf("failed to update savings goal %s", modelContribution.GoalID), err)
		}

		insertQuery := `
			INSERT INTO contributions (` + contributionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		_, err = tx.Exec(ctx, insertQuery,
			modelContribution.ContributionID,
			modelContribution.GoalID,
			modelContribution.OwnerID,
			modelContribution.OriginalAmount,
			modelContribution.OriginalCurrency,
			modelContribution.ConvertedAmount,
			modelContribution.Description,
			modelContribution.IsAutomatic,
			modelContribution.RecurringOn,
			modelContribution.CreatedAt,
			modelContribution.LastUpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return apperrors.NewPersistenceError("contribution already recorded", fmt.Errorf("%w: %s", apperrors.ErrDuplicate, modelContribution.ContributionID))
			}
			return apperrors.NewPersistenceError(fmt.Sprintf("failed to insert contribution %s", modelContribution.ContributionID), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	goal := mapping.ToDomainSavingsGoal(modelGoal)
	return &goal, nil
}
