package services

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/dto"
)

// SavingsGoalReaderSvc defines read operations for savings goals.
type SavingsGoalReaderSvc interface {
	// GetSavingsGoal returns the caller's goal with its contributions, newest first.
	GetSavingsGoal(ctx context.Context, goalID, ownerID string) (*domain.SavingsGoal, error)

	// ListContributions pages through a goal's contributions, newest first.
	ListContributions(ctx context.Context, goalID, ownerID string, params dto.ListContributionsParams) (*dto.ListContributionsResponse, error)
}

// SavingsGoalWriterSvc defines write operations for savings goals.
type SavingsGoalWriterSvc interface {
	// CreateSavingsGoal creates an empty goal in a fixed currency.
	CreateSavingsGoal(ctx context.Context, ownerID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error)
}

// ContributionLedgerSvc is the only write path that changes a goal's running total.
type ContributionLedgerSvc interface {
	// ContributeToGoal records one contribution and increments the goal atomically.
	ContributeToGoal(ctx context.Context, goalID, ownerID string, req dto.ContributeRequest) (*domain.ContributionResult, error)
}

// SavingsSvcFacade combines all savings-related service interfaces.
type SavingsSvcFacade interface {
	SavingsGoalReaderSvc
	SavingsGoalWriterSvc
	ContributionLedgerSvc
}

// RecurringContributionSvc runs the scheduled monthly savings.
type RecurringContributionSvc interface {
	// ProcessRecurringContributions credits every goal due on day once and reports the outcome.
	ProcessRecurringContributions(ctx context.Context, day time.Time) (*domain.RecurringRun, error)
}
