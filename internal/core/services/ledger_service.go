package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/metrics"
	"github.com/SscSPs/savings_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultContributeTimeout bounds one whole contribution, rate lookup included.
const DefaultContributeTimeout = 10 * time.Second

// RecurringDescription is attached to every automatic monthly saving.
const RecurringDescription = "Automatic monthly saving"

// LedgerService records contributions against savings goals. The running total of a goal
// only ever changes through ContributeToGoal.
type LedgerService struct {
	BaseService
	repo      portsrepo.SavingsRepositoryFacade
	rates     portssvc.ExchangeRateReaderSvc
	converter portssvc.ConversionSvc
	metrics   *metrics.Metrics
	base      string
	timeout   time.Duration
	now       func() time.Time
}

// LedgerOption configures a LedgerService.
type LedgerOption func(*LedgerService)

// WithContributeTimeout sets the overall deadline of a contribution.
func WithContributeTimeout(timeout time.Duration) LedgerOption {
	return func(s *LedgerService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithLedgerBaseCurrency sets the currency used when a request names none.
func WithLedgerBaseCurrency(code string) LedgerOption {
	return func(s *LedgerService) {
		if code = domain.NormalizeCurrencyCode(code); code != "" {
			s.base = code
		}
	}
}

// WithLedgerMetrics records contribution outcomes.
func WithLedgerMetrics(m *metrics.Metrics) LedgerOption {
	return func(s *LedgerService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLedgerClock replaces time.Now, mainly for tests.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	repo portsrepo.SavingsRepositoryFacade,
	rates portssvc.ExchangeRateReaderSvc,
	converter portssvc.ConversionSvc,
	opts ...LedgerOption,
) *LedgerService {
	s := &LedgerService{
		repo:      repo,
		rates:     rates,
		converter: converter,
		metrics:   metrics.NewNoopMetrics(),
		base:      domain.BaseCurrency,
		timeout:   DefaultContributeTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ portssvc.SavingsSvcFacade         = (*LedgerService)(nil)
	_ portssvc.RecurringContributionSvc = (*LedgerService)(nil)
)

// validateAmount accepts strictly positive amounts with at most two decimal places.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s is not positive", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(domain.MinorUnitPrecision)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), domain.MinorUnitPrecision)
	}
	return nil
}

// validateRecurring accepts either no monthly saving or a complete one.
func validateRecurring(amount *decimal.Decimal, dayOfMonth *int) error {
	if amount == nil && dayOfMonth == nil {
		return nil
	}
	if amount == nil || dayOfMonth == nil {
		return fmt.Errorf("%w: recurringAmount and recurringDayOfMonth must be set together", apperrors.ErrValidation)
	}
	if err := validateAmount(*amount); err != nil {
		return err
	}
	if *dayOfMonth < 1 || *dayOfMonth > domain.MaxRecurringDayOfMonth {
		return fmt.Errorf("%w: recurringDayOfMonth %d is not between 1 and %d", apperrors.ErrValidation, *dayOfMonth, domain.MaxRecurringDayOfMonth)
	}
	return nil
}

// resolveCurrency defaults an empty code to the base currency.
func (s *LedgerService) resolveCurrency(code string) (string, error) {
	code = domain.NormalizeCurrencyCode(code)
	if code == "" {
		return s.base, nil
	}
	if !domain.IsValidCurrencyCode(code) {
		return "", fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, code)
	}
	return code, nil
}

// ContributeToGoal converts the contribution into the goal's currency and persists it together
// with the incremented running total. Any failure leaves the goal untouched.
func (s *LedgerService) ContributeToGoal(ctx context.Context, goalID, ownerID string, req dto.ContributeRequest) (*domain.ContributionResult, error) {
	return s.contribute(ctx, goalID, ownerID, req, nil)
}

// contribute records one contribution. recurringOn is set only for scheduled monthly savings.
func (s *LedgerService) contribute(ctx context.Context, goalID, ownerID string, req dto.ContributeRequest, recurringOn *time.Time) (result *domain.ContributionResult, err error) {
	converted := false
	defer func() {
		outcome := metrics.ResultSuccess
		if err != nil {
			outcome = metrics.ResultFailure
		}
		s.metrics.ContributionsTotal.WithLabelValues(outcome, strconv.FormatBool(converted)).Inc()
	}()

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(goalID) == "" || strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.ErrGoalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	goal, err := s.repo.FindGoalForOwner(ctx, goalID, ownerID)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to load savings goal", goalID)
	}

	convertedAmount := req.Amount
	if currency != goal.CurrencyCode {
		converted = true
		snapshot := s.rates.GetRates(ctx)
		convertedAmount, err = s.converter.Convert(req.Amount, currency, goal.CurrencyCode, snapshot)
		if err != nil {
			s.metrics.ConversionErrorTotal.Inc()
			s.LogWarn(ctx, err, "Contribution rejected: conversion failed",
				slog.String("goal_id", goalID),
				slog.String("from", currency),
				slog.String("to", goal.CurrencyCode),
				slog.String("rates_source", string(snapshot.Source)),
			)
			return nil, err
		}
		if snapshot.IsFallback() {
			s.LogWarn(ctx, snapshot.FallbackCause, "Contribution converted with fallback rates", slog.String("goal_id", goalID))
		}
		if !convertedAmount.IsPositive() {
			return nil, fmt.Errorf("%w: %s %s converts to %s %s",
				apperrors.ErrInvalidAmount, req.Amount, currency, convertedAmount, goal.CurrencyCode)
		}
	}

	now := s.now().UTC()
	contribution := domain.Contribution{
		ContributionID:   uuid.NewString(),
		GoalID:           goal.GoalID,
		OwnerID:          ownerID,
		OriginalAmount:   req.Amount,
		OriginalCurrency: currency,
		ConvertedAmount:  convertedAmount,
		Description:      trimDescription(req.Description),
		IsAutomatic:      req.IsAutomatic,
		RecurringOn:      recurringOn,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	updated, err := s.repo.SaveContribution(ctx, contribution)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to save contribution", goalID)
	}

	s.LogInfo(ctx, "Contribution recorded",
		slog.String("goal_id", goalID),
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("amount", req.Amount.String()),
		slog.String("currency", currency),
		slog.String("converted_amount", convertedAmount.String()),
		slog.String("current_amount", updated.CurrentAmount.String()),
	)
	return &domain.ContributionResult{Contribution: contribution, Goal: *updated}, nil
}

// CreateSavingsGoal creates an empty goal owned by ownerID.
func (s *LedgerService) CreateSavingsGoal(ctx context.Context, ownerID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: goal name is required", apperrors.ErrValidation)
	}
	if err := validateAmount(req.TargetAmount); err != nil {
		return nil, err
	}
	if err := validateRecurring(req.RecurringAmount, req.RecurringDayOfMonth); err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	goal := domain.SavingsGoal{
		GoalID:        uuid.NewString(),
		OwnerID:       ownerID,
		Name:          name,
		CurrencyCode:  currency,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,

		RecurringAmount:     req.RecurringAmount,
		RecurringDayOfMonth: req.RecurringDayOfMonth,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.repo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save savings goal", slog.String("owner_id", ownerID))
		if errors.Is(err, apperrors.ErrPersistence) {
			return nil, err
		}
		return nil, apperrors.NewPersistenceError("save savings goal", err)
	}

	s.LogInfo(ctx, "Savings goal created",
		slog.String("goal_id", goal.GoalID),
		slog.String("currency", currency),
	)
	return &goal, nil
}

// GetSavingsGoal returns the goal with its contributions, newest first.
func (s *LedgerService) GetSavingsGoal(ctx context.Context, goalID, ownerID string) (*domain.SavingsGoal, error) {
	if strings.TrimSpace(goalID) == "" || strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.ErrGoalNotFound
	}
	goal, err := s.repo.FindGoalForOwner(ctx, goalID, ownerID)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to load savings goal", goalID)
	}
	contributions, err := s.repo.ListContributions(ctx, goalID)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to list contributions", goalID)
	}
	goal.Contributions = contributions
	return goal, nil
}

// ListContributions returns one page of the goal's contributions, newest first.
func (s *LedgerService) ListContributions(ctx context.Context, goalID, ownerID string, params dto.ListContributionsParams) (*dto.ListContributionsResponse, error) {
	if strings.TrimSpace(goalID) == "" || strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.ErrGoalNotFound
	}

	var after *domain.ContributionCursor
	if params.NextToken != nil && *params.NextToken != "" {
		createdAt, contributionID, err := pagination.DecodeCursor(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		after = &domain.ContributionCursor{CreatedAt: createdAt, ContributionID: contributionID}
	}
	limit := pagination.NormalizeLimit(params.Limit)

	goal, err := s.repo.FindGoalForOwner(ctx, goalID, ownerID)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to load savings goal", goalID)
	}

	// One extra row tells whether another page exists.
	contributions, err := s.repo.ListContributionsPage(ctx, goalID, limit+1, after)
	if err != nil {
		return nil, s.mapRepoError(ctx, err, "Failed to list contributions", goalID)
	}

	resp := &dto.ListContributionsResponse{Contributions: make([]dto.ContributionResponse, 0, limit)}
	if len(contributions) > limit {
		contributions = contributions[:limit]
		last := contributions[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.ContributionID)
		resp.NextToken = &token
	}
	for i := range contributions {
		resp.Contributions = append(resp.Contributions, dto.ToContributionResponse(&contributions[i], goal.CurrencyCode))
	}
	return resp, nil
}

// ProcessRecurringContributions credits every goal whose monthly saving falls on day with its
// recurring amount. A failing goal is logged and counted while the others are still credited.
// Each goal is credited at most once per calendar date, so the run can be repeated safely.
func (s *LedgerService) ProcessRecurringContributions(ctx context.Context, day time.Time) (*domain.RecurringRun, error) {
	run := &domain.RecurringRun{RunOn: domain.RecurringDate(day)}
	runOnAttr := slog.String("run_on", run.RunOn.Format(time.DateOnly))

	goals, err := s.repo.ListDueRecurringGoals(ctx, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring savings goals", runOnAttr)
		if errors.Is(err, apperrors.ErrPersistence) {
			return nil, err
		}
		return nil, apperrors.NewPersistenceError("list recurring savings goals", err)
	}
	run.Due = len(goals)

	description := RecurringDescription
	for i := range goals {
		goal := &goals[i]
		if err := ctx.Err(); err != nil {
			run.Failed += len(goals) - i
			s.metrics.RecurringContributionsTotal.WithLabelValues(metrics.ResultFailure).Add(float64(len(goals) - i))
			s.LogWarn(ctx, err, "Recurring savings run interrupted", runOnAttr, slog.Int("remaining", len(goals)-i))
			break
		}
		if !goal.IsRecurring() {
			run.Skipped++
			continue
		}

		runOn := run.RunOn
		_, err := s.contribute(ctx, goal.GoalID, goal.OwnerID, dto.ContributeRequest{
			Amount:      *goal.RecurringAmount,
			Currency:    goal.CurrencyCode,
			Description: &description,
			IsAutomatic: true,
		}, &runOn)
		switch {
		case err == nil:
			run.Processed++
			s.metrics.RecurringContributionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		case errors.Is(err, apperrors.ErrDuplicate):
			// Another run already credited this date.
			run.Skipped++
			s.metrics.RecurringContributionsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		default:
			run.Failed++
			s.metrics.RecurringContributionsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.LogError(ctx, err, "Recurring saving failed", runOnAttr, slog.String("goal_id", goal.GoalID))
		}
	}

	s.LogInfo(ctx, "Recurring savings processed",
		runOnAttr,
		slog.Int("due", run.Due),
		slog.Int("processed", run.Processed),
		slog.Int("skipped", run.Skipped),
		slog.Int("failed", run.Failed),
	)
	return run, nil
}

// mapRepoError turns repository failures into ErrGoalNotFound or ErrPersistence.
func (s *LedgerService) mapRepoError(ctx context.Context, err error, msg, goalID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrGoalNotFound
	}
	s.LogError(ctx, err, msg, slog.String("goal_id", goalID))
	if errors.Is(err, apperrors.ErrPersistence) {
		return err
	}
	return apperrors.NewPersistenceError(strings.ToLower(msg), err)
}

func trimDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
