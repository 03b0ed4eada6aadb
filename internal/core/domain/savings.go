package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields are set by the ledger; contributions never change after creation.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"` // goals: time of the latest contribution
}

// SavingsGoal is a user's target amount in a fixed currency.
type SavingsGoal struct {
	GoalID        string          `json:"goalID"`
	OwnerID       string          `json:"ownerID"`
	Name          string          `json:"name"`
	CurrencyCode  string          `json:"currencyCode"` // fixed at creation
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"` // sum of ConvertedAmount over Contributions
	Contributions []Contribution  `json:"contributions,omitempty"`

	// Monthly automatic saving; both are set or neither is.
	RecurringAmount     *decimal.Decimal `json:"recurringAmount,omitempty"` // in CurrencyCode
	RecurringDayOfMonth *int             `json:"recurringDayOfMonth,omitempty"`
	AuditFields
}

// RemainingAmount returns how much is still missing to reach the target, never below zero.
func (g *SavingsGoal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsReached reports whether the running total has met the target.
func (g *SavingsGoal) IsReached() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// IsRecurring reports whether the goal has a monthly automatic saving.
func (g *SavingsGoal) IsRecurring() bool {
	return g.RecurringAmount != nil && g.RecurringDayOfMonth != nil
}

// IsRecurringDueOn reports whether the goal's monthly saving falls on day's date.
func (g *SavingsGoal) IsRecurringDueOn(day time.Time) bool {
	if !g.IsRecurring() {
		return false
	}
	for _, d := range RecurringDaysDueOn(day) {
		if d == *g.RecurringDayOfMonth {
			return true
		}
	}
	return false
}

// RecurringDaysDueOn returns the recurring days of month that are processed on day.
// On the last day of a month it also returns the days that month does not have, so that
// a saving set for the 31st still runs in February.
func RecurringDaysDueOn(day time.Time) []int {
	days := []int{day.Day()}
	if day.AddDate(0, 0, 1).Month() != day.Month() {
		for d := day.Day() + 1; d <= MaxRecurringDayOfMonth; d++ {
			days = append(days, d)
		}
	}
	return days
}

// RecurringDate truncates t to its calendar date, expressed in UTC.
func RecurringDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MaxRecurringDayOfMonth is the largest accepted recurring day.
const MaxRecurringDayOfMonth = 31

// Contribution is an immutable record of one addition to a goal.
type Contribution struct {
	ContributionID   string          `json:"contributionID"`
	GoalID           string          `json:"goalID"`
	OwnerID          string          `json:"ownerID"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"` // in the goal's currency
	Description      *string         `json:"description,omitempty"`
	IsAutomatic      bool            `json:"isAutomatic"`
	RecurringOn      *time.Time      `json:"recurringOn,omitempty"` // schedule date of a recurring saving; unique per goal
	AuditFields
}

// IsConverted reports whether the contribution was made in a currency other than its goal's.
func (c *Contribution) IsConverted(goalCurrency string) bool {
	return c.OriginalCurrency != goalCurrency
}

// ContributionResult is what a successful contribution returns.
type ContributionResult struct {
	Contribution Contribution
	Goal         SavingsGoal // state right after the increment committed
}

// RecurringRun summarizes one pass of the recurring savings processor.
type RecurringRun struct {
	RunOn     time.Time `json:"runOn"` // calendar date, UTC
	Due       int       `json:"due"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"` // already recorded for RunOn
	Failed    int       `json:"failed"`
}

// ContributionCursor marks the last contribution of a page in newest-first order.
type ContributionCursor struct {
	CreatedAt      time.Time
	ContributionID string
}
