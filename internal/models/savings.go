package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a row of the savings_goals table.
type SavingsGoal struct {
	GoalID        string          `db:"goal_id"`        // Primary Key (UUID)
	OwnerID       string          `db:"owner_id"`       // JWT subject of the owner
	Name          string          `db:"name"`
	CurrencyCode  string          `db:"currency_code"`
	TargetAmount  decimal.Decimal `db:"target_amount"`  // NUMERIC(20,2)
	CurrentAmount decimal.Decimal `db:"current_amount"` // NUMERIC(20,2), only changed by contributions

	RecurringAmount     decimal.NullDecimal `db:"recurring_amount"`
	RecurringDayOfMonth sql.NullInt16       `db:"recurring_day_of_month"` // 1-31
	AuditFields
}

// Contribution is a row of the contributions table. Rows are never updated.
type Contribution struct {
	ContributionID   string          `db:"contribution_id"` // Primary Key (UUID)
	GoalID           string          `db:"goal_id"`         // FK -> savings_goals.goal_id
	OwnerID          string          `db:"owner_id"`
	OriginalAmount   decimal.Decimal `db:"original_amount"`
	OriginalCurrency string          `db:"original_currency"`
	ConvertedAmount  decimal.Decimal `db:"converted_amount"`
	Description      sql.NullString  `db:"description"`
	IsAutomatic      bool            `db:"is_automatic"`
	RecurringOn      *time.Time      `db:"recurring_on"` // DATE, unique with goal_id
	AuditFields
}
