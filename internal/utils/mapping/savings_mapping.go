package mapping

import (
	"database/sql"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelSavingsGoal converts a domain SavingsGoal to a model SavingsGoal
func ToModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	var recurringAmount decimal.NullDecimal
	if d.RecurringAmount != nil {
		recurringAmount = decimal.NullDecimal{Decimal: *d.RecurringAmount, Valid: true}
	}
	var recurringDay sql.NullInt16
	if d.RecurringDayOfMonth != nil {
		recurringDay = sql.NullInt16{Int16: int16(*d.RecurringDayOfMonth), Valid: true}
	}
	return models.SavingsGoal{
		GoalID:        d.GoalID,
		OwnerID:       d.OwnerID,
		Name:          d.Name,
		CurrencyCode:  d.CurrencyCode,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,

		RecurringAmount:     recurringAmount,
		RecurringDayOfMonth: recurringDay,
		AuditFields:         models.AuditFields{CreatedAt: d.CreatedAt, LastUpdatedAt: d.LastUpdatedAt},
	}
}

// ToDomainSavingsGoal converts a model SavingsGoal to a domain SavingsGoal
func ToDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	var recurringAmount *decimal.Decimal
	if m.RecurringAmount.Valid {
		amount := m.RecurringAmount.Decimal
		recurringAmount = &amount
	}
	var recurringDay *int
	if m.RecurringDayOfMonth.Valid {
		day := int(m.RecurringDayOfMonth.Int16)
		recurringDay = &day
	}
	return domain.SavingsGoal{
		GoalID:        m.GoalID,
		OwnerID:       m.OwnerID,
		Name:          m.Name,
		CurrencyCode:  m.CurrencyCode,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,

		RecurringAmount:     recurringAmount,
		RecurringDayOfMonth: recurringDay,
		AuditFields:         domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt},
	}
}

// ToModelContribution converts a domain Contribution to a model Contribution
func ToModelContribution(d domain.Contribution) models.Contribution {
	var description sql.NullString
	if d.Description != nil {
		description = sql.NullString{String: *d.Description, Valid: true}
	}
	return models.Contribution{
		ContributionID:   d.ContributionID,
		GoalID:           d.GoalID,
		OwnerID:          d.OwnerID,
		OriginalAmount:   d.OriginalAmount,
		OriginalCurrency: d.OriginalCurrency,
		ConvertedAmount:  d.ConvertedAmount,
		Description:      description,
		IsAutomatic:      d.IsAutomatic,
		RecurringOn:      d.RecurringOn,
		AuditFields:      models.AuditFields{CreatedAt: d.CreatedAt, LastUpdatedAt: d.LastUpdatedAt},
	}
}

// ToDomainContribution converts a model Contribution to a domain Contribution
func ToDomainContribution(m models.Contribution) domain.Contribution {
	var description *string
	if m.Description.Valid {
		desc := m.Description.String
		description = &desc
	}
	return domain.Contribution{
		ContributionID:   m.ContributionID,
		GoalID:           m.GoalID,
		OwnerID:          m.OwnerID,
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		ConvertedAmount:  m.ConvertedAmount,
		Description:      description,
		IsAutomatic:      m.IsAutomatic,
		RecurringOn:      m.RecurringOn,
		AuditFields:      domain.AuditFields{CreatedAt: m.CreatedAt, LastUpdatedAt: m.LastUpdatedAt},
	}
}

// ToDomainContributionSlice converts a slice of model Contributions to domain Contributions
func ToDomainContributionSlice(ms []models.Contribution) []domain.Contribution {
	ds := make([]domain.Contribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContribution(m)
	}
	return ds
}
