package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToContributionResponse_FlagsConversionAndSchedule(t *testing.T) {
	runOn := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	automatic := domain.Contribution{
		ContributionID:   "c1",
		OriginalAmount:   decimal.NewFromInt(50),
		OriginalCurrency: "EUR",
		ConvertedAmount:  decimal.NewFromInt(50),
		IsAutomatic:      true,
		RecurringOn:      &runOn,
	}

	resp := dto.ToContributionResponse(&automatic, "EUR")
	assert.False(t, resp.IsConverted)
	assert.True(t, resp.IsAutomatic)
	require.NotNil(t, resp.RecurringOn)
	assert.Equal(t, "2025-03-15", *resp.RecurringOn)

	manual := domain.Contribution{ContributionID: "c2", OriginalCurrency: "EUR"}
	resp = dto.ToContributionResponse(&manual, "RSD")
	assert.True(t, resp.IsConverted)
	assert.Nil(t, resp.RecurringOn)
}

func TestToSavingsGoalResponse_IsReached(t *testing.T) {
	tests := []struct {
		name    string
		current string
		reached bool
	}{
		{name: "below target", current: "999.99", reached: false},
		{name: "exactly at target", current: "1000", reached: true},
		{name: "above target", current: "1200", reached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := domain.SavingsGoal{
				CurrencyCode:  "RSD",
				TargetAmount:  decimal.NewFromInt(1000),
				CurrentAmount: decimal.RequireFromString(tt.current),
			}
			assert.Equal(t, tt.reached, dto.ToSavingsGoalResponse(&goal).IsReached)
		})
	}
}

func TestToContributeResponse_UsesGoalCurrency(t *testing.T) {
	res := domain.ContributionResult{
		Contribution: domain.Contribution{OriginalCurrency: "EUR", ConvertedAmount: decimal.RequireFromString("1176.47")},
		Goal:         domain.SavingsGoal{CurrencyCode: "RSD", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.RequireFromString("1176.47")},
	}

	resp := dto.ToContributeResponse(&res)
	assert.True(t, resp.Contribution.IsConverted)
	assert.True(t, resp.SavingsGoal.IsReached)
}
