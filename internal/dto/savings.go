package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/SscSPs/savings_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the data needed to create a savings goal.
type CreateSavingsGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currencycode"` // defaults to RSD
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`

	// Optional monthly automatic saving in the goal's currency; set both or neither.
	RecurringAmount     *decimal.Decimal `json:"recurringAmount"`
	RecurringDayOfMonth *int             `json:"recurringDayOfMonth" binding:"omitempty,min=1,max=31"`
}

// ContributeRequest defines the body of POST /savings/{goalID}/contribute.
type ContributeRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,currencycode"` // defaults to RSD
	Description *string         `json:"description" binding:"omitempty,max=500"`
	IsAutomatic bool            `json:"isAutomatic"`
}

// ListContributionsParams defines the query parameters of GET /savings/{goalID}/contributions.
type ListContributionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"` // opaque cursor from the previous page
}

// ListContributionsResponse is one page of contributions.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
	NextToken     *string                `json:"nextToken,omitempty"` // absent on the last page
}

// ContributionResponse defines the data returned for a contribution.
type ContributionResponse struct {
	ContributionID   string          `json:"contributionID"`
	GoalID           string          `json:"goalID"`
	OriginalAmount   decimal.Decimal `json:"amount"`
	OriginalCurrency string          `json:"currency"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	Description      *string         `json:"description,omitempty"`
	IsConverted      bool            `json:"isConverted"` // currency differs from the goal's
	IsAutomatic      bool            `json:"isAutomatic"`
	RecurringOn      *string         `json:"recurringOn,omitempty"` // YYYY-MM-DD
	CreatedAt        time.Time       `json:"createdAt"`
}

// SavingsGoalResponse defines the data returned for a savings goal.
type SavingsGoalResponse struct {
	GoalID          string                 `json:"goalID"`
	Name            string                 `json:"name"`
	CurrencyCode    string                 `json:"currencyCode"`
	CurrencySymbol  string                 `json:"currencySymbol"`
	TargetAmount    decimal.Decimal        `json:"targetAmount"`
	CurrentAmount   decimal.Decimal        `json:"currentAmount"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	FormattedAmount string                 `json:"formattedAmount"`
	IsReached       bool                   `json:"isReached"`
	Contributions   []ContributionResponse `json:"contributions,omitempty"`

	RecurringAmount     *decimal.Decimal `json:"recurringAmount,omitempty"`
	RecurringDayOfMonth *int             `json:"recurringDayOfMonth,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ContributeResponse is the body returned after a successful contribution.
type ContributeResponse struct {
	Contribution ContributionResponse `json:"contribution"`
	SavingsGoal  SavingsGoalResponse  `json:"savingsGoal"`
}

// ToContributionResponse converts a domain.Contribution of a goal held in goalCurrency
// to ContributionResponse DTO
func ToContributionResponse(c *domain.Contribution, goalCurrency string) ContributionResponse {
	var recurringOn *string
	if c.RecurringOn != nil {
		date := c.RecurringOn.Format(time.DateOnly)
		recurringOn = &date
	}
	return ContributionResponse{
		ContributionID:   c.ContributionID,
		GoalID:           c.GoalID,
		OriginalAmount:   c.OriginalAmount,
		OriginalCurrency: c.OriginalCurrency,
		ConvertedAmount:  c.ConvertedAmount,
		Description:      c.Description,
		IsConverted:      c.IsConverted(goalCurrency),
		IsAutomatic:      c.IsAutomatic,
		RecurringOn:      recurringOn,
		CreatedAt:        c.CreatedAt,
	}
}

// ToSavingsGoalResponse converts a domain.SavingsGoal to SavingsGoalResponse DTO
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	resp := SavingsGoalResponse{
		GoalID:          g.GoalID,
		Name:            g.Name,
		CurrencyCode:    g.CurrencyCode,
		CurrencySymbol:  utils.CurrencySymbol(g.CurrencyCode),
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		RemainingAmount: g.RemainingAmount(),
		FormattedAmount: utils.FormatCurrency(g.CurrentAmount, g.CurrencyCode),
		IsReached:       g.IsReached(),

		RecurringAmount:     g.RecurringAmount,
		RecurringDayOfMonth: g.RecurringDayOfMonth,

		CreatedAt:     g.CreatedAt,
		LastUpdatedAt: g.LastUpdatedAt,
	}
	if len(g.Contributions) > 0 {
		resp.Contributions = make([]ContributionResponse, len(g.Contributions))
		for i := range g.Contributions {
			resp.Contributions[i] = ToContributionResponse(&g.Contributions[i], g.CurrencyCode)
		}
	}
	return resp
}

// ToContributeResponse converts a domain.ContributionResult to ContributeResponse DTO
func ToContributeResponse(res *domain.ContributionResult) ContributeResponse {
	return ContributeResponse{
		Contribution: ToContributionResponse(&res.Contribution, res.Goal.CurrencyCode),
		SavingsGoal:  ToSavingsGoalResponse(&res.Goal),
	}
}
