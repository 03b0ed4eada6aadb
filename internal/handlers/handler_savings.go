package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsHandler handles HTTP requests related to savings goals and contributions.
type savingsHandler struct {
	savingsService portssvc.SavingsSvcFacade
}

// newSavingsHandler creates a new savingsHandler.
func newSavingsHandler(svc portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsService: svc}
}

// RegisterSavingsRoutes registers routes related to savings goals.
func RegisterSavingsRoutes(rg *gin.RouterGroup, svc portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(svc)

	savings := rg.Group("/savings")
	{
		savings.POST("", h.createSavingsGoal)
		savings.GET("/:goalID", h.getSavingsGoal)
		savings.GET("/:goalID/contributions", h.listContributions)
		savings.POST("/:goalID/contribute", h.contribute)
	}
}

// createSavingsGoal godoc
// @Summary Create a savings goal
// @Description Creates an empty goal in a fixed currency (defaults to RSD)
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create savings goal"
// @Security BearerAuth
// @Router /savings [post]
func (h *savingsHandler) createSavingsGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSavingsGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsService.CreateSavingsGoal(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "to create savings goal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// getSavingsGoal godoc
// @Summary Get a savings goal
// @Description Returns the goal with its contributions, newest first
// @Tags savings
// @Produce  json
// @Param   goalID path string true "Savings goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve savings goal"
// @Security BearerAuth
// @Router /savings/{goalID} [get]
func (h *savingsHandler) getSavingsGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsService.GetSavingsGoal(c.Request.Context(), goalID, ownerID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("goal_id", goalID)), err, "to retrieve savings goal")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// contribute godoc
// @Summary Contribute to a savings goal
// @Description Records a contribution, converting it into the goal's currency, and increments the goal atomically
// @Tags savings
// @Accept  json
// @Produce  json
// @Param   goalID path string true "Savings goal ID"
// @Param   contribution body dto.ContributeRequest true "Contribution details"
// @Success 201 {object} dto.ContributeResponse
// @Failure 400 {object} map[string]string "Invalid amount or currency code"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 422 {object} map[string]string "Currency could not be converted"
// @Failure 500 {object} map[string]string "Failed to record contribution"
// @Security BearerAuth
// @Router /savings/{goalID}/contribute [post]
func (h *savingsHandler) contribute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Contribute", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("goal_id", goalID))
	logger.Info("Received request to contribute",
		slog.String("amount", req.Amount.String()),
		slog.String("currency", req.Currency),
		slog.Bool("is_automatic", req.IsAutomatic),
	)

	result, err := h.savingsService.ContributeToGoal(c.Request.Context(), goalID, ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "to record contribution")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContributeResponse(result))
}

// listContributions godoc
// @Summary List contributions of a savings goal
// @Description Pages through the goal's contributions, newest first
// @Tags savings
// @Produce  json
// @Param   goalID path string true "Savings goal ID"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListContributionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters or page token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 500 {object} map[string]string "Failed to list contributions"
// @Security BearerAuth
// @Router /savings/{goalID}/contributions [get]
func (h *savingsHandler) listContributions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("goalID")

	var params dto.ListContributionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListContributions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := h.savingsService.ListContributions(c.Request.Context(), goalID, ownerID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("goal_id", goalID)), err, "to list contributions")
		return
	}

	c.JSON(http.StatusOK, page)
}
