package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService       portssvc.ExchangeRateReaderSvc
	conversionService portssvc.ConversionSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rates portssvc.ExchangeRateReaderSvc, conversion portssvc.ConversionSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService:       rates,
		conversionService: conversion,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, rates portssvc.ExchangeRateReaderSvc, conversion portssvc.ConversionSvc) {
	h := newExchangeRateHandler(rates, conversion)

	currency := rg.Group("/currency")
	{
		currency.GET("/rates", h.getRates)
		currency.GET("/convert", h.convert)
	}
}

// getRates godoc
// @Summary Get current exchange rates
// @Description Returns the cached rate table (units per 1 base unit). Source is "fallback" while the provider is unavailable.
// @Tags currency
// @Produce  json
// @Success 200 {object} dto.ExchangeRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /currency/rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot := h.rateService.GetRates(c.Request.Context())
	if snapshot.IsFallback() {
		logger.Warn("Serving fallback exchange rates", slog.Any("cause", snapshot.FallbackCause))
	}
	c.JSON(http.StatusOK, dto.ToExchangeRatesResponse(snapshot))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts through the base currency; the result is rounded to 2 decimal places.
// @Tags currency
// @Produce  json
// @Param   amount query string true "Amount to convert"
// @Param   from   query string true "Source currency code" MinLength(3) MaxLength(3)
// @Param   to     query string true "Target currency code" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ConvertAmountResponse
// @Failure 400 {object} map[string]string "Invalid amount or currency code"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Currency not in the rate table"
// @Security BearerAuth
// @Router /currency/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConvertAmountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a non-negative decimal number"})
		return
	}
	from := domain.NormalizeCurrencyCode(params.From)
	to := domain.NormalizeCurrencyCode(params.To)

	result, err := h.conversionService.ConvertAmount(c.Request.Context(), amount, from, to)
	if err != nil {
		respondWithError(c, logger.With(slog.String("from", from), slog.String("to", to)), err, "to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertAmountResponse{
		Amount: amount,
		From:   from,
		To:     to,
		Result: result,
	})
}
