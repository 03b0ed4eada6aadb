package dto

import (
	"fmt"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("currencycode", validateCurrencyCode)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return domain.IsValidCurrencyCode(domain.NormalizeCurrencyCode(fl.Field().String()))
}
