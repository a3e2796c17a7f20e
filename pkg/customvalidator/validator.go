package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// RegisterCustomValidations installs the domain validation rules shared by
// every DTO: ISO-style currency codes, order statuses and cost calculation
// type names.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("currency_code", isCurrencyCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	return v.RegisterValidation("calc_type", isCalculationType)
}

func isCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "unassigned", "in_progress", "cancelled", "completed":
		return true
	}
	return false
}

func isCalculationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "simple", "two_dimensional", "piece_fitting", "meter_based", "area_based", "paint_based", "custom_cost":
		return true
	}
	return false
}
