package finance

import (
	"fmt"

	"github.com/clubfinanzas/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the number of decimal places money is stored with
const moneyPlaces = 2

// RoundMoney rounds an amount to cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// positiveMoney rounds amount to cents and rejects it unless the rounded
// value is still above zero
func positiveMoney(amount decimal.Decimal, field string) (decimal.Decimal, error) {
	amount = RoundMoney(amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s debe ser mayor que cero", field))
	}
	return amount, nil
}

func validateNonNegativeAmount(amount decimal.Decimal, field string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("%s no puede ser negativo", field))
	}
	return nil
}

func validateRequiredText(value, field string, max int) error {
	if value == "" {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s es obligatorio", field))
	}
	if len(value) > max {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s no puede superar %d caracteres", field, max))
	}
	return nil
}
