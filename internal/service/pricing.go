package service

import (
	"github.com/shopspring/decimal"

	"github.com/pancakehouse/backend/internal/models"
)

// UnitPrice is the snapshot price for one pancake of the given size:
// base_price * price_multiplier, with no size meaning a multiplier of 1.
// Rounded to 2 decimal places since multipliers carry 2 fractional digits.
func UnitPrice(pancake *models.Pancake, size *models.Size) decimal.Decimal {
	if size == nil {
		return pancake.BasePrice.Round(2)
	}
	return pancake.BasePrice.Mul(size.PriceMultiplier).Round(2)
}

// LineTotal is unit_price*quantity plus every topping price*quantity.
func LineTotal(unitPrice decimal.Decimal, quantity uint, toppingPrices []decimal.Decimal) decimal.Decimal {
	qty := decimal.NewFromInt(int64(quantity))
	total := unitPrice.Mul(qty)
	for _, p := range toppingPrices {
		total = total.Add(p.Mul(qty))
	}
	return total
}
