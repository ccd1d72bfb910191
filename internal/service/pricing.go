package service

import (
	"math"

	"github.com/park-seok-hoon/minishop/pkg/apperr"
)

// linePrice computes price x quantity, rejecting products that cannot be
// represented in an order total. price is validated non-negative and quantity
// positive before this is called.
func linePrice(price int64, quantity int) (int64, error) {
	if price == 0 {
		return 0, nil
	}
	q := int64(quantity)
	if price > math.MaxInt64/q {
		return 0, apperr.New(apperr.CodePriceOverflow)
	}
	return price * q, nil
}

// addPrice accumulates a line into a running total with the same guard.
func addPrice(total, line int64) (int64, error) {
	if total > math.MaxInt64-line {
		return 0, apperr.New(apperr.CodePriceOverflow)
	}
	return total + line, nil
}
