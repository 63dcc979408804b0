package domain

import (
	"fmt"
	"math"
)

// DiscountPercentage returns the whole-number discount percentage between the
// original and discounted price, or 0 when the pair doesn't describe a
// discount (non-positive prices, or discounted >= original).
func DiscountPercentage(originalPrice, discountedPrice float64) int {
	if originalPrice <= 0 || discountedPrice <= 0 || discountedPrice >= originalPrice {
		return 0
	}
	percent := (originalPrice - discountedPrice) / originalPrice * 100
	return int(math.Round(percent))
}

// FormatPrice renders a price with the peso symbol and two decimal places.
func FormatPrice(price float64) string {
	return fmt.Sprintf("₱%.2f", price)
}
