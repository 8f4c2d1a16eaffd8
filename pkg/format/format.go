// Package format renders amounts and quantities for display using
// Indian numbering conventions (crore and lakh).
package format

import "fmt"

// INR thresholds.
const (
	crore = 1e7
	lakh  = 1e5
)

// INR renders an amount in rupees with the Indian short scale:
// crores above 1,00,00,000, lakhs above 1,00,000, thousands above
// 1,000, rupees otherwise.
func INR(amount float64) string {
	switch {
	case amount >= crore:
		return fmt.Sprintf("₹%.2f Cr", amount/crore)
	case amount >= lakh:
		return fmt.Sprintf("₹%.2f L", amount/lakh)
	case amount >= 1000:
		return fmt.Sprintf("₹%.1fK", amount/1000)
	default:
		return fmt.Sprintf("₹%.0f", amount)
	}
}

// Number renders a quantity with a metric short suffix.
func Number(value float64) string {
	switch {
	case value >= 1e6:
		return fmt.Sprintf("%.2fM", value/1e6)
	case value >= 1000:
		return fmt.Sprintf("%.1fK", value/1000)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}
