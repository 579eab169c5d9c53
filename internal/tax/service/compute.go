package service

import (
	"github.com/saurabhwebdev/openpos/internal/tax/domain"
	"github.com/shopspring/decimal"
)

// The computations here are pure and shared by the live cart preview and by
// invoice persistence, so the two can never drift apart.

var hundred = decimal.NewFromInt(100)

// ExtractInclusiveTax returns the tax portion contained in a tax-inclusive
// amount: amount - amount/(1 + rate/100). A zero or negative rate yields
// zero without any division.
func ExtractInclusiveTax(amount, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	divisor := decimal.NewFromInt(1).Add(rate.Div(hundred))
	return amount.Sub(amount.Div(divisor))
}

// Line is one cart or invoice line handed to the breakdown: its tax-inclusive
// subtotal and the slab it is taxed under (nil for untaxed lines).
type Line struct {
	Subtotal decimal.Decimal
	Slab     *domain.TaxSlab
}

// Component is one named bucket of the tax breakdown (e.g. CGST, SGST, VAT).
type Component struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown computes the per-component tax split for a cart. An invoice-level
// discount scales every line by afterDiscount/subtotal before tax is
// extracted: the discount shrinks the tax base, it is not subtracted from a
// fixed tax. Returns nil when subtotal is zero.
func Breakdown(lines []Line, afterDiscount, subtotal decimal.Decimal) []Component {
	if subtotal.IsZero() {
		return nil
	}
	ratio := afterDiscount.Div(subtotal)

	var order []string
	amounts := make(map[string]decimal.Decimal)
	add := func(name string, amount decimal.Decimal) {
		if _, seen := amounts[name]; !seen {
			order = append(order, name)
		}
		amounts[name] = amounts[name].Add(amount)
	}

	for _, line := range lines {
		slab := line.Slab
		if slab == nil || !slab.Rate.IsPositive() {
			continue
		}

		lineAmount := line.Subtotal.Mul(ratio)
		taxAmount := ExtractInclusiveTax(lineAmount, slab.Rate)

		if slab.HasComponents() {
			add(*slab.Component1Name, taxAmount.Mul(slab.Component1Rate.Div(slab.Rate)))
			if slab.Component2Name != nil && *slab.Component2Name != "" &&
				slab.Component2Rate != nil && slab.Component2Rate.IsPositive() {
				add(*slab.Component2Name, taxAmount.Mul(slab.Component2Rate.Div(slab.Rate)))
			}
		} else {
			add(slab.Name, taxAmount)
		}
	}

	components := make([]Component, 0, len(order))
	for _, name := range order {
		components = append(components, Component{Name: name, Amount: amounts[name]})
	}
	return components
}

// TotalTax sums a breakdown.
func TotalTax(components []Component) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c.Amount)
	}
	return total
}
