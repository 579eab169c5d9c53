package service

import (
	"testing"

	"github.com/saurabhwebdev/openpos/internal/tax/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func gstSlab(rate, half string) *domain.TaxSlab {
	return &domain.TaxSlab{
		Name:           "GST " + rate + "%",
		TaxType:        "CGST+SGST",
		Rate:           dec(rate),
		Component1Name: strPtr("CGST"),
		Component1Rate: decPtr(half),
		Component2Name: strPtr("SGST"),
		Component2Rate: decPtr(half),
	}
}

func TestExtractInclusiveTax(t *testing.T) {
	// 236.00 at 18% inclusive contains exactly 36.00 of tax.
	tax := ExtractInclusiveTax(dec("236.00"), dec("18"))
	assert.True(t, tax.Equal(dec("36")), "got %s", tax)

	// Base + tax reassembles the inclusive amount.
	base := dec("236.00").Sub(tax)
	assert.True(t, base.Equal(dec("200")), "got %s", base)
}

func TestExtractInclusiveTax_ZeroRate(t *testing.T) {
	assert.True(t, ExtractInclusiveTax(dec("100.00"), decimal.Zero).IsZero())
	assert.True(t, ExtractInclusiveTax(dec("100.00"), dec("-5")).IsZero())
}

func TestBreakdown_ComponentSplit(t *testing.T) {
	slab := gstSlab("18", "9")
	lines := []Line{{Subtotal: dec("236.00"), Slab: slab}}

	components := Breakdown(lines, dec("236.00"), dec("236.00"))
	require.Len(t, components, 2)

	assert.Equal(t, "CGST", components[0].Name)
	assert.Equal(t, "SGST", components[1].Name)
	assert.True(t, components[0].Amount.Equal(dec("18")), "got %s", components[0].Amount)
	assert.True(t, components[1].Amount.Equal(dec("18")), "got %s", components[1].Amount)
	assert.True(t, TotalTax(components).Equal(dec("36")))
}

func TestBreakdown_ComponentsSumToTotal(t *testing.T) {
	slab := gstSlab("28", "14")
	lines := []Line{
		{Subtotal: dec("512.00"), Slab: slab},
		{Subtotal: dec("87.50"), Slab: slab},
	}

	components := Breakdown(lines, dec("599.50"), dec("599.50"))
	whole := ExtractInclusiveTax(dec("599.50"), dec("28"))

	diff := TotalTax(components).Sub(whole).Abs()
	assert.True(t, diff.LessThan(dec("0.000001")), "split drifted by %s", diff)
}

func TestBreakdown_DiscountScalesTaxBase(t *testing.T) {
	// 10% discount on a 236.00 cart: tax is derived from 212.40, not 236.00.
	slab := gstSlab("18", "9")
	lines := []Line{{Subtotal: dec("236.00"), Slab: slab}}

	components := Breakdown(lines, dec("212.40"), dec("236.00"))
	total := TotalTax(components)

	expected := ExtractInclusiveTax(dec("212.40"), dec("18"))
	assert.True(t, total.Equal(expected), "got %s want %s", total, expected)
	assert.True(t, total.Round(2).Equal(dec("32.40")), "got %s", total.Round(2))
}

func TestBreakdown_NoComponentsUsesSlabName(t *testing.T) {
	slab := &domain.TaxSlab{Name: "VAT Standard", TaxType: "VAT", Rate: dec("20")}
	lines := []Line{{Subtotal: dec("120.00"), Slab: slab}}

	components := Breakdown(lines, dec("120.00"), dec("120.00"))
	require.Len(t, components, 1)
	assert.Equal(t, "VAT Standard", components[0].Name)
	assert.True(t, components[0].Amount.Equal(dec("20")), "got %s", components[0].Amount)
}

func TestBreakdown_SkipsUntaxedLines(t *testing.T) {
	slab := gstSlab("18", "9")
	lines := []Line{
		{Subtotal: dec("118.00"), Slab: slab},
		{Subtotal: dec("50.00"), Slab: nil},
		{Subtotal: dec("30.00"), Slab: &domain.TaxSlab{Name: "GST 0% (Exempt)", Rate: decimal.Zero}},
	}

	components := Breakdown(lines, dec("198.00"), dec("198.00"))
	total := TotalTax(components)
	expected := ExtractInclusiveTax(dec("118.00"), dec("18"))
	assert.True(t, total.Equal(expected), "got %s want %s", total, expected)
}

func TestBreakdown_ZeroSubtotal(t *testing.T) {
	assert.Nil(t, Breakdown(nil, decimal.Zero, decimal.Zero))
}

func TestBreakdown_MergesSameComponentAcrossSlabs(t *testing.T) {
	// CGST buckets from a 5% slab and an 18% slab accumulate under one name.
	lines := []Line{
		{Subtotal: dec("105.00"), Slab: gstSlab("5", "2.5")},
		{Subtotal: dec("118.00"), Slab: gstSlab("18", "9")},
	}

	components := Breakdown(lines, dec("223.00"), dec("223.00"))
	require.Len(t, components, 2)

	cgst := components[0]
	require.Equal(t, "CGST", cgst.Name)
	expected := ExtractInclusiveTax(dec("105.00"), dec("5")).Div(decimal.NewFromInt(2)).
		Add(ExtractInclusiveTax(dec("118.00"), dec("18")).Div(decimal.NewFromInt(2)))
	diff := cgst.Amount.Sub(expected).Abs()
	assert.True(t, diff.LessThan(dec("0.000001")), "got %s want %s", cgst.Amount, expected)
}
