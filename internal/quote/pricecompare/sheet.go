// Package pricecompare computes the totals of an internal-vs-quotation cost
// sheet: per-line cost and quote subtotals, sheet totals, margin and margin
// percent.
package pricecompare

import (
	"github.com/shopspring/decimal"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

var hundred = decimal.NewFromInt(100)

// LineTotals is one computed sheet line.
type LineTotals struct {
	Row           entity.PriceCompareRow `json:"row"`
	CostSubtotal  decimal.Decimal        `json:"cost_subtotal"`
	QuoteSubtotal decimal.Decimal        `json:"quote_subtotal"`
	Margin        decimal.Decimal        `json:"margin"`
}

// SheetTotals aggregates a whole price-compare sheet.
type SheetTotals struct {
	Lines         []LineTotals    `json:"lines"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalQuote    decimal.Decimal `json:"total_quote"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// Compute derives all totals for the sheet. Margin percent is relative to
// the quoted total and zero when nothing is quoted.
func Compute(doc *entity.PriceCompareDocument) *SheetTotals {
	totals := &SheetTotals{}
	for _, row := range doc.Resources {
		qty := decimal.NewFromInt(int64(row.Quantity))
		cost := decimal.NewFromInt(row.CostPrice).Mul(qty)
		quote := decimal.NewFromInt(row.QuotePrice).Mul(qty)

		totals.Lines = append(totals.Lines, LineTotals{
			Row:           row,
			CostSubtotal:  cost,
			QuoteSubtotal: quote,
			Margin:        quote.Sub(cost),
		})
		totals.TotalCost = totals.TotalCost.Add(cost)
		totals.TotalQuote = totals.TotalQuote.Add(quote)
	}

	totals.Margin = totals.TotalQuote.Sub(totals.TotalCost)
	if !totals.TotalQuote.IsZero() {
		totals.MarginPercent = totals.Margin.Div(totals.TotalQuote).Mul(hundred).Round(2)
	}
	return totals
}

// FromMachine seeds a price-compare sheet from a machine document, copying
// each resource's price into both columns so the quote side starts at cost.
func FromMachine(doc *entity.MachineDocument) *entity.PriceCompareDocument {
	sheet := &entity.PriceCompareDocument{
		Name:        doc.Name,
		Client:      doc.Client,
		Creator:     doc.Creator,
		Description: doc.Description,
	}
	for _, row := range doc.Resources {
		sheet.Resources = append(sheet.Resources, entity.PriceCompareRow{
			MakerID:     row.MakerID,
			ResourcesID: row.ResourcesID,
			Name:        row.DisplayName,
			Unit:        row.DisplayUnit,
			Quantity:    row.Quantity,
			CostPrice:   row.SoloPrice,
			QuotePrice:  row.SoloPrice,
		})
	}
	return sheet
}
