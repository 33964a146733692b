package pricecompare

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

func TestComputeTotalsAndMargin(t *testing.T) {
	doc := &entity.PriceCompareDocument{
		Resources: []entity.PriceCompareRow{
			{MakerID: "A001", ResourcesID: 1, Quantity: 2, CostPrice: 10000, QuotePrice: 13000},
			{MakerID: "B002", ResourcesID: 3, Quantity: 1, CostPrice: 5000, QuotePrice: 5000},
		},
	}

	totals := Compute(doc)

	if !totals.TotalCost.Equal(decimal.NewFromInt(25000)) {
		t.Errorf("cost = %s, want 25000", totals.TotalCost)
	}
	if !totals.TotalQuote.Equal(decimal.NewFromInt(31000)) {
		t.Errorf("quote = %s, want 31000", totals.TotalQuote)
	}
	if !totals.Margin.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("margin = %s, want 6000", totals.Margin)
	}
	// 6000 / 31000 * 100 = 19.35 at two places
	if !totals.MarginPercent.Equal(decimal.NewFromFloat(19.35)) {
		t.Errorf("margin percent = %s, want 19.35", totals.MarginPercent)
	}

	if len(totals.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(totals.Lines))
	}
	if !totals.Lines[0].Margin.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("line 0 margin = %s, want 6000", totals.Lines[0].Margin)
	}
	if !totals.Lines[1].Margin.IsZero() {
		t.Errorf("line 1 margin = %s, want 0", totals.Lines[1].Margin)
	}
}

func TestComputeEmptySheet(t *testing.T) {
	totals := Compute(&entity.PriceCompareDocument{})

	if !totals.TotalCost.IsZero() || !totals.TotalQuote.IsZero() {
		t.Errorf("totals = %s/%s, want zero", totals.TotalCost, totals.TotalQuote)
	}
	if !totals.MarginPercent.IsZero() {
		t.Errorf("margin percent = %s, want zero with no quote", totals.MarginPercent)
	}
}

func TestFromMachineSeedsBothColumns(t *testing.T) {
	machine := &entity.MachineDocument{
		Name:    "Panel",
		Client:  "ACME",
		Creator: "Kim",
		Resources: []entity.ResourceRow{
			{MakerID: "A001", ResourcesID: 1, SoloPrice: 10000, Quantity: 3, DisplayName: "MCCB", DisplayUnit: "ea"},
		},
	}

	sheet := FromMachine(machine)

	if sheet.Name != "Panel" || sheet.Creator != "Kim" {
		t.Errorf("header = %+v", sheet)
	}
	if len(sheet.Resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(sheet.Resources))
	}
	row := sheet.Resources[0]
	if row.CostPrice != 10000 || row.QuotePrice != 10000 {
		t.Errorf("row prices = %d/%d, want both seeded at 10000", row.CostPrice, row.QuotePrice)
	}
	if row.Name != "MCCB" || row.Quantity != 3 {
		t.Errorf("row = %+v", row)
	}

	if totals := Compute(sheet); !totals.Margin.IsZero() {
		t.Errorf("seeded sheet margin = %s, want zero", totals.Margin)
	}
}
