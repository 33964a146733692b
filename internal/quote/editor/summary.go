package editor

import "github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"

// summaryCategories is the fixed breakdown shown under the table. Categories
// outside this list still count toward the material and grand totals.
var summaryCategories = []string{
	"breaker",
	"magnet",
	"relay",
	"plc",
	"inverter",
	"smps",
	"terminal",
	"enclosure",
}

// CategoryTotal is one line of the per-category breakdown.
type CategoryTotal struct {
	Category  string `json:"category"`
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

// Summary is the totals block. Every value is recomputed from the live
// selection on each call; nothing here is cached between mutations.
type Summary struct {
	Categories     []CategoryTotal `json:"categories"`
	LocalMaterials int64           `json:"local_materials"`
	OperatingPC    int64           `json:"operating_pc"`
	CableMisc      int64           `json:"cable_misc"`
	MaterialTotal  int64           `json:"material_total"`
	LaborTotal     int64           `json:"labor_total"`
	GrandTotal     int64           `json:"grand_total"`

	MaterialFormatted string `json:"material_formatted"`
	LaborFormatted    string `json:"labor_formatted"`
	GrandFormatted    string `json:"grand_formatted"`
}

// Recompute aggregates the selection into category subtotals, a material
// total, a labor total and a grand total. Pure read; safe to call after
// every mutation.
func (s *Session) Recompute() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCategory := make(map[string]int64)
	var material int64
	for _, code := range s.order {
		entry := s.entries[code]
		byCategory[entry.Part.MajorCategory] += entry.Subtotal
		material += entry.Subtotal
	}

	sum := &Summary{
		LocalMaterials: s.manual[entity.AggregateLocalMaterials].Subtotal,
		OperatingPC:    s.manual[entity.AggregateOperatingPC].Subtotal,
		CableMisc:      s.manual[entity.AggregateCableMisc].Subtotal,
	}
	for _, cat := range summaryCategories {
		total := byCategory[cat]
		sum.Categories = append(sum.Categories, CategoryTotal{
			Category:  cat,
			Total:     total,
			Formatted: s.printer.Sprintf("%d", total),
		})
	}

	material += sum.LocalMaterials + sum.OperatingPC + sum.CableMisc

	var labor int64
	for _, l := range s.labor {
		labor += l.Subtotal
	}

	sum.MaterialTotal = material
	sum.LaborTotal = labor
	sum.GrandTotal = material + labor
	sum.MaterialFormatted = s.printer.Sprintf("%d", material)
	sum.LaborFormatted = s.printer.Sprintf("%d", labor)
	sum.GrandFormatted = s.printer.Sprintf("%d KRW", sum.GrandTotal)
	return sum
}
