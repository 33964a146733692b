package editor

import (
	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// MergeResult counts what a template merge did with each resource row.
// Dropped rows used to vanish silently; the count is surfaced so the shell
// can warn the user.
type MergeResult struct {
	Parts   int `json:"parts"`
	Manual  int `json:"manual"`
	Labor   int `json:"labor"`
	Dropped int `json:"dropped"`
}

// ApplyTemplate reconstructs the selection model and the fixed rows from a
// saved document's flattened resource list. Document order becomes the new
// SelectedOrder. Sentinel-maker rows resolve against the three manual
// summary ids first, then the labor list, in that fixed order; anything left
// is dropped and counted. Parts missing from the current catalog are rebuilt
// from the row's denormalized display fields. The view flips to the template
// view so the user immediately sees what was loaded.
func (s *Session) ApplyTemplate(doc *entity.MachineDocument) *MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*SelectionEntry)
	s.order = nil
	s.pendingInsert = nil
	for _, item := range s.manual {
		item.Price = 0
		item.Quantity = 0
		item.Subtotal = 0
	}
	for _, l := range s.labor {
		l.Quantity = 0
		l.Subtotal = 0
		l.IsTemplate = false
	}

	result := &MergeResult{}
	for _, row := range doc.Resources {
		if row.MakerID == entity.SentinelMaker {
			s.mergeSentinelRow(row, result)
			continue
		}
		s.mergePartRow(row, result)
	}

	s.templateLoaded = true
	s.viewMode = ViewTemplate
	if result.Dropped > 0 {
		s.logger.Warn("template merge dropped resource rows",
			zap.Int("dropped", result.Dropped),
			zap.Int("doc_id", doc.ID),
		)
	}
	return result
}

func (s *Session) mergeSentinelRow(row entity.ResourceRow, result *MergeResult) {
	for _, kind := range []entity.AggregateKind{
		entity.AggregateLocalMaterials,
		entity.AggregateOperatingPC,
		entity.AggregateCableMisc,
	} {
		if s.manualIDs.Matches(kind, row.ResourcesID) {
			item := s.manual[kind]
			item.Price = clampAmount(row.SoloPrice)
			item.Quantity = int(clampAmount(int64(row.Quantity)))
			item.recompute()
			result.Manual++
			return
		}
	}
	for _, l := range s.labor {
		if l.ID == row.ResourcesID {
			l.Quantity = int(clampAmount(int64(row.Quantity)))
			l.SoloPrice = clampAmount(row.SoloPrice)
			l.recompute()
			l.IsTemplate = true
			result.Labor++
			return
		}
	}
	result.Dropped++
}

func (s *Session) mergePartRow(row entity.ResourceRow, result *MergeResult) {
	qty := int(clampAmount(int64(row.Quantity)))
	if qty <= 0 {
		result.Dropped++
		return
	}

	code := row.ItemCode()
	part, ok := s.partsByCode[code]
	var partCopy entity.CatalogItem
	if ok {
		partCopy = *part
	} else {
		// the saved part fell out of the current catalog page; rebuild it
		// from the denormalized display fields
		partCopy = entity.CatalogItem{
			ID:            row.ResourcesID,
			MakerID:       row.MakerID,
			MakerName:     row.DisplayMaker,
			MajorCategory: row.DisplayMajorCategory,
			MinorCategory: row.DisplayMinorCategory,
			Name:          row.DisplayName,
			Unit:          row.DisplayUnit,
			SoloPrice:     clampAmount(row.SoloPrice),
		}
	}

	if existing, dup := s.entries[code]; dup {
		existing.Quantity = qty
		existing.SoloPrice = clampAmount(row.SoloPrice)
		existing.recompute()
		return
	}

	entry := &SelectionEntry{
		Part:      partCopy,
		Quantity:  qty,
		SoloPrice: clampAmount(row.SoloPrice),
	}
	entry.recompute()
	s.entries[code] = entry
	s.order = append(s.order, code)
	result.Parts++

	if ok {
		part.SoloPrice = entry.SoloPrice
	}
}
