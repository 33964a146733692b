package editor

import (
	"sort"
	"strings"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// ViewMode selects which of the two table renderings is active.
type ViewMode string

const (
	ViewAll      ViewMode = "ALL"
	ViewTemplate ViewMode = "TEMPLATE"
)

// Row is one rendered table line.
type Row struct {
	ItemCode      string `json:"item_code"`
	MajorCategory string `json:"major_category"`
	MinorCategory string `json:"minor_category"`
	Name          string `json:"name"`
	MakerName     string `json:"maker_name"`
	Unit          string `json:"unit"`
	UL            bool   `json:"ul"`
	CE            bool   `json:"ce"`
	KC            bool   `json:"kc"`
	Etc           string `json:"etc,omitempty"`
	SoloPrice     int64  `json:"solo_price"`
	Quantity      int    `json:"quantity"`
	Subtotal      int64  `json:"subtotal"`
	Selected      bool   `json:"selected"`
}

// Group is a contiguous run of rows sharing a major category; RowSpan is the
// span of the merged first column.
type Group struct {
	Category string `json:"category"`
	RowSpan  int    `json:"row_span"`
	Rows     []Row  `json:"rows"`
}

// TableView is the structured rendering of the parts table plus the fixed
// rows below it, replacing the HTML-string templating of the original page.
type TableView struct {
	Mode            ViewMode            `json:"mode"`
	Groups          []Group             `json:"groups"`
	CategoryOptions []string            `json:"category_options"`
	SortKey         string              `json:"sort_key,omitempty"`
	SortAsc         bool                `json:"sort_asc"`
	Editable        bool                `json:"editable"`
	DisplayOrder    []string            `json:"display_order"`
	ManualRows      []ManualSummaryItem `json:"manual_rows"`
	LaborRows       []LaborItem         `json:"labor_rows"`
}

// RenderQuery filters the template view client-side. The ALL view filters
// server-side through LoadCatalog, so Search/Category are ignored there.
type RenderQuery struct {
	Search   string
	Category string
}

// SetViewMode switches between the two renderings.
func (s *Session) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == ViewAll || mode == ViewTemplate {
		s.viewMode = mode
	}
}

// ViewModeNow returns the active rendering mode.
func (s *Session) ViewModeNow() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// ClickSort emulates a column-header click: toggle direction on the active
// key, otherwise activate the key ascending.
func (s *Session) ClickSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.sortKey {
		s.sortAsc = !s.sortAsc
		return
	}
	s.sortKey = key
	s.sortAsc = true
}

// Render produces the active table view and rebuilds the display order the
// insertion logic depends on.
func (s *Session) Render(q RenderQuery) *TableView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewMode == ViewTemplate {
		return s.renderTemplate(q)
	}
	return s.renderAll()
}

func (s *Session) renderAll() *TableView {
	items := make([]entity.CatalogItem, len(s.parts))
	copy(items, s.parts)

	if s.sortKey != "" {
		s.sortItems(items)
	} else {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].MajorCategory != items[j].MajorCategory {
				return items[i].MajorCategory < items[j].MajorCategory
			}
			return items[i].ItemCode() < items[j].ItemCode()
		})
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, s.rowFor(item))
	}
	return s.finishView(ViewAll, rows, catalog.CategoryOptions(s.parts))
}

func (s *Session) renderTemplate(q RenderQuery) *TableView {
	selected := make([]entity.CatalogItem, 0, len(s.order))
	for _, code := range s.order {
		selected = append(selected, s.entries[code].Part)
	}

	options := catalog.CategoryOptions(selected)

	// same search semantics as the ALL view, but applied in memory over the
	// selection instead of re-querying the backend
	filtered := selected[:0:0]
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, item := range selected {
		if q.Category != "" && item.MajorCategory != q.Category {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		filtered = append(filtered, item)
	}

	rows := make([]Row, 0, len(filtered))
	for _, item := range filtered {
		rows = append(rows, s.rowFor(item))
	}
	return s.finishView(ViewTemplate, rows, options)
}

func matchesSearch(item entity.CatalogItem, needle string) bool {
	for _, field := range []string{item.MajorCategory, item.MinorCategory, item.Name, item.MakerName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *Session) rowFor(item entity.CatalogItem) Row {
	row := Row{
		ItemCode:      item.ItemCode(),
		MajorCategory: item.MajorCategory,
		MinorCategory: item.MinorCategory,
		Name:          item.Name,
		MakerName:     item.MakerName,
		Unit:          item.Unit,
		UL:            item.UL,
		CE:            item.CE,
		KC:            item.KC,
		Etc:           item.Etc,
		SoloPrice:     item.SoloPrice,
	}
	if entry, ok := s.entries[row.ItemCode]; ok {
		row.Selected = true
		row.Quantity = entry.Quantity
		row.SoloPrice = entry.SoloPrice
		row.Subtotal = entry.Subtotal
	}
	return row
}

// finishView groups contiguous same-category rows, records the display
// order, and attaches the fixed rows. Grouping never reorders: only
// adjacency produces a merged header cell.
func (s *Session) finishView(mode ViewMode, rows []Row, options []string) *TableView {
	view := &TableView{
		Mode:            mode,
		CategoryOptions: options,
		SortKey:         s.sortKey,
		SortAsc:         s.sortAsc,
		Editable:        s.mode != ModeView,
	}

	for _, row := range rows {
		n := len(view.Groups)
		if n > 0 && view.Groups[n-1].Category == row.MajorCategory {
			view.Groups[n-1].Rows = append(view.Groups[n-1].Rows, row)
			view.Groups[n-1].RowSpan++
		} else {
			view.Groups = append(view.Groups, Group{
				Category: row.MajorCategory,
				RowSpan:  1,
				Rows:     []Row{row},
			})
		}
		view.DisplayOrder = append(view.DisplayOrder, row.ItemCode)
	}

	s.displayOrder = make([]string, len(view.DisplayOrder))
	copy(s.displayOrder, view.DisplayOrder)

	for _, kind := range []entity.AggregateKind{
		entity.AggregateLocalMaterials,
		entity.AggregateOperatingPC,
		entity.AggregateCableMisc,
	} {
		view.ManualRows = append(view.ManualRows, *s.manual[kind])
	}
	for _, l := range s.labor {
		if mode == ViewTemplate && s.templateLoaded && !l.IsTemplate && l.Quantity == 0 {
			continue
		}
		view.LaborRows = append(view.LaborRows, *l)
	}
	return view
}

// sortItems stable-sorts by the active key: numeric keys compare values,
// string keys compare case-insensitively.
func (s *Session) sortItems(items []entity.CatalogItem) {
	key := s.sortKey
	asc := s.sortAsc
	sort.SliceStable(items, func(i, j int) bool {
		less := itemLess(items[i], items[j], key, s.entries)
		if asc {
			return less
		}
		return itemLess(items[j], items[i], key, s.entries)
	})
}

func itemLess(a, b entity.CatalogItem, key string, entries map[string]*SelectionEntry) bool {
	switch key {
	case "solo_price":
		return a.SoloPrice < b.SoloPrice
	case "quantity":
		return entryQuantity(entries, a) < entryQuantity(entries, b)
	case "subtotal":
		return entrySubtotal(entries, a) < entrySubtotal(entries, b)
	}
	return strings.ToLower(itemField(a, key)) < strings.ToLower(itemField(b, key))
}

func itemField(item entity.CatalogItem, key string) string {
	switch key {
	case "maker":
		return item.MakerName
	case "major":
		return item.MajorCategory
	case "minor":
		return item.MinorCategory
	case "unit":
		return item.Unit
	case "item_code":
		return item.ItemCode()
	case "etc":
		return item.Etc
	}
	return item.Name
}

func entryQuantity(entries map[string]*SelectionEntry, item entity.CatalogItem) int {
	if e, ok := entries[item.ItemCode()]; ok {
		return e.Quantity
	}
	return 0
}

func entrySubtotal(entries map[string]*SelectionEntry, item entity.CatalogItem) int64 {
	if e, ok := entries[item.ItemCode()]; ok {
		return e.Subtotal
	}
	return 0
}
