package editor

import (
	"encoding/json"
	"strconv"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// SelectionEntry is one chosen line item. Part is an exclusive copy taken
// from the catalog at selection time; SoloPrice may diverge from the
// catalog price when the user overrides it. Subtotal is derived and
// recomputed on every mutation, never trusted as stored state.
type SelectionEntry struct {
	Part      entity.CatalogItem `json:"part"`
	Quantity  int                `json:"quantity"`
	SoloPrice int64              `json:"solo_price"`
	Subtotal  int64              `json:"subtotal"`
}

func (e *SelectionEntry) recompute() {
	e.Subtotal = int64(e.Quantity) * e.SoloPrice
}

// ManualSummaryItem is one of the three fixed aggregate lines. ID is
// resolved from the catalog once per load; a nil ID falls back to the
// hardcoded id at submit time.
type ManualSummaryItem struct {
	Kind     entity.AggregateKind `json:"-"`
	ID       *int                 `json:"id,omitempty"`
	Price    int64                `json:"price"`
	Quantity int                  `json:"quantity"`
	Subtotal int64                `json:"subtotal"`
}

func (m *ManualSummaryItem) recompute() {
	m.Subtotal = int64(m.Quantity) * m.Price
}

// LaborItem is one labor-rate line drawn from the catalog's labor rows.
// IsTemplate marks lines that came in with the loaded template and controls
// visibility filtering in the template view.
type LaborItem struct {
	entity.CatalogItem
	Quantity   int   `json:"quantity"`
	Subtotal   int64 `json:"subtotal"`
	IsTemplate bool  `json:"is_template"`
}

func (l *LaborItem) recompute() {
	l.Subtotal = int64(l.Quantity) * l.SoloPrice
}

// Coerce turns arbitrary user input into a clamped non-negative integer
// amount. Parse failure and negative input both yield 0, matching the
// form-input semantics of the editor.
func Coerce(v interface{}) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return clampAmount(int64(n))
	case int:
		return clampAmount(int64(n))
	case int64:
		return clampAmount(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return clampAmount(int64(f))
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return clampAmount(int64(f))
	}
	return 0
}

func clampAmount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
