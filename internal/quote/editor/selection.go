package editor

import "github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"

// SetQuantity upserts or removes the selection entry for itemCode. A
// positive quantity selects the item (creating the entry from the catalog
// copy and slotting it into the order); zero removes it, even when a price
// override exists. The catalog copy's price is the entry's initial price, so
// an override applied before selection is preserved.
func (s *Session) SetQuantity(itemCode string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}

	qty := int(clampAmount(quantity))
	entry, selected := s.entries[itemCode]

	if qty <= 0 {
		if selected {
			s.deleteEntry(itemCode)
			s.dirty = true
		}
		return nil
	}

	if selected {
		entry.Quantity = qty
		entry.recompute()
		s.dirty = true
		return nil
	}

	part, ok := s.partsByCode[itemCode]
	if !ok {
		return ErrUnknownItem
	}
	entry = &SelectionEntry{
		Part:      *part,
		Quantity:  qty,
		SoloPrice: part.SoloPrice,
	}
	entry.recompute()
	s.entries[itemCode] = entry
	s.insertIntoOrder(itemCode)
	s.dirty = true
	return nil
}

// SetPrice overrides the unit price for itemCode on the catalog copy (so the
// ALL view stays in sync) and on the selection entry when selected.
func (s *Session) SetPrice(itemCode string, price int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}

	p := clampAmount(price)
	part, inCatalog := s.partsByCode[itemCode]
	entry, selected := s.entries[itemCode]
	if !inCatalog && !selected {
		return ErrUnknownItem
	}

	if inCatalog {
		part.SoloPrice = p
	}
	if selected {
		entry.SoloPrice = p
		entry.recompute()
	}
	s.dirty = true
	return nil
}

// insertIntoOrder slots a freshly selected item into SelectedOrder. A
// pending insert-after cursor wins and is consumed; otherwise the item lands
// immediately before the first selected item that appears after it in the
// most recently rendered display order, preserving catalog order by default.
// Items absent from the display order append at the end.
func (s *Session) insertIntoOrder(itemCode string) {
	if s.pendingInsert != nil {
		at := *s.pendingInsert
		if at < 0 {
			at = 0
		}
		if at > len(s.order) {
			at = len(s.order)
		}
		s.order = append(s.order, "")
		copy(s.order[at+1:], s.order[at:])
		s.order[at] = itemCode
		s.pendingInsert = nil
		return
	}

	pos := indexOf(s.displayOrder, itemCode)
	if pos < 0 {
		s.order = append(s.order, itemCode)
		return
	}
	for i, existing := range s.order {
		if indexOf(s.displayOrder, existing) > pos {
			s.order = append(s.order, "")
			copy(s.order[i+1:], s.order[i:])
			s.order[i] = itemCode
			return
		}
	}
	s.order = append(s.order, itemCode)
}

// MoveSelected swaps the entry with its neighbor in SelectedOrder.
// Out-of-bounds moves are no-ops.
func (s *Session) MoveSelected(itemCode string, direction int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}

	i := indexOf(s.order, itemCode)
	if i < 0 {
		return ErrUnknownItem
	}
	j := i + direction
	if j < 0 || j >= len(s.order) {
		return nil
	}
	s.order[i], s.order[j] = s.order[j], s.order[i]
	s.dirty = true
	return nil
}

// RemoveSelected drops the entry from both the mapping and the order.
func (s *Session) RemoveSelected(itemCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}
	if _, ok := s.entries[itemCode]; !ok {
		return ErrUnknownItem
	}
	s.deleteEntry(itemCode)
	s.dirty = true
	return nil
}

// SetInsertAfter marks "insert the next selection after this item". An
// unknown item code points the cursor at the end of the order.
func (s *Session) SetInsertAfter(itemCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}

	at := len(s.order)
	if i := indexOf(s.order, itemCode); i >= 0 {
		at = i + 1
	}
	s.pendingInsert = &at
	return nil
}

// SetManual updates one of the three fixed aggregate lines.
func (s *Session) SetManual(kind entity.AggregateKind, price, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}
	item, ok := s.manual[kind]
	if !ok {
		return ErrUnknownItem
	}
	item.Price = clampAmount(price)
	item.Quantity = int(clampAmount(quantity))
	item.recompute()
	s.dirty = true
	return nil
}

// SetLaborQuantity updates a labor line's quantity by its resource id.
func (s *Session) SetLaborQuantity(laborID int, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}
	for _, l := range s.labor {
		if l.ID == laborID {
			l.Quantity = int(clampAmount(quantity))
			l.recompute()
			s.dirty = true
			return nil
		}
	}
	return ErrUnknownItem
}

// SetLaborPrice overrides a labor line's rate by its resource id.
func (s *Session) SetLaborPrice(laborID int, price int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}
	for _, l := range s.labor {
		if l.ID == laborID {
			l.SoloPrice = clampAmount(price)
			l.recompute()
			s.dirty = true
			return nil
		}
	}
	return ErrUnknownItem
}

// SelectedOrder returns a copy of the current bill-of-materials order.
func (s *Session) SelectedOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Entry returns a copy of the selection entry for itemCode.
func (s *Session) Entry(itemCode string) (SelectionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[itemCode]
	if !ok {
		return SelectionEntry{}, false
	}
	return *entry, true
}

// ManualItem returns a copy of one fixed aggregate line.
func (s *Session) ManualItem(kind entity.AggregateKind) ManualSummaryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.manual[kind]
}

// LaborItems returns copies of the labor lines.
func (s *Session) LaborItems() []LaborItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LaborItem, 0, len(s.labor))
	for _, l := range s.labor {
		out = append(out, *l)
	}
	return out
}

func (s *Session) deleteEntry(itemCode string) {
	delete(s.entries, itemCode)
	if i := indexOf(s.order, itemCode); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
