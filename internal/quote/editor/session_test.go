package editor

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/testutil"
)

func fixtureItems() []entity.CatalogItem {
	return []entity.CatalogItem{
		{ID: 1, MakerID: "A001", MakerName: "LS Electric", MajorCategory: "breaker", MinorCategory: "mccb", Name: "MCCB 100A", Unit: "ea", SoloPrice: 10000},
		{ID: 2, MakerID: "A001", MakerName: "LS Electric", MajorCategory: "breaker", MinorCategory: "elcb", Name: "ELCB 50A", Unit: "ea", SoloPrice: 8000},
		{ID: 3, MakerID: "B002", MakerName: "Hanyoung", MajorCategory: "magnet", MinorCategory: "contactor", Name: "MC-18b", Unit: "ea", SoloPrice: 12000},
		{ID: 4, MakerID: "B002", MakerName: "Hanyoung", MajorCategory: "relay", MinorCategory: "8pin", Name: "Relay MY4", Unit: "ea", SoloPrice: 3000},
		{ID: 901, MakerID: entity.SentinelMaker, MajorCategory: entity.MajorAggregate, MinorCategory: entity.MinorLocalMaterials, Name: "Local materials"},
		{ID: 902, MakerID: entity.SentinelMaker, MajorCategory: entity.MajorAggregate, MinorCategory: entity.MinorOperatingPC, Name: "Operating PC"},
		{ID: 903, MakerID: entity.SentinelMaker, MajorCategory: entity.MajorAggregate, MinorCategory: entity.MinorCableMisc, Name: "Cable and misc"},
		{ID: 801, MakerID: entity.SentinelMaker, MajorCategory: entity.MajorLabor, MinorCategory: "assembly", Name: "Assembly labor", Unit: "day", SoloPrice: 50000},
		{ID: 802, MakerID: entity.SentinelMaker, MajorCategory: entity.MajorLabor, MinorCategory: "wiring", Name: "Wiring labor", Unit: "day", SoloPrice: 60000},
	}
}

// default display order of the fixture parts in the ALL view
const (
	codeMCCB  = "A001-1"
	codeELCB  = "A001-2"
	codeMC    = "B002-3"
	codeRelay = "B002-4"
)

func newTestSession(t *testing.T, mode Mode, items []entity.CatalogItem) (*Session, *testutil.FakeBackend) {
	t.Helper()
	fake := testutil.NewFakeBackend(items)
	t.Cleanup(fake.Close)

	be := backend.New(fake.URL(), 5*time.Second, zap.NewNop())
	svc := catalog.NewService(catalog.NewMemoryCache(), time.Minute, zap.NewNop())
	sess := New("test-session", Options{
		Backend: be,
		Catalog: svc,
		Mode:    mode,
	})
	if err := sess.LoadCatalog(context.Background(), "", ""); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return sess, fake
}

func mustSetQuantity(t *testing.T, s *Session, code string, qty int64) {
	t.Helper()
	if err := s.SetQuantity(code, qty); err != nil {
		t.Fatalf("SetQuantity(%s, %d): %v", code, qty, err)
	}
}

func TestSetQuantitySelectsAndDeselects(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeMCCB, 3)
	mustSetQuantity(t, sess, codeMC, 1)

	order := sess.SelectedOrder()
	if len(order) != 2 {
		t.Fatalf("expected 2 selected, got %v", order)
	}
	entry, ok := sess.Entry(codeMCCB)
	if !ok {
		t.Fatal("expected entry for selected item")
	}
	if entry.Quantity != 3 || entry.Subtotal != 30000 {
		t.Errorf("entry = qty %d subtotal %d, want 3/30000", entry.Quantity, entry.Subtotal)
	}

	mustSetQuantity(t, sess, codeMCCB, 0)
	order = sess.SelectedOrder()
	if len(order) != 1 || order[0] != codeMC {
		t.Errorf("after deselect, order = %v, want [%s]", order, codeMC)
	}
	if _, ok := sess.Entry(codeMCCB); ok {
		t.Error("deselected entry still present")
	}
}

func TestSelectedOrderMatchesEntries(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	steps := []struct {
		code string
		qty  int64
	}{
		{codeMCCB, 2}, {codeELCB, 1}, {codeMCCB, 5}, {codeMC, 3},
		{codeELCB, 0}, {codeRelay, 1}, {codeMC, 0}, {codeMCCB, 1},
	}
	for _, step := range steps {
		mustSetQuantity(t, sess, step.code, step.qty)

		order := sess.SelectedOrder()
		seen := make(map[string]bool)
		for _, code := range order {
			if seen[code] {
				t.Fatalf("duplicate %s in order %v", code, order)
			}
			seen[code] = true
			entry, ok := sess.Entry(code)
			if !ok {
				t.Fatalf("order references %s with no entry", code)
			}
			if entry.Quantity <= 0 {
				t.Fatalf("order references %s with quantity %d", code, entry.Quantity)
			}
		}
	}
}

func TestSubtotalNeverStale(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeMCCB, 2)
	entry, _ := sess.Entry(codeMCCB)
	if entry.Subtotal != 2*10000 {
		t.Errorf("subtotal after quantity = %d, want 20000", entry.Subtotal)
	}

	if err := sess.SetPrice(codeMCCB, 12500); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	entry, _ = sess.Entry(codeMCCB)
	if entry.Subtotal != 2*12500 {
		t.Errorf("subtotal after price = %d, want 25000", entry.Subtotal)
	}

	mustSetQuantity(t, sess, codeMCCB, 4)
	entry, _ = sess.Entry(codeMCCB)
	if entry.Subtotal != 4*12500 {
		t.Errorf("subtotal after second quantity = %d, want 50000", entry.Subtotal)
	}
}

func TestPriceOverrideBeforeSelectionSurvives(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	if err := sess.SetPrice(codeRelay, 4500); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	mustSetQuantity(t, sess, codeRelay, 2)

	entry, _ := sess.Entry(codeRelay)
	if entry.SoloPrice != 4500 || entry.Subtotal != 9000 {
		t.Errorf("entry = price %d subtotal %d, want 4500/9000", entry.SoloPrice, entry.Subtotal)
	}
}

func TestPriceOverrideSurvivesCatalogReload(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeMCCB, 1)
	if err := sess.SetPrice(codeMCCB, 11111); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}

	if err := sess.LoadCatalog(context.Background(), "MCCB", ""); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	view := sess.Render(RenderQuery{})
	found := false
	for _, g := range view.Groups {
		for _, row := range g.Rows {
			if row.ItemCode == codeMCCB {
				found = true
				if row.SoloPrice != 11111 {
					t.Errorf("catalog row price = %d, want override 11111", row.SoloPrice)
				}
			}
		}
	}
	if !found {
		t.Fatal("selected item missing after reload")
	}
}

func TestLaborListPopulatedOnce(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	if err := sess.SetLaborQuantity(801, 3); err != nil {
		t.Fatalf("SetLaborQuantity: %v", err)
	}
	if err := sess.LoadCatalog(context.Background(), "", "breaker"); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	for _, l := range sess.LaborItems() {
		if l.ID == 801 && l.Quantity != 3 {
			t.Errorf("labor quantity clobbered by reload: %d", l.Quantity)
		}
	}
}

func TestInsertAfterCursor(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	// SelectedOrder = [A, B, C]
	mustSetQuantity(t, sess, codeMCCB, 1)
	mustSetQuantity(t, sess, codeELCB, 1)
	mustSetQuantity(t, sess, codeMC, 1)

	if err := sess.SetInsertAfter(codeELCB); err != nil {
		t.Fatalf("SetInsertAfter: %v", err)
	}
	mustSetQuantity(t, sess, codeRelay, 1)

	want := []string{codeMCCB, codeELCB, codeRelay, codeMC}
	got := sess.SelectedOrder()
	if !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestInsertAfterCursorConsumedOnce(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeELCB, 1)
	mustSetQuantity(t, sess, codeMC, 1)

	if err := sess.SetInsertAfter(codeELCB); err != nil {
		t.Fatalf("SetInsertAfter: %v", err)
	}
	mustSetQuantity(t, sess, codeRelay, 1) // consumes the cursor
	mustSetQuantity(t, sess, codeMCCB, 1) // default rule again

	want := []string{codeMCCB, codeELCB, codeRelay, codeMC}
	got := sess.SelectedOrder()
	if !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDefaultInsertionFollowsDisplayOrder(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	// displayed order: MCCB, ELCB, MC, Relay
	mustSetQuantity(t, sess, codeMCCB, 1)
	mustSetQuantity(t, sess, codeMC, 1)
	mustSetQuantity(t, sess, codeELCB, 1) // displayed between the two

	want := []string{codeMCCB, codeELCB, codeMC}
	got := sess.SelectedOrder()
	if !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestMoveSelected(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeMCCB, 1)
	mustSetQuantity(t, sess, codeELCB, 1)

	if err := sess.MoveSelected(codeELCB, -1); err != nil {
		t.Fatalf("MoveSelected: %v", err)
	}
	if got := sess.SelectedOrder(); !equalStrings(got, []string{codeELCB, codeMCCB}) {
		t.Errorf("order after move = %v", got)
	}

	// moving past the edge is a no-op
	if err := sess.MoveSelected(codeELCB, -1); err != nil {
		t.Fatalf("MoveSelected at edge: %v", err)
	}
	if got := sess.SelectedOrder(); !equalStrings(got, []string{codeELCB, codeMCCB}) {
		t.Errorf("order after edge move = %v", got)
	}
}

func TestViewModeRejectsMutations(t *testing.T) {
	sess, _ := newTestSession(t, ModeView, fixtureItems())
	sess.Render(RenderQuery{})

	if err := sess.SetQuantity(codeMCCB, 1); err != ErrReadOnly {
		t.Errorf("SetQuantity err = %v, want ErrReadOnly", err)
	}
	if err := sess.SetPrice(codeMCCB, 100); err != ErrReadOnly {
		t.Errorf("SetPrice err = %v, want ErrReadOnly", err)
	}
	if err := sess.SetManual(entity.AggregateLocalMaterials, 1, 1); err != ErrReadOnly {
		t.Errorf("SetManual err = %v, want ErrReadOnly", err)
	}
	if err := sess.SetMeta(DocumentMeta{Name: "x"}); err != ErrReadOnly {
		t.Errorf("SetMeta err = %v, want ErrReadOnly", err)
	}
}

func TestUnknownItemCode(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	if err := sess.SetQuantity("Z999-42", 1); err != ErrUnknownItem {
		t.Errorf("SetQuantity err = %v, want ErrUnknownItem", err)
	}
	if err := sess.RemoveSelected("Z999-42"); err != ErrUnknownItem {
		t.Errorf("RemoveSelected err = %v, want ErrUnknownItem", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
