package editor

import (
	"testing"
)

func flattenCodes(view *TableView) []string {
	var codes []string
	for _, g := range view.Groups {
		for _, row := range g.Rows {
			codes = append(codes, row.ItemCode)
		}
	}
	return codes
}

func TestRenderAllGroupsByMajorCategory(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	view := sess.Render(RenderQuery{})
	if view.Mode != ViewAll {
		t.Fatalf("mode = %s, want ALL", view.Mode)
	}

	// default order is (majorCategory, itemCode): breaker x2, magnet, relay
	wantGroups := []struct {
		category string
		rowSpan  int
	}{
		{"breaker", 2}, {"magnet", 1}, {"relay", 1},
	}
	if len(view.Groups) != len(wantGroups) {
		t.Fatalf("groups = %d, want %d", len(view.Groups), len(wantGroups))
	}
	for i, want := range wantGroups {
		if view.Groups[i].Category != want.category || view.Groups[i].RowSpan != want.rowSpan {
			t.Errorf("group %d = %s/%d, want %s/%d",
				i, view.Groups[i].Category, view.Groups[i].RowSpan, want.category, want.rowSpan)
		}
	}

	want := []string{codeMCCB, codeELCB, codeMC, codeRelay}
	if !equalStrings(view.DisplayOrder, want) {
		t.Errorf("display order = %v, want %v", view.DisplayOrder, want)
	}
}

func TestRenderAllExcludesFixedRowsFromTable(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	view := sess.Render(RenderQuery{})
	for _, code := range flattenCodes(view) {
		if code == "T000-901" || code == "T000-801" {
			t.Errorf("fixed row %s rendered in the parts table", code)
		}
	}
	if len(view.ManualRows) != 3 {
		t.Errorf("manual rows = %d, want 3", len(view.ManualRows))
	}
	if len(view.LaborRows) != 2 {
		t.Errorf("labor rows = %d, want 2", len(view.LaborRows))
	}
}

func TestRenderTemplatePreservesSelectedOrder(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	// interleave categories so grouping stays incidental
	mustSetQuantity(t, sess, codeMC, 1)    // magnet
	mustSetQuantity(t, sess, codeMCCB, 1)  // breaker, default rule puts it first
	mustSetQuantity(t, sess, codeRelay, 1) // relay, appended

	sess.SetViewMode(ViewTemplate)
	view := sess.Render(RenderQuery{})

	want := sess.SelectedOrder()
	if got := flattenCodes(view); !equalStrings(got, want) {
		t.Errorf("template rows = %v, want selected order %v", got, want)
	}
	for _, g := range view.Groups {
		if g.RowSpan != len(g.Rows) {
			t.Errorf("group %s rowspan %d != rows %d", g.Category, g.RowSpan, len(g.Rows))
		}
	}
}

func TestRenderTemplateFilters(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	mustSetQuantity(t, sess, codeMCCB, 1)
	mustSetQuantity(t, sess, codeMC, 1)
	mustSetQuantity(t, sess, codeRelay, 1)
	sess.SetViewMode(ViewTemplate)

	byCategory := sess.Render(RenderQuery{Category: "magnet"})
	if got := flattenCodes(byCategory); !equalStrings(got, []string{codeMC}) {
		t.Errorf("category filter rows = %v, want [%s]", got, codeMC)
	}

	bySearch := sess.Render(RenderQuery{Search: "relay"})
	if got := flattenCodes(bySearch); !equalStrings(got, []string{codeRelay}) {
		t.Errorf("search rows = %v, want [%s]", got, codeRelay)
	}

	// search matches maker name too, case-insensitive
	byMaker := sess.Render(RenderQuery{Search: "hanyoung"})
	if got := flattenCodes(byMaker); !equalStrings(got, []string{codeMC, codeRelay}) {
		t.Errorf("maker search rows = %v", got)
	}
}

func TestCategoryOptionsPerMode(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	all := sess.Render(RenderQuery{})
	if !equalStrings(all.CategoryOptions, []string{"breaker", "magnet", "relay"}) {
		t.Errorf("ALL options = %v", all.CategoryOptions)
	}

	sess.Render(RenderQuery{})
	mustSetQuantity(t, sess, codeMC, 1)
	sess.SetViewMode(ViewTemplate)
	tmpl := sess.Render(RenderQuery{})
	if !equalStrings(tmpl.CategoryOptions, []string{"magnet"}) {
		t.Errorf("TEMPLATE options = %v", tmpl.CategoryOptions)
	}
}

func TestSortToggle(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	sess.ClickSort("name")
	asc := flattenCodes(sess.Render(RenderQuery{}))
	// ELCB 50A, MC-18b, MCCB 100A, Relay MY4
	if !equalStrings(asc, []string{codeELCB, codeMC, codeMCCB, codeRelay}) {
		t.Errorf("ascending by name = %v", asc)
	}

	sess.ClickSort("name")
	desc := flattenCodes(sess.Render(RenderQuery{}))
	if !equalStrings(desc, []string{codeRelay, codeMCCB, codeMC, codeELCB}) {
		t.Errorf("descending by name = %v", desc)
	}

	sess.ClickSort("name")
	again := flattenCodes(sess.Render(RenderQuery{}))
	if !equalStrings(again, asc) {
		t.Errorf("third click = %v, want first ascending order %v", again, asc)
	}
}

func TestSortNumericKey(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	sess.ClickSort("solo_price")
	got := flattenCodes(sess.Render(RenderQuery{}))
	// 3000, 8000, 10000, 12000
	if !equalStrings(got, []string{codeRelay, codeELCB, codeMCCB, codeMC}) {
		t.Errorf("by price = %v", got)
	}
}

func TestRenderRebuildDisplayOrderAfterSort(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})

	sess.ClickSort("solo_price")
	view := sess.Render(RenderQuery{})

	// default insertion now follows the sorted display order
	mustSetQuantity(t, sess, view.DisplayOrder[0], 1)
	mustSetQuantity(t, sess, view.DisplayOrder[2], 1)
	mustSetQuantity(t, sess, view.DisplayOrder[1], 1)

	want := []string{view.DisplayOrder[0], view.DisplayOrder[1], view.DisplayOrder[2]}
	if got := sess.SelectedOrder(); !equalStrings(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}
