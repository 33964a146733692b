package editor

import (
	"context"
	"strings"
	"testing"
)

func primeDraft(t *testing.T, sess *Session) {
	t.Helper()
	sess.Render(RenderQuery{})
	if err := sess.SetMeta(DocumentMeta{Name: "Panel", Creator: "Kim"}); err != nil {
		t.Fatalf("SetMeta: %v", err)
	}
	mustSetQuantity(t, sess, codeMCCB, 1)
}

func TestAutosaveTickSavesDirtyDraft(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	primeDraft(t, sess)

	sess.autosaveTick(context.Background())

	if fake.CreateCalls != 1 {
		t.Fatalf("create calls = %d, want 1", fake.CreateCalls)
	}
	st := sess.Status()
	if st.State != "saved" || st.DocID == 0 {
		t.Errorf("status = %+v, want saved with doc id", st)
	}
	if sess.Dirty() {
		t.Error("dirty flag survived a successful save")
	}
}

func TestAutosaveTickSkipsCleanSession(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	primeDraft(t, sess)

	sess.autosaveTick(context.Background())
	sess.autosaveTick(context.Background()) // nothing changed since the save

	if fake.CreateCalls+fake.UpdateCalls != 1 {
		t.Errorf("calls = %d, want exactly 1", fake.CreateCalls+fake.UpdateCalls)
	}
}

func TestAutosaveTickSkipsUnnamedDraft(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})
	mustSetQuantity(t, sess, codeMCCB, 1)

	sess.autosaveTick(context.Background())

	if fake.CreateCalls != 0 {
		t.Errorf("create calls = %d, want 0 without a name", fake.CreateCalls)
	}
}

func TestAutosaveSingleFlight(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	primeDraft(t, sess)

	// a submit in flight holds the gate; the tick must skip, not queue
	sess.saveMu.Lock()
	sess.autosaveTick(context.Background())
	if fake.CreateCalls != 0 {
		t.Fatalf("tick wrote behind the save gate: %d calls", fake.CreateCalls)
	}
	sess.saveMu.Unlock()

	sess.autosaveTick(context.Background())
	if fake.CreateCalls != 1 {
		t.Errorf("create calls = %d, want 1 after gate released", fake.CreateCalls)
	}
}

func TestAutosavePromotesDraftToEdit(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	primeDraft(t, sess)

	sess.autosaveTick(context.Background())

	if sess.Mode() != ModeEdit {
		t.Errorf("mode = %s, want edit after promotion", sess.Mode())
	}
	st := sess.Status()
	if !strings.Contains(st.Location, "mode=edit") || !strings.Contains(st.Location, "id=") {
		t.Errorf("location = %q, want edit URL hint", st.Location)
	}

	// the next dirty tick updates instead of creating again
	mustSetQuantity(t, sess, codeRelay, 1)
	sess.autosaveTick(context.Background())
	if fake.CreateCalls != 1 || fake.UpdateCalls != 1 {
		t.Errorf("calls = create %d update %d, want 1/1", fake.CreateCalls, fake.UpdateCalls)
	}
}

func TestAutosaveStopsAfterSubmit(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	primeDraft(t, sess)

	if _, err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	mustSetQuantity(t, sess, codeRelay, 2)
	sess.autosaveTick(context.Background())

	if fake.UpdateCalls != 0 {
		t.Errorf("autosave wrote after submit: %d update calls", fake.UpdateCalls)
	}
}

func TestAutosaveSwallowsValidationFailures(t *testing.T) {
	sess, fake := newTestSession(t, ModeCreate, fixtureItems())
	sess.Render(RenderQuery{})
	// name set but nothing selected: validation would block a submit
	if err := sess.SetMeta(DocumentMeta{Name: "Panel", Creator: "Kim"}); err != nil {
		t.Fatalf("SetMeta: %v", err)
	}

	sess.autosaveTick(context.Background())

	if fake.CreateCalls != 0 {
		t.Errorf("create calls = %d, want 0", fake.CreateCalls)
	}
	if st := sess.Status(); st.State == "failed" {
		t.Error("silent validation failure surfaced in status")
	}
}

func TestStartStopAutosave(t *testing.T) {
	sess, _ := newTestSession(t, ModeCreate, fixtureItems())

	sess.StartAutosave(context.Background(), 0)
	sess.StartAutosave(context.Background(), 0) // second start is a no-op
	sess.StopAutosave()
	sess.StopAutosave() // and stop is idempotent
}
