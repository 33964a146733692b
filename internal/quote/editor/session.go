// Package editor holds the edit-session engine of the quotation pages: the
// selection model with its explicit ordering, template merge, table
// view-models, summary totals, draft autosave and the submit pipeline.
// A Session replaces the global page state of the original machine-create
// page script; all handler work goes through it.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// Mode is the page mode selected by the URL query.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

var (
	// ErrReadOnly rejects mutations on a view-mode session.
	ErrReadOnly = errors.New("editor: session is read-only")
	// ErrUnknownItem rejects operations on item codes the session has never
	// seen in its catalog or selection.
	ErrUnknownItem = errors.New("editor: unknown item code")
)

// ValidationError is a user-facing precondition failure; handlers surface it
// as a blocking message without contacting the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DocumentMeta is the document header form.
type DocumentMeta struct {
	Name        string `json:"name"`
	Client      string `json:"client"`
	Creator     string `json:"creator"`
	Description string `json:"description"`
}

// SaveStatus mirrors the page's autosave status line.
type SaveStatus struct {
	State    string    `json:"state"` // idle / saving / saved / failed
	SavedAt  time.Time `json:"saved_at,omitempty"`
	Message  string    `json:"message,omitempty"`
	DocID    int       `json:"doc_id,omitempty"`
	Mode     Mode      `json:"mode"`
	Location string    `json:"location,omitempty"` // replace-URL hint after draft promotion
}

// Options configures a new session.
type Options struct {
	Backend  *backend.Client // token-bound client, reused by autosave
	Catalog  *catalog.Service
	Logger   *zap.Logger
	Mode     Mode
	Kind     backend.DocKind // defaults to machine
	PageSize int             // catalog page size, defaults to 1000
}

// Session is the in-memory state of one open editor page.
type Session struct {
	ID string

	mu     sync.Mutex
	saveMu sync.Mutex // single-flight gate shared by autosave and submit

	mode      Mode
	kind      backend.DocKind
	docID     int
	submitted bool

	be         *backend.Client
	catalogSvc *catalog.Service
	logger     *zap.Logger
	printer    *message.Printer
	pageSize   int

	// reference data from the catalog load
	parts       []entity.CatalogItem
	partsByCode map[string]*entity.CatalogItem
	manualIDs   catalog.ManualIDs
	labor       []*LaborItem

	// selection model
	entries       map[string]*SelectionEntry
	order         []string
	pendingInsert *int

	manual map[entity.AggregateKind]*ManualSummaryItem

	meta DocumentMeta

	// view state
	viewMode       ViewMode
	sortKey        string
	sortAsc        bool
	displayOrder   []string
	templateLoaded bool

	// save state
	dirty  bool
	saving bool
	status SaveStatus

	autosaveCancel context.CancelFunc
	autosaveDone   chan struct{}

	lastAccess time.Time
}

// New creates an empty session; call LoadCatalog before use.
func New(id string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	kind := opts.Kind
	if kind == "" {
		kind = backend.DocMachine
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	s := &Session{
		ID:          id,
		mode:        opts.Mode,
		kind:        kind,
		be:          opts.Backend,
		catalogSvc:  opts.Catalog,
		logger:      logger.With(zap.String("session_id", id)),
		printer:     message.NewPrinter(language.English),
		pageSize:    pageSize,
		partsByCode: make(map[string]*entity.CatalogItem),
		entries:     make(map[string]*SelectionEntry),
		manual:      newManualSet(),
		viewMode:    ViewAll,
		status:      SaveStatus{State: "idle", Mode: opts.Mode},
		lastAccess:  time.Now(),
	}
	return s
}

func newManualSet() map[entity.AggregateKind]*ManualSummaryItem {
	m := make(map[entity.AggregateKind]*ManualSummaryItem, 3)
	for _, kind := range []entity.AggregateKind{
		entity.AggregateLocalMaterials,
		entity.AggregateOperatingPC,
		entity.AggregateCableMisc,
	} {
		m[kind] = &ManualSummaryItem{Kind: kind}
	}
	return m
}

// LoadCatalog fetches the catalog page selected by name/major and installs
// it as the session's reference data. Selection entries survive a reload:
// price overrides of selected items are re-applied to the fresh catalog
// copies, and the labor list is only populated on the first load so repeated
// fetches cannot clobber labor quantities.
func (s *Session) LoadCatalog(ctx context.Context, name, major string) error {
	cat, err := s.catalogSvc.Load(ctx, s.be, backend.PartsQuery{
		Name:  name,
		Major: major,
		Limit: s.pageSize,
	})
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.parts = make([]entity.CatalogItem, len(cat.Parts))
	copy(s.parts, cat.Parts)
	s.partsByCode = make(map[string]*entity.CatalogItem, len(s.parts))
	for i := range s.parts {
		s.partsByCode[s.parts[i].ItemCode()] = &s.parts[i]
	}
	// keep the displayed catalog price in sync with selection overrides
	for code, entry := range s.entries {
		if part, ok := s.partsByCode[code]; ok {
			part.SoloPrice = entry.SoloPrice
		}
	}

	s.manualIDs = cat.ManualIDs
	for kind, item := range s.manual {
		if id, ok := cat.ManualIDs.ID(kind); ok {
			idCopy := id
			item.ID = &idCopy
		}
	}

	if len(s.labor) == 0 {
		for _, row := range cat.Labor {
			rowCopy := row
			s.labor = append(s.labor, &LaborItem{CatalogItem: rowCopy})
		}
	}
	return nil
}

// LoadDocument fetches a saved document and merges it into the session.
// On failure the session keeps its empty initial state.
func (s *Session) LoadDocument(ctx context.Context, id int) (*MergeResult, error) {
	doc, err := s.be.GetDocument(ctx, s.kind, id)
	if err != nil {
		return nil, fmt.Errorf("load document %d: %w", id, err)
	}

	s.mu.Lock()
	s.docID = doc.ID
	s.meta = DocumentMeta{
		Name:        doc.Name,
		Client:      doc.Client,
		Creator:     doc.Creator,
		Description: doc.Description,
	}
	s.status.DocID = doc.ID
	s.mu.Unlock()

	result := s.ApplyTemplate(doc)
	s.markClean()
	return result, nil
}

func (s *Session) markClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Mode returns the current page mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// DocID returns the persisted document id, zero for an unsaved draft.
func (s *Session) DocID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docID
}

// Meta returns the current document header form.
func (s *Session) Meta() DocumentMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// SetMeta updates the document header form and marks the session dirty.
func (s *Session) SetMeta(meta DocumentMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeView {
		return ErrReadOnly
	}
	s.meta = meta
	s.dirty = true
	return nil
}

// Status reports the autosave/save state.
func (s *Session) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.DocID = s.docID
	st.Mode = s.mode
	return st
}

// Dirty reports whether unsaved changes exist.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Touch refreshes the idle clock; the registry janitor closes sessions that
// have not been touched for the configured idle window.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastAccess = time.Now()
	s.mu.Unlock()
}

// LastAccess returns the last Touch time.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Close stops the autosave runner. In-flight saves are not aborted.
func (s *Session) Close() {
	s.StopAutosave()
}
