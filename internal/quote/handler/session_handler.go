package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/config"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/editor"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// SessionHandler drives the editor sessions: one session per open editor
// page, created with the page's mode/id query and mutated by the page's
// input events.
type SessionHandler struct {
	be         *backend.Client
	registry   *editor.Registry
	catalogSvc *catalog.Service
	cfg        *config.Config
	logger     *zap.Logger
}

func NewSessionHandler(be *backend.Client, registry *editor.Registry, catalogSvc *catalog.Service, cfg *config.Config, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		be:         be,
		registry:   registry,
		catalogSvc: catalogSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// OpenRequest mirrors the page URL query: mode, optional document id, and
// the initial catalog filter.
type OpenRequest struct {
	Mode  string `json:"mode" binding:"required"`
	Kind  string `json:"kind"`
	DocID int    `json:"doc_id"`
	Name  string `json:"name"`
	Major string `json:"major"`
}

// Open creates a session, loads the catalog, merges the saved document when
// an id is given, and starts the autosave runner for editable sessions.
func (h *SessionHandler) Open(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	mode := editor.Mode(req.Mode)
	switch mode {
	case editor.ModeCreate, editor.ModeEdit, editor.ModeView:
	default:
		BadRequest(c, "mode must be create, edit or view")
		return
	}
	if mode != editor.ModeCreate && req.DocID <= 0 {
		BadRequest(c, "doc_id is required for edit and view")
		return
	}

	kind := backend.DocKind(req.Kind)
	if kind == "" {
		kind = backend.DocMachine
	}

	sess := h.registry.Open(editor.Options{
		Backend:  h.be.WithToken(GetToken(c)),
		Catalog:  h.catalogSvc,
		Logger:   h.logger,
		Mode:     mode,
		Kind:     kind,
		PageSize: h.cfg.Catalog.PageSize,
	})

	if err := sess.LoadCatalog(c.Request.Context(), req.Name, req.Major); err != nil {
		h.registry.Close(sess.ID)
		respondError(c, err)
		return
	}

	var merge *editor.MergeResult
	if req.DocID > 0 {
		var err error
		merge, err = sess.LoadDocument(c.Request.Context(), req.DocID)
		if err != nil {
			h.registry.Close(sess.ID)
			respondError(c, err)
			return
		}
	}

	if mode != editor.ModeView {
		sess.StartAutosave(context.Background(), h.cfg.Autosave.Interval)
	}

	Created(c, gin.H{
		"session_id": sess.ID,
		"mode":       sess.Mode(),
		"doc_id":     sess.DocID(),
		"meta":       sess.Meta(),
		"merge":      merge,
	})
}

func (h *SessionHandler) session(c *gin.Context) (*editor.Session, bool) {
	sess, ok := h.registry.Get(c.Param("id"))
	if !ok {
		NotFound(c, "session not found")
		return nil, false
	}
	return sess, true
}

// View renders the active table view plus the recomputed summary.
func (h *SessionHandler) View(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	view := sess.Render(editor.RenderQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	Success(c, gin.H{
		"view":    view,
		"summary": sess.Recompute(),
		"status":  sess.Status(),
	})
}

// ReloadCatalog re-fetches the catalog with a new search/category filter.
func (h *SessionHandler) ReloadCatalog(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Major string `json:"major"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.LoadCatalog(c.Request.Context(), req.Name, req.Major); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// SetQuantity applies a quantity input event. The raw value passes through
// the same coercion as the original form inputs.
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemCode string      `json:"item_code" binding:"required"`
		Quantity interface{} `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.SetQuantity(req.ItemCode, editor.Coerce(req.Quantity)); err != nil {
		respondError(c, err)
		return
	}
	h.respondEntry(c, sess, req.ItemCode)
}

// SetPrice applies a unit-price override.
func (h *SessionHandler) SetPrice(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemCode string      `json:"item_code" binding:"required"`
		Price    interface{} `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.SetPrice(req.ItemCode, editor.Coerce(req.Price)); err != nil {
		respondError(c, err)
		return
	}
	h.respondEntry(c, sess, req.ItemCode)
}

func (h *SessionHandler) respondEntry(c *gin.Context, sess *editor.Session, itemCode string) {
	resp := gin.H{
		"order":   sess.SelectedOrder(),
		"summary": sess.Recompute(),
	}
	if entry, ok := sess.Entry(itemCode); ok {
		resp["entry"] = entry
	}
	Success(c, resp)
}

// Move swaps a selected row with its neighbor.
func (h *SessionHandler) Move(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemCode  string `json:"item_code" binding:"required"`
		Direction int    `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Direction != 1 && req.Direction != -1 {
		BadRequest(c, "direction must be 1 or -1")
		return
	}
	if err := sess.MoveSelected(req.ItemCode, req.Direction); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"order": sess.SelectedOrder()})
}

// InsertAfter arms the insert-after cursor for the next selection.
func (h *SessionHandler) InsertAfter(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemCode string `json:"item_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.SetInsertAfter(req.ItemCode); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// Remove deletes a selected row.
func (h *SessionHandler) Remove(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		ItemCode string `json:"item_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.RemoveSelected(req.ItemCode); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{
		"order":   sess.SelectedOrder(),
		"summary": sess.Recompute(),
	})
}

// SetManual updates one of the three fixed aggregate lines.
func (h *SessionHandler) SetManual(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Kind     string      `json:"kind" binding:"required"`
		Price    interface{} `json:"price"`
		Quantity interface{} `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	kind, ok2 := parseAggregateKind(req.Kind)
	if !ok2 {
		BadRequest(c, "unknown aggregate kind")
		return
	}
	if err := sess.SetManual(kind, editor.Coerce(req.Price), editor.Coerce(req.Quantity)); err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{
		"item":    sess.ManualItem(kind),
		"summary": sess.Recompute(),
	})
}

func parseAggregateKind(s string) (entity.AggregateKind, bool) {
	switch s {
	case entity.AggregateLocalMaterials.String():
		return entity.AggregateLocalMaterials, true
	case entity.AggregateOperatingPC.String():
		return entity.AggregateOperatingPC, true
	case entity.AggregateCableMisc.String():
		return entity.AggregateCableMisc, true
	}
	return 0, false
}

// SetLabor updates a labor line's quantity and, when given, its rate.
func (h *SessionHandler) SetLabor(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		LaborID  int         `json:"labor_id" binding:"required"`
		Price    interface{} `json:"price"`
		Quantity interface{} `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Price != nil {
		if err := sess.SetLaborPrice(req.LaborID, editor.Coerce(req.Price)); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Quantity != nil {
		if err := sess.SetLaborQuantity(req.LaborID, editor.Coerce(req.Quantity)); err != nil {
			respondError(c, err)
			return
		}
	}
	Success(c, gin.H{
		"labor":   sess.LaborItems(),
		"summary": sess.Recompute(),
	})
}

// SetMeta updates the document header form.
func (h *SessionHandler) SetMeta(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var meta editor.DocumentMeta
	if err := c.ShouldBindJSON(&meta); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := sess.SetMeta(meta); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// SetViewMode flips between the ALL and TEMPLATE renderings.
func (h *SessionHandler) SetViewMode(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Mode string `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	sess.SetViewMode(editor.ViewMode(req.Mode))
	Success(c, gin.H{"mode": sess.ViewModeNow()})
}

// Sort emulates a column-header click.
func (h *SessionHandler) Sort(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	sess.ClickSort(req.Key)
	Success(c, nil)
}

// LoadTemplate merges a saved document into the open session.
func (h *SessionHandler) LoadTemplate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req struct {
		DocID int `json:"doc_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	merge, err := sess.LoadDocument(c.Request.Context(), req.DocID)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"merge": merge})
}

// Submit validates and persists the document.
func (h *SessionHandler) Submit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	result, err := sess.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, result)
}

// Status reports the autosave/save state line.
func (h *SessionHandler) Status(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	Success(c, sess.Status())
}

// Close tears the session down.
func (h *SessionHandler) Close(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.registry.Get(id); !ok {
		NotFound(c, "session not found")
		return
	}
	h.registry.Close(id)
	Success(c, nil)
}
