package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/pricecompare"
)

// DocumentHandler serves the list/detail pages: paginated document search,
// folder listings, catalog and maker lookups, and the price-compare sheets
// with their computed totals.
type DocumentHandler struct {
	be *backend.Client
}

func NewDocumentHandler(be *backend.Client) *DocumentHandler {
	return &DocumentHandler{be: be}
}

func (h *DocumentHandler) client(c *gin.Context) *backend.Client {
	return h.be.WithToken(GetToken(c))
}

var docKinds = map[string]backend.DocKind{
	"machine":       backend.DocMachine,
	"general":       backend.DocGeneral,
	"detailed":      backend.DocDetailed,
	"header":        backend.DocHeader,
	"price_compare": backend.DocPriceCompare,
}

func docKind(c *gin.Context) (backend.DocKind, bool) {
	kind, ok := docKinds[c.Param("kind")]
	if !ok {
		BadRequest(c, "unknown document kind")
		return "", false
	}
	return kind, true
}

func docID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		BadRequest(c, "invalid document id")
		return 0, false
	}
	return id, true
}

// Search runs a paginated search over one document kind.
func (h *DocumentHandler) Search(c *gin.Context) {
	kind, ok := docKind(c)
	if !ok {
		return
	}
	skip, limit := GetPagination(c)
	page, err := h.client(c).SearchDocuments(c.Request.Context(), kind, c.Query("search"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, page)
}

// Get fetches one document with its resource rows.
func (h *DocumentHandler) Get(c *gin.Context) {
	kind, ok := docKind(c)
	if !ok {
		return
	}
	id, ok := docID(c)
	if !ok {
		return
	}
	doc, err := h.client(c).GetDocument(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, doc)
}

// Folder lists the documents under a general-document folder.
func (h *DocumentHandler) Folder(c *gin.Context) {
	id, ok := docID(c)
	if !ok {
		return
	}
	page, err := h.client(c).GetFolder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, page)
}

// GetPriceCompare fetches a price-compare sheet and returns it with its
// computed totals.
func (h *DocumentHandler) GetPriceCompare(c *gin.Context) {
	id, ok := docID(c)
	if !ok {
		return
	}
	doc, err := h.client(c).GetPriceCompare(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{
		"document": doc,
		"totals":   pricecompare.Compute(doc),
	})
}

// CreatePriceCompare persists a new price-compare sheet.
func (h *DocumentHandler) CreatePriceCompare(c *gin.Context) {
	var doc entity.PriceCompareDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	created, err := h.client(c).CreatePriceCompare(c.Request.Context(), &doc)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, gin.H{
		"document": created,
		"totals":   pricecompare.Compute(created),
	})
}

// UpdatePriceCompare overwrites an existing price-compare sheet.
func (h *DocumentHandler) UpdatePriceCompare(c *gin.Context) {
	id, ok := docID(c)
	if !ok {
		return
	}
	var doc entity.PriceCompareDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	updated, err := h.client(c).UpdatePriceCompare(c.Request.Context(), id, &doc)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{
		"document": updated,
		"totals":   pricecompare.Compute(updated),
	})
}

// SeedPriceCompare builds an unsaved price-compare sheet from a machine
// document, both columns starting at the machine's prices.
func (h *DocumentHandler) SeedPriceCompare(c *gin.Context) {
	id, ok := docID(c)
	if !ok {
		return
	}
	doc, err := h.client(c).GetDocument(c.Request.Context(), backend.DocMachine, id)
	if err != nil {
		respondError(c, err)
		return
	}
	sheet := pricecompare.FromMachine(doc)
	Success(c, gin.H{
		"document": sheet,
		"totals":   pricecompare.Compute(sheet),
	})
}

// ListMakers lists the maker catalog.
func (h *DocumentHandler) ListMakers(c *gin.Context) {
	_, limit := GetPagination(c)
	makers, err := h.client(c).ListMakers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"items": makers})
}

// SearchMakers searches the maker catalog by name.
func (h *DocumentHandler) SearchMakers(c *gin.Context) {
	makers, err := h.client(c).SearchMakers(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, gin.H{"items": makers})
}

// CreatePart registers a new catalog part.
func (h *DocumentHandler) CreatePart(c *gin.Context) {
	var item entity.CatalogItem
	if err := c.ShouldBindJSON(&item); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	created, err := h.client(c).CreatePart(c.Request.Context(), &item)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, created)
}
