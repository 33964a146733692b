package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// DocKind selects one of the sibling document endpoints under
// /api/v1/quotation. All share create/read/update/search semantics; only
// price_compare differs in row shape.
type DocKind string

const (
	DocMachine      DocKind = "machine"
	DocGeneral      DocKind = "general"
	DocDetailed     DocKind = "detailed"
	DocHeader       DocKind = "header"
	DocPriceCompare DocKind = "price_compare"
)

func (k DocKind) path() string {
	return "/api/v1/quotation/" + string(k)
}

// SearchPage is a paginated document search result.
type SearchPage struct {
	Items []entity.DocumentSummary `json:"items"`
	Total int                      `json:"total"`
}

func docQuery() url.Values {
	values := url.Values{}
	values.Set("include_schema", "false")
	values.Set("include_relations", "true")
	return values
}

// GetDocument fetches one machine-shaped document by id.
func (c *Client) GetDocument(ctx context.Context, kind DocKind, id int) (*entity.MachineDocument, error) {
	var doc entity.MachineDocument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", kind.path(), id), docQuery(), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocument persists a new machine-shaped document and returns it with
// its assigned id.
func (c *Client) CreateDocument(ctx context.Context, kind DocKind, doc *entity.MachineDocument) (*entity.MachineDocument, error) {
	var created entity.MachineDocument
	if err := c.do(ctx, http.MethodPost, kind.path(), docQuery(), doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDocument overwrites an existing machine-shaped document.
func (c *Client) UpdateDocument(ctx context.Context, kind DocKind, id int, doc *entity.MachineDocument) (*entity.MachineDocument, error) {
	var updated entity.MachineDocument
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", kind.path(), id), docQuery(), doc, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SearchDocuments runs a paginated search over one document kind.
func (c *Client) SearchDocuments(ctx context.Context, kind DocKind, search string, skip, limit int) (*SearchPage, error) {
	values := url.Values{}
	values.Set("search", search)
	values.Set("skip", strconv.Itoa(skip))
	values.Set("limit", strconv.Itoa(limit))

	var page SearchPage
	if err := c.do(ctx, http.MethodGet, kind.path()+"/search", values, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPriceCompare fetches one price-compare sheet.
func (c *Client) GetPriceCompare(ctx context.Context, id int) (*entity.PriceCompareDocument, error) {
	var doc entity.PriceCompareDocument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", DocPriceCompare.path(), id), docQuery(), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreatePriceCompare persists a new price-compare sheet.
func (c *Client) CreatePriceCompare(ctx context.Context, doc *entity.PriceCompareDocument) (*entity.PriceCompareDocument, error) {
	var created entity.PriceCompareDocument
	if err := c.do(ctx, http.MethodPost, DocPriceCompare.path(), docQuery(), doc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePriceCompare overwrites an existing price-compare sheet.
func (c *Client) UpdatePriceCompare(ctx context.Context, id int, doc *entity.PriceCompareDocument) (*entity.PriceCompareDocument, error) {
	var updated entity.PriceCompareDocument
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", DocPriceCompare.path(), id), docQuery(), doc, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetFolder fetches a general-document folder listing. GET /api/v1/quotation/folder/{id}
func (c *Client) GetFolder(ctx context.Context, id int) (*SearchPage, error) {
	var page SearchPage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/quotation/folder/%d", id), nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
