package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// PartsQuery selects a page of the parts catalog. Name and Major filter
// server-side; Skip/Limit paginate.
type PartsQuery struct {
	Name  string
	Major string
	Skip  int
	Limit int
}

// CacheKey is stable across equivalent queries and safe as a redis key.
func (q PartsQuery) CacheKey() string {
	return "catalog:" + url.QueryEscape(q.Name) + ":" + url.QueryEscape(q.Major) +
		":" + strconv.Itoa(q.Skip) + ":" + strconv.Itoa(q.Limit)
}

// PartsPage is the catalog response. Schema is backend metadata the editor
// ignores but keeps for page-shell consumers.
type PartsPage struct {
	Schema map[string]interface{} `json:"schema,omitempty"`
	Items  []entity.CatalogItem   `json:"items"`
	Total  int                    `json:"total"`
}

// ListParts fetches one catalog page. GET /api/v1/parts
func (c *Client) ListParts(ctx context.Context, q PartsQuery) (*PartsPage, error) {
	values := url.Values{}
	values.Set("include_schema", "true")
	values.Set("limit", strconv.Itoa(q.Limit))
	values.Set("name", q.Name)
	values.Set("major", q.Major)
	values.Set("skip", strconv.Itoa(q.Skip))

	var page PartsPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/parts", values, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePart registers a new catalog item. POST /api/v1/parts
func (c *Client) CreatePart(ctx context.Context, item *entity.CatalogItem) (*entity.CatalogItem, error) {
	var created entity.CatalogItem
	if err := c.do(ctx, http.MethodPost, "/api/v1/parts", nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

type makerList struct {
	Items []entity.Maker `json:"items"`
}

// ListMakers fetches up to limit makers. GET /api/v1/maker
func (c *Client) ListMakers(ctx context.Context, limit int) ([]entity.Maker, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))

	var list makerList
	if err := c.do(ctx, http.MethodGet, "/api/v1/maker", values, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// SearchMakers searches makers by name. GET /api/v1/maker/search
func (c *Client) SearchMakers(ctx context.Context, query string) ([]entity.Maker, error) {
	values := url.Values{}
	values.Set("query", query)

	var list makerList
	if err := c.do(ctx, http.MethodGet, "/api/v1/maker/search", values, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}
