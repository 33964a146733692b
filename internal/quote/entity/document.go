package entity

import "time"

// ResourceRow is the flattened wire representation of one line of a saved
// document: selected parts, manual summary lines and labor lines all travel
// in this shape. The display_* fields are denormalized for backend list
// rendering and are not authoritative.
type ResourceRow struct {
	MakerID     string `json:"maker_id"`
	ResourcesID int    `json:"resources_id"`
	SoloPrice   int64  `json:"solo_price"`
	Quantity    int    `json:"quantity"`

	DisplayMajorCategory string `json:"display_major_category,omitempty"`
	DisplayMinorCategory string `json:"display_minor_category,omitempty"`
	DisplayName          string `json:"display_name,omitempty"`
	DisplayMaker         string `json:"display_maker,omitempty"`
	DisplayUnit          string `json:"display_unit,omitempty"`
}

// ItemCode mirrors CatalogItem.ItemCode for rows that represent plain parts.
func (r ResourceRow) ItemCode() string {
	return CatalogItem{MakerID: r.MakerID, ID: r.ResourcesID}.ItemCode()
}

// MachineDocument is a persisted machine bill of materials. General and
// detailed documents share the shape; price-compare documents use
// PriceCompareDocument because of their dual pricing.
type MachineDocument struct {
	ID          int           `json:"id,omitempty"`
	Name        string        `json:"name"`
	Client      string        `json:"client,omitempty"`
	Creator     string        `json:"creator"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
	Resources   []ResourceRow `json:"resources"`
}

// PriceCompareRow carries the internal cost price and the quoted price for
// one line of a price-compare sheet.
type PriceCompareRow struct {
	MakerID     string `json:"maker_id"`
	ResourcesID int    `json:"resources_id"`
	Name        string `json:"name,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Quantity    int    `json:"quantity"`
	CostPrice   int64  `json:"cost_price"`
	QuotePrice  int64  `json:"quote_price"`
}

// PriceCompareDocument is a persisted internal-vs-quotation cost sheet.
type PriceCompareDocument struct {
	ID          int               `json:"id,omitempty"`
	Name        string            `json:"name"`
	Client      string            `json:"client,omitempty"`
	Creator     string            `json:"creator"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at,omitempty"`
	Resources   []PriceCompareRow `json:"resources"`
}

// DocumentSummary is one row of a paginated document search.
type DocumentSummary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Client    string    `json:"client,omitempty"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
