package entity

import "fmt"

// Reserved identifiers in the parts catalog. Rows under the aggregate and
// labor major categories are not orderable parts: aggregates carry the ids
// of the three manual summary lines, labor rows carry the labor rates.
const (
	SentinelMaker  = "T000"
	MajorLabor     = "labor"
	MajorAggregate = "aggregate"

	MinorLocalMaterials = "local materials"
	MinorOperatingPC    = "operating pc"
	MinorCableMisc      = "cable and misc materials"
)

// Fallback resource ids for the manual summary lines, used at submit time
// when the catalog lookup did not resolve an id.
const (
	FallbackLocalMaterialsID = 9001
	FallbackOperatingPCID    = 9002
	FallbackCableMiscID      = 9003
)

// RowKind discriminates catalog rows once, at load time, instead of
// re-deriving identity from maker prefixes at every use site.
type RowKind int

const (
	KindPart RowKind = iota
	KindAggregate
	KindLabor
)

// AggregateKind identifies one of the three manual summary lines.
type AggregateKind int

const (
	AggregateLocalMaterials AggregateKind = iota
	AggregateOperatingPC
	AggregateCableMisc
)

func (k AggregateKind) String() string {
	switch k {
	case AggregateLocalMaterials:
		return "local_materials"
	case AggregateOperatingPC:
		return "operating_pc"
	case AggregateCableMisc:
		return "cable_misc"
	}
	return "unknown"
}

// FallbackID returns the hardcoded resource id for this aggregate line.
func (k AggregateKind) FallbackID() int {
	switch k {
	case AggregateLocalMaterials:
		return FallbackLocalMaterialsID
	case AggregateOperatingPC:
		return FallbackOperatingPCID
	}
	return FallbackCableMiscID
}

// MinorLabel returns the catalog minor-category label this aggregate line is
// resolved from.
func (k AggregateKind) MinorLabel() string {
	switch k {
	case AggregateLocalMaterials:
		return MinorLocalMaterials
	case AggregateOperatingPC:
		return MinorOperatingPC
	}
	return MinorCableMisc
}

// CatalogItem is one row of the backend parts catalog.
type CatalogItem struct {
	ID            int    `json:"id"`
	MakerID       string `json:"maker_id"`
	MakerName     string `json:"maker_name"`
	MajorCategory string `json:"major_category"`
	MinorCategory string `json:"minor_category"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	SoloPrice     int64  `json:"solo_price"`
	UL            bool   `json:"ul"`
	CE            bool   `json:"ce"`
	KC            bool   `json:"kc"`
	Etc           string `json:"etc,omitempty"`
}

// ItemCode is the stable client-side identifier of a catalog row.
func (c CatalogItem) ItemCode() string {
	return fmt.Sprintf("%s-%d", c.MakerID, c.ID)
}

// Kind classifies the row by its major category.
func (c CatalogItem) Kind() RowKind {
	switch c.MajorCategory {
	case MajorLabor:
		return KindLabor
	case MajorAggregate:
		return KindAggregate
	}
	return KindPart
}

// Maker is one entry of the maker catalog.
type Maker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
