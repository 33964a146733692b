// Package catalog loads the backend parts catalog and partitions it into the
// three row populations the editor works with: orderable parts, the
// identities of the manual summary lines, and labor rates.
package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// ManualIDs holds the catalog-resolved resource ids of the three manual
// summary lines. An unresolved id stays absent; submit falls back to the
// hardcoded ids in that case.
type ManualIDs struct {
	ids map[entity.AggregateKind]int
}

// ID returns the resolved id for the aggregate line, if any.
func (m ManualIDs) ID(kind entity.AggregateKind) (int, bool) {
	id, ok := m.ids[kind]
	return id, ok
}

// IDOrFallback returns the resolved id, or the hardcoded fallback when the
// catalog never resolved one.
func (m ManualIDs) IDOrFallback(kind entity.AggregateKind) int {
	if id, ok := m.ids[kind]; ok {
		return id
	}
	return kind.FallbackID()
}

// Matches reports whether a sentinel resource id identifies the aggregate.
func (m ManualIDs) Matches(kind entity.AggregateKind, resourcesID int) bool {
	id, ok := m.ids[kind]
	if !ok {
		id = kind.FallbackID()
	}
	return resourcesID == id
}

// Catalog is one classified catalog load.
type Catalog struct {
	Parts     []entity.CatalogItem
	Labor     []entity.CatalogItem
	ManualIDs ManualIDs
	Total     int
}

// Service fetches and classifies catalog pages, caching raw pages by query.
type Service struct {
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Service{cache: cache, ttl: ttl, logger: logger}
}

// Load fetches one catalog page through the given token-bound client and
// partitions it. Cache errors are invisible; only backend failures surface.
func (s *Service) Load(ctx context.Context, cli *backend.Client, q backend.PartsQuery) (*Catalog, error) {
	key := q.CacheKey()
	if raw, ok := s.cache.Get(ctx, key); ok {
		var page backend.PartsPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return Partition(&page), nil
		}
		s.logger.Warn("discarding undecodable catalog cache entry", zap.String("key", key))
	}

	page, err := cli.ListParts(ctx, q)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(page); err == nil {
		s.cache.Set(ctx, key, raw, s.ttl)
	}
	return Partition(page), nil
}

// Partition classifies a raw catalog page. Aggregate rows resolve the manual
// summary ids by minor-category label; labor rows keep catalog order.
func Partition(page *backend.PartsPage) *Catalog {
	cat := &Catalog{
		Total:     page.Total,
		ManualIDs: ManualIDs{ids: make(map[entity.AggregateKind]int)},
	}
	for _, item := range page.Items {
		switch item.Kind() {
		case entity.KindLabor:
			cat.Labor = append(cat.Labor, item)
		case entity.KindAggregate:
			for _, kind := range []entity.AggregateKind{
				entity.AggregateLocalMaterials,
				entity.AggregateOperatingPC,
				entity.AggregateCableMisc,
			} {
				if item.MinorCategory == kind.MinorLabel() {
					if _, dup := cat.ManualIDs.ids[kind]; !dup {
						cat.ManualIDs.ids[kind] = item.ID
					}
					break
				}
			}
		default:
			cat.Parts = append(cat.Parts, item)
		}
	}
	return cat
}

// CategoryOptions returns the distinct major categories of the given parts,
// sorted, excluding the labor and aggregate categories which are handled as
// fixed rows.
func CategoryOptions(items []entity.CatalogItem) []string {
	seen := make(map[string]bool)
	var options []string
	for _, item := range items {
		major := item.MajorCategory
		if major == "" || major == entity.MajorLabor || major == entity.MajorAggregate {
			continue
		}
		if !seen[major] {
			seen[major] = true
			options = append(options, major)
		}
	}
	sort.Strings(options)
	return options
}
