package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// FakeBackend is an httptest stand-in for the quotation backend: a parts
// catalog page, an in-memory document store and the account endpoints.
type FakeBackend struct {
	mu sync.Mutex

	Items []entity.CatalogItem
	Docs  map[int]*entity.MachineDocument

	// TakenIDs makes account/check report these login ids as unavailable.
	TakenIDs map[string]bool

	// FailSaves makes document create/update return 500.
	FailSaves bool

	CreateCalls int
	UpdateCalls int
	ListCalls   int

	nextID int
	server *httptest.Server
}

// NewFakeBackend starts the fake with the given catalog items.
func NewFakeBackend(items []entity.CatalogItem) *FakeBackend {
	f := &FakeBackend{
		Items:    items,
		Docs:     make(map[int]*entity.MachineDocument),
		TakenIDs: make(map[string]bool),
		nextID:   100,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

// URL returns the fake's base URL.
func (f *FakeBackend) URL() string { return f.server.URL }

// Close shuts the fake down.
func (f *FakeBackend) Close() { f.server.Close() }

// Seed stores a document under a fixed id.
func (f *FakeBackend) Seed(doc *entity.MachineDocument) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Docs[doc.ID] = doc
}

func (f *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/api/v1/parts" && r.Method == http.MethodGet:
		f.ListCalls++
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": f.filteredItems(r),
			"total": len(f.Items),
		})
	case path == "/api/v1/parts" && r.Method == http.MethodPost:
		var item entity.CatalogItem
		json.NewDecoder(r.Body).Decode(&item)
		f.nextID++
		item.ID = f.nextID
		f.writeJSON(w, http.StatusCreated, item)
	case path == "/api/v1/maker" && r.Method == http.MethodGet:
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": f.makers(),
		})
	case path == "/api/v1/maker/search":
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": f.makers(),
		})
	case path == "/api/v1/account/check":
		var req struct {
			ID string `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.writeJSON(w, http.StatusOK, map[string]bool{"available": !f.TakenIDs[req.ID]})
	case path == "/api/v1/account/register":
		f.writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	case strings.HasPrefix(path, "/api/v1/quotation/"):
		f.handleQuotation(w, r, strings.TrimPrefix(path, "/api/v1/quotation/"))
	default:
		f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (f *FakeBackend) filteredItems(r *http.Request) []entity.CatalogItem {
	name := strings.ToLower(r.URL.Query().Get("name"))
	major := r.URL.Query().Get("major")

	out := make([]entity.CatalogItem, 0, len(f.Items))
	for _, item := range f.Items {
		// labor and aggregate rows always ship with the page
		if item.Kind() == entity.KindPart {
			if major != "" && item.MajorCategory != major {
				continue
			}
			if name != "" && !strings.Contains(strings.ToLower(item.Name), name) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (f *FakeBackend) makers() []entity.Maker {
	seen := make(map[string]bool)
	var makers []entity.Maker
	for _, item := range f.Items {
		if item.MakerID == "" || seen[item.MakerID] {
			continue
		}
		seen[item.MakerID] = true
		makers = append(makers, entity.Maker{ID: item.MakerID, Name: item.MakerName})
	}
	return makers
}

func (f *FakeBackend) handleQuotation(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")

	if len(parts) == 2 && parts[1] == "search" {
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": f.summaries(),
			"total": len(f.Docs),
		})
		return
	}

	if len(parts) == 1 && r.Method == http.MethodPost {
		if f.FailSaves {
			f.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "save rejected"})
			return
		}
		f.CreateCalls++
		var doc entity.MachineDocument
		json.NewDecoder(r.Body).Decode(&doc)
		f.nextID++
		doc.ID = f.nextID
		f.Docs[doc.ID] = &doc
		f.writeJSON(w, http.StatusCreated, doc)
		return
	}

	if len(parts) == 2 {
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			f.writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad id"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			doc, ok := f.Docs[id]
			if !ok {
				f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "document not found"})
				return
			}
			f.writeJSON(w, http.StatusOK, doc)
		case http.MethodPut:
			if f.FailSaves {
				f.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "save rejected"})
				return
			}
			f.UpdateCalls++
			var doc entity.MachineDocument
			json.NewDecoder(r.Body).Decode(&doc)
			doc.ID = id
			f.Docs[id] = &doc
			f.writeJSON(w, http.StatusOK, doc)
		default:
			f.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
		}
		return
	}

	f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

func (f *FakeBackend) summaries() []entity.DocumentSummary {
	var out []entity.DocumentSummary
	for _, doc := range f.Docs {
		out = append(out, entity.DocumentSummary{
			ID:      doc.ID,
			Name:    doc.Name,
			Client:  doc.Client,
			Creator: doc.Creator,
		})
	}
	return out
}

func (f *FakeBackend) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
