package editor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/entity"
)

// SaveResult reports what a save or submit did.
type SaveResult struct {
	Created    bool   `json:"created"`
	DocID      int    `json:"doc_id"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Skipped    int    `json:"skipped"`
}

// Submit validates and persists the document, then points the caller at the
// record's view page. It takes the save gate exclusively, so an autosave tick
// arriving at the same moment skips its turn instead of racing the write.
func (s *Session) Submit(ctx context.Context) (*SaveResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	result, err := s.save(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.submitted = true
	id := s.docID
	s.mu.Unlock()

	result.RedirectTo = fmt.Sprintf("/quotation/%s?mode=view&id=%d", s.kind, id)
	return result, nil
}

func (s *Session) validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeView {
		return ErrReadOnly
	}
	if strings.TrimSpace(s.meta.Name) == "" {
		return &ValidationError{Field: "name", Message: "document name is required"}
	}
	if strings.TrimSpace(s.meta.Creator) == "" {
		return &ValidationError{Field: "creator", Message: "creator is required"}
	}

	for _, entry := range s.entries {
		if entry.Quantity > 0 {
			return nil
		}
	}
	for _, l := range s.labor {
		if l.Quantity > 0 {
			return nil
		}
	}
	return &ValidationError{Field: "resources", Message: "select at least one item"}
}

// save serializes and writes the document, creating on the first save and
// updating after. Callers must hold saveMu.
func (s *Session) save(ctx context.Context) (*SaveResult, error) {
	s.mu.Lock()
	doc, skipped := s.buildDocument()
	id := s.docID
	s.saving = true
	s.status.State = "saving"
	s.mu.Unlock()

	var (
		saved *entity.MachineDocument
		err   error
	)
	if id == 0 {
		saved, err = s.be.CreateDocument(ctx, s.kind, doc)
	} else {
		saved, err = s.be.UpdateDocument(ctx, s.kind, id, doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.status.State = "failed"
		s.status.Message = err.Error()
		s.logger.Warn("document save failed", zap.Int("doc_id", id), zap.Error(err))
		return nil, err
	}

	result := &SaveResult{DocID: saved.ID, Skipped: skipped}
	if id == 0 {
		// draft promotion: the session flips to edit mode in place and hands
		// the shell a URL to swap in without navigation
		result.Created = true
		s.docID = saved.ID
		s.mode = ModeEdit
		s.status.Location = fmt.Sprintf("/quotation/%s?mode=edit&id=%d", s.kind, saved.ID)
	}
	s.dirty = false
	s.status.State = "saved"
	s.status.SavedAt = time.Now()
	s.status.Message = ""
	s.status.DocID = s.docID
	s.status.Mode = s.mode
	return result, nil
}

// buildDocument flattens the selection, the manual lines and the labor lines
// into the wire resource list. Entries missing an identity are skipped with a
// warning instead of sent broken. Caller must hold mu.
func (s *Session) buildDocument() (*entity.MachineDocument, int) {
	doc := &entity.MachineDocument{
		ID:          s.docID,
		Name:        s.meta.Name,
		Client:      s.meta.Client,
		Creator:     s.meta.Creator,
		Description: s.meta.Description,
	}

	skipped := 0
	for _, code := range s.order {
		entry := s.entries[code]
		if entry.Part.MakerID == "" || entry.Part.ID == 0 {
			skipped++
			s.logger.Warn("skipping resource without identity",
				zap.String("item_code", code),
				zap.String("name", entry.Part.Name),
			)
			continue
		}
		doc.Resources = append(doc.Resources, entity.ResourceRow{
			MakerID:              entry.Part.MakerID,
			ResourcesID:          entry.Part.ID,
			SoloPrice:            entry.SoloPrice,
			Quantity:             entry.Quantity,
			DisplayMajorCategory: entry.Part.MajorCategory,
			DisplayMinorCategory: entry.Part.MinorCategory,
			DisplayName:          entry.Part.Name,
			DisplayMaker:         entry.Part.MakerName,
			DisplayUnit:          entry.Part.Unit,
		})
	}

	for _, kind := range []entity.AggregateKind{
		entity.AggregateLocalMaterials,
		entity.AggregateOperatingPC,
		entity.AggregateCableMisc,
	} {
		item := s.manual[kind]
		if item.Quantity <= 0 {
			continue
		}
		doc.Resources = append(doc.Resources, entity.ResourceRow{
			MakerID:              entity.SentinelMaker,
			ResourcesID:          s.manualIDs.IDOrFallback(kind),
			SoloPrice:            item.Price,
			Quantity:             item.Quantity,
			DisplayMajorCategory: entity.MajorAggregate,
			DisplayMinorCategory: kind.MinorLabel(),
			DisplayName:          kind.MinorLabel(),
			DisplayUnit:          "set",
		})
	}

	for _, l := range s.labor {
		if l.Quantity <= 0 {
			continue
		}
		doc.Resources = append(doc.Resources, entity.ResourceRow{
			MakerID:              entity.SentinelMaker,
			ResourcesID:          l.ID,
			SoloPrice:            l.SoloPrice,
			Quantity:             l.Quantity,
			DisplayMajorCategory: l.MajorCategory,
			DisplayMinorCategory: l.MinorCategory,
			DisplayName:          l.Name,
			DisplayUnit:          l.Unit,
		})
	}
	return doc, skipped
}
