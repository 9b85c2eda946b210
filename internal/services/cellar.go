// Package services holds the cellar use cases: editing records together with
// their photos, filtering the inventory and calling the model-backed
// features.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/imagestore"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
	"github.com/dmitrijs2005/winecellar/internal/repositories/wines"
	"github.com/dmitrijs2005/winecellar/internal/sommelier"
	"github.com/dmitrijs2005/winecellar/internal/vision"
)

type Recommender interface {
	Recommend(ctx context.Context, req sommelier.Request, inventory []models.Wine) (*sommelier.Result, error)
}

type LabelRecognizer interface {
	RecognizeLabel(ctx context.Context, image []byte) (*vision.RecognizedAttributes, error)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Search          string
	Color           *models.Color
	Style           *models.Style
	Sweetness       models.SweetnessSet
	IncludeArchived bool
}

func (f Filter) matches(w models.Wine) bool {
	if f.Color != nil && w.Color != *f.Color {
		return false
	}
	if f.Style != nil && w.Style != *f.Style {
		return false
	}
	if f.Sweetness.Len() > 0 && !w.Sweetness.Intersects(f.Sweetness) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, field := range []string{w.Name, w.Producer, w.Region, w.Varietal} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

type CellarService interface {
	Add(ctx context.Context, draft *models.Wine, photo []byte) (*models.Wine, error)
	Update(ctx context.Context, w *models.Wine, newPhoto []byte) (*models.Wine, error)
	Delete(ctx context.Context, id string) error
	ToggleArchived(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Wine, error)
	Photo(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context, f Filter) ([]models.Wine, error)
	Pair(ctx context.Context, req sommelier.Request) (*sommelier.Result, error)
	Recognize(ctx context.Context, photo []byte) (*models.Wine, error)
}

type cellarService struct {
	repo        wines.Repository
	images      imagestore.Store
	recommender Recommender
	recognizer  LabelRecognizer
	log         logging.Logger
}

func NewCellarService(repo wines.Repository, images imagestore.Store, rec Recommender, vis LabelRecognizer, log logging.Logger) CellarService {
	if log == nil {
		log = logging.Nop()
	}
	return &cellarService{repo: repo, images: images, recommender: rec, recognizer: vis, log: log}
}

// Add stores the photo first so the record never points at a missing image.
func (s *cellarService) Add(ctx context.Context, draft *models.Wine, photo []byte) (*models.Wine, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	w := draft.Clone()
	w.MarkedForDeletion = false

	if len(photo) > 0 {
		ref, err := s.images.Save(ctx, photo, w.Name)
		if err != nil {
			return nil, fmt.Errorf("error saving photo: %w", err)
		}
		w.ImageRef = ref
	}

	if err := s.repo.Save(ctx, &w); err != nil {
		if w.ImageRef != "" {
			s.dropImage(ctx, w.ImageRef)
		}
		return nil, fmt.Errorf("error saving wine: %w", err)
	}
	s.log.Info(ctx, "wine added", "id", w.ID, "name", w.Name)
	return &w, nil
}

// Update keeps id, date added and archive state from the stored row. The old
// photo is removed only once the record points at its replacement.
func (s *cellarService) Update(ctx context.Context, edited *models.Wine, newPhoto []byte) (*models.Wine, error) {
	if edited == nil {
		return nil, fmt.Errorf("%w: nil record", models.ErrInvalidWine)
	}
	stored, err := s.repo.GetByID(ctx, edited.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading wine: %w", err)
	}

	w := edited.Clone()
	w.ID = stored.ID
	w.DateAdded = stored.DateAdded
	w.IsArchived = stored.IsArchived
	w.ImageRef = stored.ImageRef
	w.MarkedForDeletion = false
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if len(newPhoto) > 0 {
		ref, err := s.images.Save(ctx, newPhoto, w.Name)
		if err != nil {
			return nil, fmt.Errorf("error saving photo: %w", err)
		}
		w.ImageRef = ref
	}

	if err := s.repo.Save(ctx, &w); err != nil {
		if w.ImageRef != stored.ImageRef {
			s.dropImage(ctx, w.ImageRef)
		}
		return nil, fmt.Errorf("error saving wine: %w", err)
	}
	if stored.ImageRef != "" && w.ImageRef != stored.ImageRef {
		s.dropImage(ctx, stored.ImageRef)
	}
	return &w, nil
}

// Delete removes the record and then its photo. Unknown ids are fine.
func (s *cellarService) Delete(ctx context.Context, id string) error {
	stored, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		stored = nil
	case err != nil:
		return fmt.Errorf("error loading wine: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting wine: %w", err)
	}
	if stored != nil && stored.ImageRef != "" {
		s.dropImage(ctx, stored.ImageRef)
	}
	return nil
}

func (s *cellarService) ToggleArchived(ctx context.Context, id string) error {
	if err := s.repo.ToggleArchived(ctx, id); err != nil {
		return fmt.Errorf("error toggling archive flag: %w", err)
	}
	return nil
}

func (s *cellarService) Get(ctx context.Context, id string) (*models.Wine, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving wine: %w", err)
	}
	return w, nil
}

// Photo returns (nil, nil) when the wine has no photo or the file is gone.
func (s *cellarService) Photo(ctx context.Context, id string) ([]byte, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.ImageRef == "" {
		return nil, nil
	}
	data, err := s.images.Load(ctx, w.ImageRef)
	if err != nil {
		return nil, fmt.Errorf("error loading photo: %w", err)
	}
	return data, nil
}

func (s *cellarService) List(ctx context.Context, f Filter) ([]models.Wine, error) {
	all, err := s.repo.FetchAll(ctx, f.IncludeArchived)
	if err != nil {
		return nil, fmt.Errorf("error listing wines: %w", err)
	}
	result := make([]models.Wine, 0, len(all))
	for _, w := range all {
		if f.matches(w) {
			result = append(result, w)
		}
	}
	return result, nil
}

func (s *cellarService) Pair(ctx context.Context, req sommelier.Request) (*sommelier.Result, error) {
	if s.recommender == nil {
		return nil, fmt.Errorf("%w: pairing is not available", common.ErrorNotConfigured)
	}
	inventory, err := s.repo.FetchAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}
	return s.recommender.Recommend(ctx, req, inventory)
}

// Recognize returns an unsaved draft filled from the label photo.
func (s *cellarService) Recognize(ctx context.Context, photo []byte) (*models.Wine, error) {
	if s.recognizer == nil {
		return nil, fmt.Errorf("%w: label recognition is not available", common.ErrorNotConfigured)
	}
	attrs, err := s.recognizer.RecognizeLabel(ctx, photo)
	if err != nil {
		return nil, err
	}
	draft := models.NewWine(attrs.Name, attrs.Color, attrs.Style)
	attrs.Apply(draft)
	return draft, nil
}

func (s *cellarService) dropImage(ctx context.Context, ref string) {
	err := s.images.Delete(ctx, ref)
	switch {
	case err == nil, errors.Is(err, imagestore.ErrNotFound):
	default:
		s.log.Warn(ctx, "failed to delete photo", "ref", ref, "error", err)
	}
}
