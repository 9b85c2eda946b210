package sommelier

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

// Messenger sends one request to the language model. *llm.Client implements it.
type Messenger interface {
	Messages(ctx context.Context, req llm.MessagesRequest) (string, error)
}

type Service struct {
	llm Messenger
	log logging.Logger
}

func NewService(m Messenger, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{llm: m, log: log}
}

// Recommend filters inventory, asks the model and resolves the chosen wine
// against the unfiltered inventory.
func (s *Service) Recommend(ctx context.Context, req Request, inventory []models.Wine) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if req.PairingType == "" {
		req.PairingType = PairingFood
	}

	candidates := FilterInventory(req, inventory)
	system, user := BuildPrompt(req, candidates)

	raw, err := s.llm.Messages(ctx, llm.MessagesRequest{System: system, Prompt: user})
	if err != nil {
		return nil, fmt.Errorf("recommendation request: %w", err)
	}

	rec, err := ParseRecommendation(raw)
	if err != nil {
		s.log.Warn(ctx, "unparseable recommendation", "error", err)
		return nil, err
	}

	res := &Result{Recommendation: *rec, Wine: resolve(rec.RecommendedWine.ID, inventory)}
	if res.Wine == nil {
		s.log.Info(ctx, "recommended wine not in inventory", "id", rec.RecommendedWine.ID, "name", rec.RecommendedWine.Name)
	}
	return res, nil
}
