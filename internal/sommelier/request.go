// Package sommelier asks the language model for a pairing recommendation
// drawn from the cellar inventory.
package sommelier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/models"
)

// PairingType tells the model whether the query names a dish or an occasion.
type PairingType string

const (
	PairingFood     PairingType = "food"
	PairingOccasion PairingType = "occasion"
)

func ParsePairingType(s string) (PairingType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "food", "dish", "meal":
		return PairingFood, true
	case "occasion", "event":
		return PairingOccasion, true
	default:
		return "", false
	}
}

var (
	ErrEmptyQuery            = errors.New("pairing query is empty")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
)

// Request is one pairing question.
type Request struct {
	Query          string
	PairingType    PairingType
	PreferredColor *models.Color
}

// FilterInventory drops archived wines and, when a color is preferred,
// wines of other colors. Order is preserved.
func FilterInventory(req Request, inventory []models.Wine) []models.Wine {
	out := make([]models.Wine, 0, len(inventory))
	for _, w := range inventory {
		if w.IsArchived {
			continue
		}
		if req.PreferredColor != nil && w.Color != *req.PreferredColor {
			continue
		}
		out = append(out, w)
	}
	return out
}

// FormatInventory renders one line per wine for the prompt.
func FormatInventory(inventory []models.Wine) string {
	if len(inventory) == 0 {
		return "(no wines in inventory)"
	}
	var b strings.Builder
	for i, w := range inventory {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- id: %s | name: %s", w.ID, w.Name)
		field := func(label, value string) {
			if value != "" {
				fmt.Fprintf(&b, " | %s: %s", label, value)
			}
		}
		field("producer", w.Producer)
		field("vintage", w.Vintage.String())
		field("color", string(w.Color))
		field("style", string(w.Style))
		field("region", w.Region)
		field("varietal", w.Varietal)
		field("notes", strings.Join(strings.Fields(w.Notes), " "))
	}
	return b.String()
}

const systemPrompt = `You are a professional sommelier helping someone choose a bottle from their own cellar. You only recommend wines that appear in the inventory you are given.`

const responseShape = `Respond with ONLY a JSON object, no markdown and no extra text, in exactly this shape:
{
  "recommendedWine": {"name": "string", "producer": "string", "vintage": "string", "id": "string"},
  "whyThisPair": ["string", "..."],
  "pairingConfidence": 1-10,
  "betterPairing": {"wine": "string", "explanation": "string"}
}
Rules:
- "recommendedWine.id" must be copied verbatim from the inventory line you chose.
- "whyThisPair" has 2-3 concise reasons that mention acidity, tannin, body or flavor profile where relevant.
- "pairingConfidence" is an integer from 1 to 10.
- Include "betterPairing" only when pairingConfidence is below 8; it names a wine style or variety not in the inventory that would match better. Omit the key entirely when pairingConfidence is 8 or higher.`

// BuildPrompt returns the system and user messages for req.
func BuildPrompt(req Request, inventory []models.Wine) (string, string) {
	var task, label string
	switch req.PairingType {
	case PairingOccasion:
		task = "Recommend the single best wine from the inventory for the occasion described below, considering mood, setting and season."
		label = "Occasion"
	default:
		task = "Recommend the single best wine from the inventory to pair with the dish or meal described below."
		label = "Dish/Meal"
	}

	var b strings.Builder
	b.WriteString(task)
	b.WriteString("\n\n")
	b.WriteString(responseShape)
	b.WriteString("\n\nWine Inventory:\n")
	b.WriteString(FormatInventory(inventory))
	if req.PreferredColor != nil {
		fmt.Fprintf(&b, "\n\nThe guest prefers %s wine.", strings.ToLower(string(*req.PreferredColor)))
	}
	fmt.Fprintf(&b, "\n\n%s:\n%s", label, strings.TrimSpace(req.Query))
	return systemPrompt, b.String()
}
