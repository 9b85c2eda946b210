package sommelier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = flexString(n.String())
	}
	return nil
}

type RecommendedWine struct {
	Name     string     `json:"name"`
	Producer string     `json:"producer"`
	Vintage  flexString `json:"vintage"`
	ID       string     `json:"id"`
}

type BetterPairing struct {
	Wine        string `json:"wine"`
	Explanation string `json:"explanation"`
}

// Recommendation is the model's structured answer.
type Recommendation struct {
	RecommendedWine   RecommendedWine `json:"recommendedWine"`
	WhyThisPair       []string        `json:"whyThisPair"`
	PairingConfidence int             `json:"pairingConfidence"`
	BetterPairing     *BetterPairing  `json:"betterPairing,omitempty"`
}

// ParseRecommendation extracts and validates the JSON object in raw.
// A betterPairing sent alongside a confidence of 8 or more is dropped.
func ParseRecommendation(raw string) (*Recommendation, error) {
	body, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecommendation, err)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecommendation, err)
	}

	rec.RecommendedWine.Name = strings.TrimSpace(rec.RecommendedWine.Name)
	rec.RecommendedWine.ID = strings.TrimSpace(rec.RecommendedWine.ID)
	reasons := rec.WhyThisPair[:0]
	for _, r := range rec.WhyThisPair {
		if r = strings.TrimSpace(r); r != "" {
			reasons = append(reasons, r)
		}
	}
	rec.WhyThisPair = reasons

	switch {
	case rec.RecommendedWine.Name == "":
		return nil, fmt.Errorf("%w: recommended wine has no name", ErrInvalidRecommendation)
	case len(rec.WhyThisPair) == 0:
		return nil, fmt.Errorf("%w: no reasons given", ErrInvalidRecommendation)
	case rec.PairingConfidence < 1 || rec.PairingConfidence > 10:
		return nil, fmt.Errorf("%w: confidence %d out of range", ErrInvalidRecommendation, rec.PairingConfidence)
	}

	if rec.PairingConfidence >= 8 {
		rec.BetterPairing = nil
	}
	if bp := rec.BetterPairing; bp != nil && strings.TrimSpace(bp.Wine) == "" && strings.TrimSpace(bp.Explanation) == "" {
		rec.BetterPairing = nil
	}
	return &rec, nil
}

// Result pairs the recommendation with the inventory record it names.
// Wine is nil when the id did not resolve.
type Result struct {
	Recommendation Recommendation
	Wine           *models.Wine
}

// Text renders the result for plain-text display.
func (r *Result) Text() string {
	rec := r.Recommendation
	var b strings.Builder

	title := rec.RecommendedWine.Name
	if r.Wine != nil {
		title = r.Wine.Title()
	} else {
		var extra []string
		if rec.RecommendedWine.Producer != "" {
			extra = append(extra, rec.RecommendedWine.Producer)
		}
		if rec.RecommendedWine.Vintage != "" {
			extra = append(extra, string(rec.RecommendedWine.Vintage))
		}
		if len(extra) > 0 {
			title += " (" + strings.Join(extra, ", ") + ")"
		}
	}
	b.WriteString("Recommended: " + title + "\n\nWhy this pairs well:\n")
	for _, reason := range rec.WhyThisPair {
		b.WriteString("• " + reason + "\n")
	}
	b.WriteString("\nPairing Confidence: " + strconv.Itoa(rec.PairingConfidence) + "/10\n")
	if bp := rec.BetterPairing; bp != nil {
		b.WriteString("\nBetter pairing: " + bp.Wine + "\n" + bp.Explanation + "\n")
	}
	return b.String()
}

func resolve(id string, inventory []models.Wine) *models.Wine {
	if id == "" {
		return nil
	}
	for i := range inventory {
		if inventory[i].ID == id {
			w := inventory[i].Clone()
			return &w
		}
	}
	return nil
}
