// Package vision reads wine attributes off a label photo using the
// language model's image input.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/imaging"
	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

var ErrInvalidAttributes = errors.New("invalid label attributes")

const labelPrompt = `Return a JSON object with ONLY the following fields describing the wine label, inferring details where possible:
{
    "name": "string",
    "color": "Red|White|Rosé|Orange|Other",
    "style": "Still|Sparkling|Fortified",
    "sweetness": "Dry|Off-Dry|Sweet|Dessert-Sweet|null",
    "producer": "string|null",
    "vintage": number|null,
    "region": "string|null",
    "varietal": "string|null"
}
Do not include any additional text, description, or explanation - only return valid JSON.`

// RecognizedAttributes is what the model read off the label.
type RecognizedAttributes struct {
	Name      string
	Color     models.Color
	Style     models.Style
	Sweetness models.SweetnessSet
	Producer  string
	Vintage   models.Vintage
	Region    string
	Varietal  string
}

// Apply copies the recognised attributes onto a draft record. Empty
// optional attributes leave the draft untouched.
func (a *RecognizedAttributes) Apply(w *models.Wine) {
	w.Name = a.Name
	w.Color = a.Color
	w.Style = a.Style
	if a.Sweetness.Len() > 0 {
		w.Sweetness = a.Sweetness.Clone()
	}
	if a.Producer != "" {
		w.Producer = a.Producer
	}
	if a.Vintage.IsSet() {
		w.Vintage = a.Vintage
	}
	if a.Region != "" {
		w.Region = a.Region
	}
	if a.Varietal != "" {
		w.Varietal = a.Varietal
	}
}

type wireAttributes struct {
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Style     string          `json:"style"`
	Sweetness *string         `json:"sweetness"`
	Producer  *string         `json:"producer"`
	Vintage   json.RawMessage `json:"vintage"`
	Region    *string         `json:"region"`
	Varietal  *string         `json:"varietal"`
}

// ParseAttributes decodes the JSON object embedded in raw.
func ParseAttributes(raw string) (*RecognizedAttributes, error) {
	body, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
	}
	var w wireAttributes
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
	}

	name := strings.TrimSpace(w.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidAttributes)
	}
	color, ok := models.ParseColor(w.Color)
	if !ok {
		return nil, fmt.Errorf("%w: unknown color %q", ErrInvalidAttributes, w.Color)
	}
	style, ok := models.ParseStyle(w.Style)
	if !ok {
		return nil, fmt.Errorf("%w: unknown style %q", ErrInvalidAttributes, w.Style)
	}
	vintage := parseVintage(w.Vintage)

	sweetness := models.NewSweetnessSet()
	if s := deref(w.Sweetness); s != "" {
		if v, ok := models.ParseSweetness(s); ok {
			sweetness.Add(v)
		}
	}

	return &RecognizedAttributes{
		Name:      name,
		Color:     color,
		Style:     style,
		Sweetness: sweetness,
		Producer:  deref(w.Producer),
		Vintage:   vintage,
		Region:    deref(w.Region),
		Varietal:  deref(w.Varietal),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	if strings.EqualFold(v, "null") {
		return ""
	}
	return v
}

// parseVintage accepts null, a number, a numeric string or "NV". Anything
// that is not a usable year reads as an unknown vintage.
func parseVintage(raw json.RawMessage) models.Vintage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.NoVintage()
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return models.NoVintage()
		}
		v, err := models.ParseVintage(s)
		if err != nil {
			return models.NoVintage()
		}
		return v
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return models.NoVintage()
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 {
		return models.NoVintage()
	}
	v, err := models.VintageYear(int(f))
	if err != nil {
		return models.NoVintage()
	}
	return v
}

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

// RecognizeLabel resizes image for the model and parses its reply.
func (s *Service) RecognizeLabel(ctx context.Context, image []byte) (*RecognizedAttributes, error) {
	jpg, err := imaging.OptimizeForVision(image)
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Messages(ctx, llm.MessagesRequest{
		Parts: []llm.ContentPart{
			llm.ImagePart("image/jpeg", base64.StdEncoding.EncodeToString(jpg)),
			llm.TextPart(labelPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("label recognition request: %w", err)
	}

	attrs, err := ParseAttributes(raw)
	if err != nil {
		s.log.Warn(ctx, "unparseable label attributes", "error", err)
		return nil, err
	}
	return attrs, nil
}
