package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

func joinColors() string {
	parts := make([]string, 0, len(models.AllColors()))
	for _, c := range models.AllColors() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func joinStyles() string {
	parts := make([]string, 0, len(models.AllStyles()))
	for _, s := range models.AllStyles() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinSweetness() string {
	parts := make([]string, 0, len(models.AllSweetness()))
	for _, s := range models.AllSweetness() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

// parseSweetnessList reads a comma separated list; unknown levels are an error.
func parseSweetnessList(s string) (models.SweetnessSet, error) {
	set := models.NewSweetnessSet()
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sw, ok := models.ParseSweetness(part)
		if !ok {
			return nil, fmt.Errorf("%w: unknown sweetness %q", common.ErrorInvalidInput, part)
		}
		set.Add(sw)
	}
	return set, nil
}

// fillWine prompts for every editable field of w, showing current values as
// defaults. w is modified in place.
func (a *App) fillWine(w *models.Wine) error {
	name, err := GetWithDefault(a.reader, "Name", w.Name, a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorInvalidInput)
	}
	w.Name = strings.TrimSpace(name)

	raw, err := GetWithDefault(a.reader, "Color ("+joinColors()+")", string(w.Color), a.out)
	if err != nil {
		return err
	}
	color, ok := models.ParseColor(raw)
	if !ok {
		return fmt.Errorf("%w: unknown color %q", common.ErrorInvalidInput, raw)
	}
	w.Color = color

	raw, err = GetWithDefault(a.reader, "Style ("+joinStyles()+")", string(w.Style), a.out)
	if err != nil {
		return err
	}
	style, ok := models.ParseStyle(raw)
	if !ok {
		return fmt.Errorf("%w: unknown style %q", common.ErrorInvalidInput, raw)
	}
	w.Style = style

	raw, err = GetWithDefault(a.reader, "Sweetness, comma separated ("+joinSweetness()+")", w.Sweetness.String(), a.out)
	if err != nil {
		return err
	}
	if w.Sweetness, err = parseSweetnessList(raw); err != nil {
		return err
	}

	if w.Producer, err = GetWithDefault(a.reader, "Producer", w.Producer, a.out); err != nil {
		return err
	}

	raw, err = GetWithDefault(a.reader, "Vintage (year or NV)", w.Vintage.String(), a.out)
	if err != nil {
		return err
	}
	if w.Vintage, err = models.ParseVintage(raw); err != nil {
		return err
	}

	if w.Region, err = GetWithDefault(a.reader, "Region", w.Region, a.out); err != nil {
		return err
	}
	if w.Varietal, err = GetWithDefault(a.reader, "Varietal", w.Varietal, a.out); err != nil {
		return err
	}

	if w.Notes == "" {
		w.Notes, err = GetMultiline(a.reader, "Notes", a.out)
	} else {
		w.Notes, err = GetWithDefault(a.reader, "Notes", w.Notes, a.out)
	}
	return err
}

// readPhoto asks for an image path; an empty answer means no photo.
func (a *App) readPhoto(prompt string) ([]byte, error) {
	path, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil || path == "" {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading photo: %w", err)
	}
	return data, nil
}
