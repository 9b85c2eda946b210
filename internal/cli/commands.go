package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/models"
	"github.com/dmitrijs2005/winecellar/internal/services"
	"github.com/dmitrijs2005/winecellar/internal/sommelier"
)

// Add prompts for a new wine and an optional label photo.
func (a *App) Add(ctx context.Context) error {
	draft := models.NewWine("", "", "")
	if err := a.fillWine(draft); err != nil {
		return err
	}
	return a.save(ctx, draft)
}

func (a *App) save(ctx context.Context, draft *models.Wine) error {
	photo, err := a.readPhoto("Photo path (empty for none)")
	if err != nil {
		return err
	}
	w, err := a.cellar.Add(ctx, draft, photo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s [%s]\n", w.Title(), w.ID)
	return nil
}

// Recognize reads a label photo, shows the recognised attributes as a
// pre-filled form and stores the wine together with the photo.
func (a *App) Recognize(ctx context.Context) error {
	photo, err := a.readPhoto("Label photo path")
	if err != nil {
		return err
	}
	if len(photo) == 0 {
		return fmt.Errorf("%w: a photo is required", common.ErrorInvalidInput)
	}

	fmt.Fprintln(a.out, "Reading label...")
	draft, err := a.cellar.Recognize(ctx, photo)
	if err != nil {
		return err
	}
	printWineDetails(a.out, draft)

	if err := a.fillWine(draft); err != nil {
		return err
	}
	w, err := a.cellar.Add(ctx, draft, photo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s [%s]\n", w.Title(), w.ID)
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	w, err := a.promptWine(ctx, "Enter wine id to edit")
	if err != nil {
		return err
	}
	if err := a.fillWine(w); err != nil {
		return err
	}
	photo, err := a.readPhoto("New photo path (empty keeps the current one)")
	if err != nil {
		return err
	}
	updated, err := a.cellar.Update(ctx, w, photo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", updated.Title())
	return nil
}

// List prints the inventory narrowed by args: "all" includes archived
// wines, color=, style= and sweet= (comma separated) filter by attribute.
func (a *App) List(ctx context.Context, args []string) error {
	filter, err := parseListFilter(args)
	if err != nil {
		return err
	}
	wines, err := a.cellar.List(ctx, filter)
	if err != nil {
		return err
	}
	printWineTable(a.out, wines)
	return nil
}

func parseListFilter(args []string) (services.Filter, error) {
	var f services.Filter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if strings.EqualFold(arg, "all") {
				f.IncludeArchived = true
				continue
			}
			return f, fmt.Errorf("%w: unexpected argument %q", common.ErrorInvalidInput, arg)
		}

		switch strings.ToLower(key) {
		case "color":
			c, ok := models.ParseColor(value)
			if !ok {
				return f, fmt.Errorf("%w: unknown color %q", common.ErrorInvalidInput, value)
			}
			f.Color = &c
		case "style":
			st, ok := models.ParseStyle(value)
			if !ok {
				return f, fmt.Errorf("%w: unknown style %q", common.ErrorInvalidInput, value)
			}
			f.Style = &st
		case "sweet", "sweetness":
			set, err := parseSweetnessList(value)
			if err != nil {
				return f, err
			}
			f.Sweetness = set
		default:
			return f, fmt.Errorf("%w: unknown filter %q", common.ErrorInvalidInput, key)
		}
	}
	return f, nil
}

// Search lists active wines whose name, producer, region or varietal
// contains query.
func (a *App) Search(ctx context.Context, query string) error {
	wines, err := a.cellar.List(ctx, services.Filter{Search: query})
	if err != nil {
		return err
	}
	printWineTable(a.out, wines)
	return nil
}

func (a *App) Show(ctx context.Context) error {
	w, err := a.promptWine(ctx, "Enter wine id to show")
	if err != nil {
		return err
	}
	printWineDetails(a.out, w)

	if w.ImageRef != "" {
		photo, err := a.cellar.Photo(ctx, w.ID)
		switch {
		case err != nil:
			a.log.Warn(ctx, "failed to load photo", "id", w.ID, "error", err)
		case photo == nil:
			fmt.Fprintln(a.out, "Photo file is missing.")
		default:
			fmt.Fprintf(a.out, "Photo size: %d bytes\n", len(photo))
		}
	}
	return nil
}

func (a *App) Archive(ctx context.Context) error {
	w, err := a.promptWine(ctx, "Enter wine id to archive or restore")
	if err != nil {
		return err
	}
	if err := a.cellar.ToggleArchived(ctx, w.ID); err != nil {
		return err
	}
	if w.IsArchived {
		fmt.Fprintf(a.out, "Restored %s\n", w.Title())
	} else {
		fmt.Fprintf(a.out, "Archived %s\n", w.Title())
	}
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	w, err := a.promptWine(ctx, "Enter wine id to delete")
	if err != nil {
		return err
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete %s?", w.Title()), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.cellar.Delete(ctx, w.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", w.Title())
	return nil
}

// Pair asks for a dish or occasion and prints the recommendation.
func (a *App) Pair(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Pair with (food/occasion) [food]", a.out)
	if err != nil {
		return err
	}
	pt, ok := sommelier.ParsePairingType(raw)
	if !ok {
		return fmt.Errorf("%w: unknown pairing type %q", common.ErrorInvalidInput, raw)
	}

	label := "Dish or meal"
	if pt == sommelier.PairingOccasion {
		label = "Occasion"
	}
	query, err := GetSimpleText(a.reader, label, a.out)
	if err != nil {
		return err
	}

	req := sommelier.Request{Query: query, PairingType: pt}
	raw, err = GetSimpleText(a.reader, "Preferred color ("+joinColors()+", empty for any)", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) != "" {
		c, ok := models.ParseColor(raw)
		if !ok {
			return fmt.Errorf("%w: unknown color %q", common.ErrorInvalidInput, raw)
		}
		req.PreferredColor = &c
	}

	fmt.Fprintln(a.out, "Asking the sommelier...")
	res, err := a.cellar.Pair(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Text())
	if res.Wine != nil {
		fmt.Fprintf(a.out, "In your cellar: %s [%s]\n", res.Wine.Title(), res.Wine.ID)
	}
	return nil
}

func (a *App) promptWine(ctx context.Context, prompt string) (*models.Wine, error) {
	id, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrorInvalidInput)
	}
	w, err := a.cellar.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("no wine with id %s", id)
	}
	return w, err
}
