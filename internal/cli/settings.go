package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/llm"
	"github.com/dmitrijs2005/winecellar/internal/repositories/settings"
)

func origin(saved bool) string {
	if saved {
		return " (saved)"
	}
	return " (default)"
}

// Settings shows the API key (masked) and model and lets the user change
// them. The key is read without echo.
func (a *App) Settings(ctx context.Context) error {
	masked, err := a.settings.MaskedAPIKey(ctx)
	if err != nil {
		return err
	}
	model, err := a.settings.Model(ctx)
	if err != nil {
		return err
	}
	saved, err := a.settings.Saved(ctx)
	if err != nil {
		return err
	}
	if masked == "" {
		masked = "(not set)"
	} else {
		masked += origin(saved[settings.KeyAPIKey])
	}
	fmt.Fprintf(a.out, "API key: %s\nModel:   %s%s\n", masked, model, origin(saved[settings.KeyModel]))

	choice, err := GetSimpleText(a.reader, "Change (key, model, clear, empty to return)", a.out)
	if err != nil {
		return err
	}

	switch strings.ToLower(choice) {
	case "":
		return nil

	case "key":
		key, err := GetSecret("Anthropic API key (empty removes it)", a.out)
		if err != nil {
			return err
		}
		if err := a.settings.SetAPIKey(ctx, key); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "API key saved.")

	case "model":
		fmt.Fprintln(a.out, "Supported models:")
		for _, m := range llm.SupportedModels {
			fmt.Fprintln(a.out, "  "+m)
		}
		m, err := GetSimpleText(a.reader, "Model", a.out)
		if err != nil {
			return err
		}
		if err := a.settings.SetModel(ctx, m); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Model saved.")

	case "clear":
		ok, err := GetConfirm(a.reader, "Remove stored key and model?", a.out)
		if err != nil || !ok {
			return err
		}
		if err := a.settings.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Settings cleared.")

	default:
		return fmt.Errorf("%w: unknown settings option %q", common.ErrorInvalidInput, choice)
	}
	return nil
}
