package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/winecellar/internal/models"
)

func printWineTable(w io.Writer, wines []models.Wine) {
	if len(wines) == 0 {
		fmt.Fprintln(w, "No wines.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRODUCER\tVINTAGE\tCOLOR\tSTYLE\tADDED")
	for _, wine := range wines {
		name := wine.Name
		if wine.IsArchived {
			name += " (archived)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			wine.ID, name, wine.Producer, wine.Vintage.String(),
			wine.Color, wine.Style, wine.DateAdded.Local().Format("2006-01-02"))
	}
	_ = tw.Flush()
}

func printWineDetails(w io.Writer, wine *models.Wine) {
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-10s %s\n", label+":", value)
		}
	}
	row("ID", wine.ID)
	row("Name", wine.Name)
	row("Color", string(wine.Color))
	row("Style", string(wine.Style))
	row("Sweetness", wine.Sweetness.String())
	row("Producer", wine.Producer)
	row("Vintage", wine.Vintage.String())
	row("Region", wine.Region)
	row("Varietal", wine.Varietal)
	row("Added", wine.DateAdded.Local().Format("2006-01-02 15:04"))
	if wine.IsArchived {
		row("Status", "archived")
	}
	row("Photo", wine.ImageRef)
	if wine.Notes != "" {
		fmt.Fprintln(w, "Notes:")
		for _, line := range strings.Split(wine.Notes, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}
