package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

// catalogCommand creates the catalog command listing placeable components.
func (c *CLI) catalogCommand() *cobra.Command {
	var regionFilter string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the component catalog by region",
		RunE: func(cmd *cobra.Command, args []string) error {
			if regionFilter != "" {
				region, err := canvas.ParseRegion(regionFilter)
				if err != nil {
					return err
				}
				printCatalogTable(region.Label(), canvas.CatalogFor(region))
				return nil
			}

			for _, region := range canvas.Regions() {
				printCatalogTable(region.Label(), canvas.CatalogFor(region))
				printNewline()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&regionFilter, "region", "r", "", "only show one region: header, body, or footer")
	return cmd
}

func printCatalogTable(title string, entries []canvas.CatalogEntry) {
	fmt.Println(StyleTitle.Render(title))

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{string(e.Type), e.Label})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}
