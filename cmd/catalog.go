package cmd

import (
	"fmt"
	"strings"

	"boilerInspector/internal/catalog"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List products, checklist items and locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Products:")
		for _, p := range catalog.Products() {
			fmt.Fprintf(out, "  %-10s %s\n", p.Name, p.Label)
		}

		for _, c := range []catalog.Category{catalog.CategoryInstall, catalog.CategoryCheck} {
			fmt.Fprintf(out, "\nChecklist (%s):\n", c)
			for _, item := range catalog.ChecklistByCategory(c) {
				fmt.Fprintf(out, "  %-22s %s\n", item.ID, item.Label)
			}
		}

		fmt.Fprintln(out, "\nLocations:")
		for _, city := range catalog.Cities() {
			fmt.Fprintf(out, "  %s: %s\n", city, strings.Join(catalog.Districts(city), ", "))
		}
		return nil
	},
}
