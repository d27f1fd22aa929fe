package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/holocron/pkg/app/components"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List resources of one kind",
	Long:  "Display one page of films, people, planets, species, starships or vehicles in a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind(args[0])
		query, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")

		browser, err := controller.NewList(kind)
		cobra.CheckErr(err)

		browser.Load(cmd.Context())
		if msg := browser.Err(); msg != "" {
			cobra.CheckErr(msg)
		}
		if query != "" {
			browser.Search(query)
		}
		for browser.Page() < page && !browser.IsLastPage() {
			browser.NextPage()
		}

		items := browser.PageResources()
		if len(items) == 0 {
			fmt.Printf("No %s found.\n", strings.ToLower(kind.Plural()))
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 4},
			{Title: "Name", Width: 32},
			{Title: "Details", Width: 60},
		}
		rows := make([]table.Row, 0, len(items))
		for _, item := range items {
			rows = append(rows, table.Row{
				data.IDFromURL(item.ResourceURL()),
				truncateString(item.DisplayName(), 30),
				truncateString(components.Summary(item.Fields(), 3), 58),
			})
		}

		fmt.Printf("\n%s (%d)\n\n", kind.Plural(), browser.Count())
		fmt.Println(renderTable(columns, rows))
		fmt.Printf("\nPage %d of %d\n", browser.Page(), browser.TotalPages())
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "Filter by name (case-insensitive)")
	listCmd.Flags().IntP("page", "p", 1, "Page to show")
}
