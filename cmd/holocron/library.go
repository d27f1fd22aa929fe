package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the resources in your library",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var kind data.Kind
		if k, _ := cmd.Flags().GetString("kind"); k != "" {
			kind = parseKind(k)
		}

		entries, err := controller.Library(kind)
		cobra.CheckErr(err)

		if len(entries) == 0 {
			fmt.Println("Library is empty. Use 'holocron save <kind> <id>' to add resources.")
			return
		}

		columns := []table.Column{
			{Title: "Kind", Width: 10},
			{Title: "Name", Width: 30},
			{Title: "Note", Width: 30},
			{Title: "Saved", Width: 16},
			{Title: "URL", Width: 40},
		}
		rows := make([]table.Row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, table.Row{
				e.Kind.Singular(),
				truncateString(e.Name, 28),
				truncateString(e.Note, 28),
				e.SavedAt.Local().Format("2006-01-02 15:04"),
				e.URL,
			})
		}

		fmt.Printf("\nLibrary (%d)\n\n", len(entries))
		fmt.Println(renderTable(columns, rows))
	},
}

var libraryRmCmd = &cobra.Command{
	Use:   "rm <url>",
	Short: "Remove a resource from your library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(controller.Remove(args[0]))
		fmt.Printf("Removed %s\n", args[0])
	},
}

func init() {
	libraryCmd.Flags().StringP("kind", "k", "", "Only show entries of this kind")
	libraryCmd.AddCommand(libraryRmCmd)
}
