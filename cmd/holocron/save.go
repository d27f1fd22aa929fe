package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <kind> <id>",
	Short: "Save a resource to your library",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind(args[0])
		note, _ := cmd.Flags().GetString("note")

		record, err := controller.Show(cmd.Context(), kind, args[1])
		cobra.CheckErr(err)

		entry, err := controller.Save(kind, record.Primary(), note)
		cobra.CheckErr(err)

		fmt.Printf("Saved %s (%s)\n", entry.Name, entry.URL)
	},
}

func init() {
	saveCmd.Flags().StringP("note", "n", "", "Note to keep with the entry")
}
