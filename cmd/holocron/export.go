package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <kind> <id>",
	Short: "Export a resource dossier as EPUB",
	Long:  "Load a resource with all of its related resources and write them to an EPUB file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind(args[0])

		fmt.Printf("Exporting %s %s...\n", kind.Singular(), args[1])
		path, err := controller.Export(cmd.Context(), kind, args[1])
		cobra.CheckErr(err)

		fmt.Printf("Created %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output directory (default from config export_dir)")
	cobra.CheckErr(v.BindPFlag("export_dir", exportCmd.Flags().Lookup("output")))
}
