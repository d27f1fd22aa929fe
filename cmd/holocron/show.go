package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <kind> <id>",
	Short: "Show one resource with its related resources",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		kind := parseKind(args[0])

		format, _ := cmd.Flags().GetString("format")

		record, err := controller.Show(cmd.Context(), kind, args[1])
		cobra.CheckErr(err)

		cobra.CheckErr(writeRecord(cmd.OutOrStdout(), record, format))
	},
}

func init() {
	showCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
}

func renderRecord(record data.Record) string {
	primary := record.Primary()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(primary.DisplayName()))
	b.WriteString("\n")
	for _, f := range primary.Fields() {
		fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render(f.Label+":"), f.Value)
	}
	if film, ok := primary.(data.Film); ok && film.OpeningCrawl.Known() {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(strings.Fields(string(film.OpeningCrawl)), " ")))
		b.WriteString("\n")
	}

	for _, g := range record.Related() {
		fmt.Fprintf(&b, "\n%s\n", styles.LabelStyle.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Items))))
		for _, item := range g.Items {
			fmt.Fprintf(&b, "  • %s\n", item.DisplayName())
		}
	}
	return b.String()
}
