package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dstockto/partgen/db"
	"github.com/spf13/cobra"
)

var driftStyle = cellStyle.Foreground(lipgloss.Color("1")).Bold(true)

func historyTable(builds []db.Build) *table.Table {
	rows := make([][]string, len(builds))
	for i, b := range builds {
		status := "ok"
		if b.Drifted {
			status = "DRIFT"
		}
		rows[i] = []string{
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			b.Part,
			TruncateFront(b.File, 32),
			b.ParamsHash,
			b.SHA256[:min(12, len(b.SHA256))],
			fmt.Sprintf("%d", b.Triangles),
			fmt.Sprintf("%g", b.Resolution),
			status,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("BUILT", "PART", "FILE", "PARAMS", "SHA256", "TRIANGLES", "RES", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case builds[row].Drifted:
				return driftStyle
			default:
				return cellStyle
			}
		})
}

var historyCmd = &cobra.Command{
	Use:   "history [part]",
	Short: "List recent builds from the history database",
	Long: `List recent builds recorded in the history database, newest first.

A build is marked DRIFT when an earlier build of the same part with the same
parameters, resolution and search iterations wrote a different file. That means the output is
not reproducible and is worth a bug report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Cfg.Database == "" {
			return errors.New("no database configured; set database in partgen.yaml")
		}
		part := ""
		if len(args) == 1 {
			part = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := db.NewClient(Cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		builds, err := client.RecentBuilds(part, limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(builds) == 0 {
			_, _ = fmt.Fprintln(out, "No builds recorded.")
			return nil
		}
		_, _ = fmt.Fprintln(out, historyTable(builds))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "number of builds to show")
}
