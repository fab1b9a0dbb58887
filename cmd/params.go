package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dstockto/partgen/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	derivedStyle = cellStyle.Foreground(lipgloss.Color("8")).Italic(true)
)

// paramsTable lays out params as name, value and unit columns. Derived
// values are dimmed.
func paramsTable(params []models.Param) *table.Table {
	rows := make([][]string, len(params))
	for i, p := range params {
		name := p.Name
		if p.Derived {
			name += " *"
		}
		rows[i] = []string{name, strconv.FormatFloat(p.Value, 'g', -1, 64), p.Unit}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("PARAMETER", "VALUE", "UNIT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case params[row].Derived:
				return derivedStyle
			default:
				return cellStyle
			}
		})
}

func printParams(out io.Writer, title, file string, v any, params []models.Param) error {
	hash, err := models.ParamsHash(v)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s → %s (params %s)\n", title, file, hash)
	_, _ = fmt.Fprintln(out, paramsTable(params))
	_, _ = fmt.Fprintln(out, "* derived")
	return nil
}

var paramsCmd = &cobra.Command{
	Use:   "params [clip|tail]",
	Short: "Show the effective part parameters",
	Long: `Show the parameters each part is built from after config files,
environment and flags are applied, with the values derived from them.

With --yaml the parameters are printed as a config snippet instead.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"clip", "tail"},
	RunE: func(cmd *cobra.Command, args []string) error {
		which := "all"
		if len(args) == 1 {
			which = args[0]
		}
		if which != "all" && which != "clip" && which != "tail" {
			return fmt.Errorf("unknown part %q (known: clip, tail)", which)
		}

		out := cmd.OutOrStdout()
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			snippet := map[string]any{}
			if which != "tail" {
				snippet["clip"] = Cfg.Clip
			}
			if which != "clip" {
				snippet["tail"] = Cfg.Tail
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(snippet); err != nil {
				return err
			}
			return enc.Close()
		}

		if which != "tail" {
			if err := printParams(out, "clip", clipPart(Cfg.Clip).File, Cfg.Clip, Cfg.Clip.Params()); err != nil {
				return err
			}
		}
		if which != "clip" {
			if err := printParams(out, "tail", Cfg.Tail.ModelName(), Cfg.Tail, Cfg.Tail.Params()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.Flags().Bool("yaml", false, "print the parameters as a YAML config snippet")
}
