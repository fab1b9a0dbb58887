package cmd

import (
	"github.com/spf13/cobra"
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Build the rocket tail cone (tail_plain.stl or tail_curved.stl)",
	Long: `Build the tail cone: a hollow cone with a rim, a stabilizer of fins
and bayonet latch slots.

A positive slice angle twists each fin slice by that many degrees more than
the one below it and writes tail_curved.stl. Zero gives straight fins in
tail_plain.stl.`,
	Example: `  partgen tail
  partgen tail --slice-angle 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := Cfg.Tail
		if cmd.Flags().Changed("slice-angle") {
			p.FeatherSliceAngle, _ = cmd.Flags().GetFloat64("slice-angle")
		}
		return runParts(cmd, []part{tailPart(p)})
	},
}

func init() {
	rootCmd.AddCommand(tailCmd)
	tailCmd.Flags().Float64("slice-angle", 0.1, "fin twist per slice in degrees; 0 for straight fins")
}
