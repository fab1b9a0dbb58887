package cmd

import (
	"github.com/spf13/cobra"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Build the bed spring clip (clip.stl)",
	Long: `Build the spring clip: a C-shaped profile with a grip bump and a handle,
extruded to the clip width with the arm edges chamfered.

Dimensions come from the clip section of the config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParts(cmd, []part{clipPart(Cfg.Clip)})
	},
}

func init() {
	rootCmd.AddCommand(clipCmd)
}
