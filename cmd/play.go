package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the practice app (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-splash")
		return runPlay(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runPlay builds the runtime and launches the TUI.
func runPlay(cmd *cobra.Command, skipSplash bool) error {
	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Deps{
		NewMachine: rt.newMachine,
		Creds:      rt.creds,
		Model:      rt.cfg.LLM.Model(),
		SkipSplash: skipSplash,
	})
}
