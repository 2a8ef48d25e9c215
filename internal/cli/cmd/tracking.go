package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ctxtree/internal/cli/styles"
)

var trackingCmd = &cobra.Command{
	Use:       "tracking [on|off]",
	Short:     "Show or switch context tracking",
	Long:      `Without argument, show whether context tracking is on. With on or off, persist the switch to config.toml. A running "replay --follow" picks the change up live; turning tracking off discards its tree.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runTracking,
}

func init() {
	rootCmd.AddCommand(trackingCmd)
}

func runTracking(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if len(args) == 1 {
		if err := app.ConfigManager.SetTrackingEnabled(args[0] == "on"); err != nil {
			return fmt.Errorf("save tracking setting: %w", err)
		}
	}

	t := app.Theme
	if app.Tracker.IsTracking() {
		fmt.Fprintln(cmd.OutOrStdout(), t.SuccessStyle.Render(styles.IconPlay+" context tracking is on"))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), t.WarningStyle.Render(styles.IconPause+" context tracking is off"))
	}
	return nil
}
