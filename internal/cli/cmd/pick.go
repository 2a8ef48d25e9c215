package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/ctxtree/internal/application/usecase"
	"github.com/bnema/ctxtree/internal/cli/model"
	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/infrastructure/aicontext"
	"github.com/bnema/ctxtree/internal/infrastructure/eventlog"
)

var (
	pickFormat string
	pickCopy   bool
)

var pickCmd = &cobra.Command{
	Use:   "pick FILE",
	Short: "Pick pages from the context tree to hand to a chat",
	Long: `Rebuild the context tree from FILE and open an interactive picker.

Select pages with space (or a whole subtree with a), remove pages with d,
and press enter to send the selection. The selection is printed in the
configured format and, with --copy, also copied to the clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().StringVar(&pickFormat, "format", "", "selection format: markdown or json (default from config)")
	pickCmd.Flags().BoolVar(&pickCopy, "copy", false, "also copy the selection to the clipboard")
}

func runPick(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	format := app.SelectionFormat()
	if pickFormat != "" {
		var err error
		if format, err = aicontext.ParseFormat(pickFormat); err != nil {
			return err
		}
	}

	events, err := eventlog.ReadFile(args[0])
	if err != nil {
		return err
	}
	app.ReplayUC.Execute(ctx, events)

	m := model.NewContextPickerModel(ctx, app.Theme, model.ContextPickerConfig{
		Tracker:  app.Tracker,
		CopyURL:  app.CopyUC,
		MaxTitle: app.Config.Context.MaxTitleLength,
	})

	// The picker draws on stderr so stdout only carries the selection.
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.ErrOrStderr()))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	picker, ok := finalModel.(model.ContextPickerModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if !picker.Confirmed() {
		return nil
	}

	selectUC := usecase.NewSelectContextUseCase(app.Tracker, app.SelectionSink(cmd.OutOrStdout(), format, pickCopy))
	selection, err := selectUC.Execute(ctx, usecase.SelectContextInput{URLs: picker.Selected()})
	if errors.Is(err, usecase.ErrNoSelection) {
		fmt.Fprintln(cmd.ErrOrStderr(), app.Theme.Subtle.Render("Nothing selected."))
		return nil
	}
	if err != nil {
		return err
	}

	if pickCopy {
		fmt.Fprintln(cmd.ErrOrStderr(), app.Theme.SuccessStyle.Render(
			fmt.Sprintf("%s %d page(s) copied to clipboard", styles.IconCheck, len(selection.Items))))
	}
	return nil
}
