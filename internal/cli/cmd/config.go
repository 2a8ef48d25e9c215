package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ctxtree/internal/cli/styles"
	"github.com/bnema/ctxtree/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Inspect the effective configuration and its JSON schema.`,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	Long:  `Print a JSON schema describing config.toml, usable by editors for completion and validation.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after defaults, file and environment overrides are applied.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	data, err := config.EncodeTOML(app.ConfigManager.Get())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		app.Theme.Highlight.Render(styles.IconConfig),
		app.ConfigManager.ConfigFilePath())
	return nil
}
