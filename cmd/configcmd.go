package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"NewsHunter/config"
)

var (
	flagInitPath  string
	flagInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteExampleConfig(flagInitPath, flagInitForce)
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite)\n", path)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created example config: %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Edit it to set your provider API keys.")
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&flagInitPath, "path", "", "target file (default ~/.newshunter/config/config.yaml)")
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
