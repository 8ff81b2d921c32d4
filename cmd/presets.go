package cmd

import (
	"fmt"

	"bundlescan/configs"
	"bundlescan/pkg/utils"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in pattern tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		tableData := pterm.TableData{{"Preset", "Entries", "Title"}}
		for _, name := range configs.Names() {
			data, err := configs.Load(name)
			if err != nil {
				return err
			}
			cfg, err := utils.ParseConfig(data)
			if err != nil {
				return fmt.Errorf("preset %s: %w", name, err)
			}
			tableData = append(tableData, []string{name, fmt.Sprintf("%d", len(cfg.Patterns)), cfg.Title})
		}

		return pterm.DefaultTable.WithWriter(cmd.OutOrStdout()).WithHasHeader().WithData(tableData).Render()
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <preset>",
	Short: "Print a preset as YAML, to copy and extend with --config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := configs.Load(args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	presetsCmd.AddCommand(presetsShowCmd)
	rootCmd.AddCommand(presetsCmd)
}
