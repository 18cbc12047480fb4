package macroday

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage macroday local settings",
}

var (
	cfgAddBurned string
	cfgUnits     string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set app settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			updates := 0
			if cmd.Flags().Changed("add-burned") {
				if err := st.SetSetting(store.SettingAddBurnedToDailyTotal, cfgAddBurned); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("units") {
				u := strings.ToLower(strings.TrimSpace(cfgUnits))
				if u != string(model.UnitsMetric) && u != string(model.UnitsImperial) {
					return fmt.Errorf("invalid --units %q (use metric or imperial)", cfgUnits)
				}
				if err := st.SetSetting(store.SettingUnits, u); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d setting(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a single setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			value, ok, err := st.GetSetting(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			cfg, err := st.Settings()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)

	configSetCmd.Flags().StringVar(&cfgAddBurned, "add-burned", "", "Credit burned calories back into the daily total (true/false)")
	configSetCmd.Flags().StringVar(&cfgUnits, "units", "", "Default display units: metric or imperial")
}
