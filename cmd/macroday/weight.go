package macroday

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/store"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Manage weight logs",
}

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightTime  string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weight measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		measured, err := parseDateTimeOrNow(weightDate, weightTime)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			id, err := st.AddWeightLog(store.WeightInput{
				Weight:     weightValue,
				Unit:       weightUnit,
				MeasuredAt: measured,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added weight log %d\n", id)
			return nil
		})
	},
}

var (
	weightListFrom string
	weightListTo   string
	weightListN    int
)

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight logs, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := store.WeightFilter{
			FromDate: weightListFrom,
			ToDate:   weightListTo,
			Limit:    weightListN,
		}
		return withStore(func(st *store.Store) error {
			logs, err := st.ListWeightLogs(filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tKG")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.1f\n",
					l.ID, l.MeasuredAt.Local().Format("2006-01-02 15:04"), l.WeightKG)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := st.DeleteWeightLog(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight log %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDeleteCmd)

	weightAddCmd.Flags().Float64Var(&weightValue, "value", 0, "Weight value")
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg or lb")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date in YYYY-MM-DD")
	weightAddCmd.Flags().StringVar(&weightTime, "time", "", "Time in HH:MM")
	_ = weightAddCmd.MarkFlagRequired("value")

	weightListCmd.Flags().StringVar(&weightListFrom, "from", "", "Filter from date YYYY-MM-DD")
	weightListCmd.Flags().StringVar(&weightListTo, "to", "", "Filter to date YYYY-MM-DD")
	weightListCmd.Flags().IntVar(&weightListN, "limit", 0, "Result limit")
}
