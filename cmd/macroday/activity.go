package macroday

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activity logs",
}

var (
	activityName     string
	activityCalories int
	activityDate     string
	activityTime     string
)

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an activity with calories burned",
	RunE: func(cmd *cobra.Command, args []string) error {
		performed, err := parseDateTimeOrNow(activityDate, activityTime)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			id, err := st.AddActivityLog(store.ActivityInput{
				Name:           activityName,
				CaloriesBurned: activityCalories,
				PerformedAt:    performed,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity %d\n", id)
			return nil
		})
	},
}

var (
	activityListDate string
	activityListFrom string
	activityListTo   string
	activityListN    int
)

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activity logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := store.ActivityFilter{
			Date:     activityListDate,
			FromDate: activityListFrom,
			ToDate:   activityListTo,
			Limit:    activityListN,
		}
		return withStore(func(st *store.Store) error {
			logs, err := st.ListActivityLogs(filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tACTIVITY\tBURNED")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\n",
					l.ID, l.PerformedAt.Local().Format("2006-01-02 15:04"), l.Name, l.CaloriesBurned)
			}
			return nil
		})
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("activity id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := st.DeleteActivityLog(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityAddCmd, activityListCmd, activityDeleteCmd)

	activityAddCmd.Flags().StringVar(&activityName, "name", "", "Activity name")
	activityAddCmd.Flags().IntVar(&activityCalories, "calories", 0, "Calories burned")
	activityAddCmd.Flags().StringVar(&activityDate, "date", "", "Date in YYYY-MM-DD")
	activityAddCmd.Flags().StringVar(&activityTime, "time", "", "Time in HH:MM")
	_ = activityAddCmd.MarkFlagRequired("name")
	_ = activityAddCmd.MarkFlagRequired("calories")

	activityListCmd.Flags().StringVar(&activityListDate, "date", "", "Filter by date YYYY-MM-DD")
	activityListCmd.Flags().StringVar(&activityListFrom, "from", "", "Filter from date YYYY-MM-DD")
	activityListCmd.Flags().StringVar(&activityListTo, "to", "", "Filter to date YYYY-MM-DD")
	activityListCmd.Flags().IntVar(&activityListN, "limit", 50, "Result limit")
}
