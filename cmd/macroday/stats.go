package macroday

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/macro"
	"github.com/macroday/macroday/internal/stats"
	"github.com/macroday/macroday/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View daily, weekly, activity, and weight statistics",
}

var statsJSON bool

func loadComputed(st *store.Store) (macro.ComputedProfile, error) {
	p, err := st.Profile()
	if err != nil {
		return macro.ComputedProfile{}, err
	}
	if p == nil {
		return macro.ComputedProfile{}, fmt.Errorf("profile not set (run: macroday profile set)")
	}
	return macro.Compute(*p)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var statsDayDate string

var statsDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Daily calorie and macro statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := startOfDay(time.Now())
		if statsDayDate != "" {
			parsed, err := parseLocalDay("--date", statsDayDate)
			if err != nil {
				return err
			}
			day = parsed
		}
		return withStore(func(st *store.Store) error {
			cp, err := loadComputed(st)
			if err != nil {
				return err
			}
			addBurned, err := st.AddBurnedToDailyTotal()
			if err != nil {
				return err
			}
			ds, err := stats.Day(st, cp, day, day.AddDate(0, 0, 1), addBurned)
			if err != nil {
				return err
			}
			if statsJSON {
				return writeJSON(cmd, ds)
			}
			printDay(cmd, ds)
			return nil
		})
	},
}

func printDay(cmd *cobra.Command, ds stats.LoggingStats) {
	fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", ds.Day.Format("2006-01-02"))
	fmt.Fprintf(cmd.OutOrStdout(), "Target: %d kcal\n", ds.TargetCalories)
	fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %d kcal\n", ds.CaloriesConsumed)
	fmt.Fprintf(cmd.OutOrStdout(), "Burned: %d kcal\n", ds.CaloriesBurned)
	fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal\n", ds.CaloriesRemaining)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %.1fg/%dg | C %.1fg/%dg | F %.1fg/%dg\n",
		ds.ProteinG, ds.TargetProteinG, ds.CarbsG, ds.TargetCarbsG, ds.FatG, ds.TargetFatG)
	fmt.Fprintf(cmd.OutOrStdout(), "Meals: breakfast %d | lunch %d | dinner %d | snack %d\n",
		ds.Breakfast.Calories, ds.Lunch.Calories, ds.Dinner.Calories, ds.Snack.Calories)
	if !ds.HasData {
		fmt.Fprintln(cmd.OutOrStdout(), "No logs for this day")
	}
}

var statsWeekStart string

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Weekly calorie statistics starting Monday",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := mondayOf(time.Now())
		if statsWeekStart != "" {
			parsed, err := parseLocalDay("--start", statsWeekStart)
			if err != nil {
				return err
			}
			start = parsed
		}
		return withStore(func(st *store.Store) error {
			cp, err := loadComputed(st)
			if err != nil {
				return err
			}
			addBurned, err := st.AddBurnedToDailyTotal()
			if err != nil {
				return err
			}
			ws, err := stats.Week(st, cp, start, start.AddDate(0, 0, 7), addBurned)
			if err != nil {
				return err
			}
			if statsJSON {
				return writeJSON(cmd, ws)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Week of %s\n", start.Format("2006-01-02"))
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tCONSUMED\tBURNED\tREMAINING")
			for _, d := range ws.Days {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%d\n",
					d.Day.Format("2006-01-02"), d.CaloriesConsumed, d.CaloriesBurned, d.CaloriesRemaining)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total consumed: %d kcal over %d day(s) with data\n",
				ws.TotalCaloriesConsumed, ws.DaysWithData)
			fmt.Fprintf(cmd.OutOrStdout(), "Average consumed: %.1f kcal/day\n", ws.AverageCaloriesConsumedPerDay)
			fmt.Fprintf(cmd.OutOrStdout(), "Average deficit: %.1f kcal/day\n", ws.AverageDeficitPerDay)
			return nil
		})
	},
}

var (
	statsActivityFrom string
	statsActivityTo   string
)

var statsActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Calories burned per day over a date window",
	RunE: func(cmd *cobra.Command, args []string) error {
		from := startOfDay(time.Now()).AddDate(0, 0, -6)
		to := startOfDay(time.Now())
		if statsActivityFrom != "" {
			parsed, err := parseLocalDay("--from", statsActivityFrom)
			if err != nil {
				return err
			}
			from = parsed
		}
		if statsActivityTo != "" {
			parsed, err := parseLocalDay("--to", statsActivityTo)
			if err != nil {
				return err
			}
			to = parsed
		}
		return withStore(func(st *store.Store) error {
			as, err := stats.ActivityPerDay(st, from, to.AddDate(0, 0, 1))
			if err != nil {
				return err
			}
			if statsJSON {
				return writeJSON(cmd, as)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tBURNED\tLOGS")
			for _, d := range as.Days {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\n",
					d.Day.Format("2006-01-02"), d.CaloriesBurned, len(d.Logs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total burned: %d kcal\n", as.TotalCaloriesBurned)
			fmt.Fprintf(cmd.OutOrStdout(), "Average: %.1f kcal/day over %d active day(s)\n",
				as.AverageCaloriesBurnedPerDay, as.DaysWithData)
			return nil
		})
	},
}

var (
	statsWeightFrom string
	statsWeightTo   string
)

var statsWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Weight trend in the profile's display units",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			p, err := st.Profile()
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("profile not set (run: macroday profile set)")
			}
			logs, err := st.ListWeightLogs(store.WeightFilter{
				FromDate: statsWeightFrom,
				ToDate:   statsWeightTo,
			})
			if err != nil {
				return err
			}
			units, err := st.DisplayUnits(p.Units)
			if err != nil {
				return err
			}
			ws := stats.WeightSeries(logs, units)
			if statsJSON {
				return writeJSON(cmd, ws)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT")
			for _, pt := range ws.Points {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f %s\n",
					pt.At.Local().Format("2006-01-02"), pt.Weight, ws.Unit)
			}
			if len(ws.Points) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Min: %.1f %s | Max: %.1f %s\n",
					ws.MinWeight, ws.Unit, ws.MaxWeight, ws.Unit)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsDayCmd, statsWeekCmd, statsActivityCmd, statsWeightCmd)

	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "Output JSON")
	statsDayCmd.Flags().StringVar(&statsDayDate, "date", "", "Date YYYY-MM-DD (default today)")
	statsWeekCmd.Flags().StringVar(&statsWeekStart, "start", "", "Week start YYYY-MM-DD (default this Monday)")
	statsActivityCmd.Flags().StringVar(&statsActivityFrom, "from", "", "Window start YYYY-MM-DD (default 6 days ago)")
	statsActivityCmd.Flags().StringVar(&statsActivityTo, "to", "", "Window end YYYY-MM-DD inclusive (default today)")
	statsWeightCmd.Flags().StringVar(&statsWeightFrom, "from", "", "Filter from date YYYY-MM-DD")
	statsWeightCmd.Flags().StringVar(&statsWeightTo, "to", "", "Filter to date YYYY-MM-DD")
}
