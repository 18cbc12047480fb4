package macroday

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage meal and food logs",
}

var (
	logMeal     string
	logName     string
	logCalories int
	logProtein  float64
	logCarbs    float64
	logFat      float64
	logEntryID  int64
	logDate     string
	logTime     string
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food, either as a new meal entry or appended to an existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		food := store.FoodInput{
			Name:     logName,
			Calories: logCalories,
			ProteinG: logProtein,
			CarbsG:   logCarbs,
			FatG:     logFat,
		}
		return withStore(func(st *store.Store) error {
			if logEntryID > 0 {
				if cmd.Flags().Changed("meal") || logDate != "" || logTime != "" {
					return fmt.Errorf("cannot combine --entry with --meal/--date/--time")
				}
				foodID, err := st.AddFoodToEntry(logEntryID, food)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added food %d to entry %d\n", foodID, logEntryID)
				return nil
			}

			meal := model.Meal(strings.ToLower(strings.TrimSpace(logMeal)))
			if !meal.Valid() {
				return fmt.Errorf("invalid --meal %q (use breakfast, lunch, dinner, or snack)", logMeal)
			}
			logged, err := parseDateTimeOrNow(logDate, logTime)
			if err != nil {
				return err
			}
			id, err := st.AddFoodEntry(store.FoodEntryInput{
				Meal:     meal,
				LoggedAt: logged,
				Foods:    []store.FoodInput{food},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s entry %d\n", meal, id)
			return nil
		})
	},
}

var (
	logListDate string
	logListFrom string
	logListTo   string
	logListMeal string
	logListN    int
)

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := store.FoodEntryFilter{
			Date:     logListDate,
			FromDate: logListFrom,
			ToDate:   logListTo,
			Meal:     model.Meal(strings.ToLower(strings.TrimSpace(logListMeal))),
			Limit:    logListN,
		}
		return withStore(func(st *store.Store) error {
			entries, err := st.ListFoodEntries(filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ENTRY\tDATE\tMEAL\tFOOD\tKCAL\tP\tC\tF")
			for _, e := range entries {
				for _, f := range e.Foods {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s (%d)\t%d\t%.1f\t%.1f\t%.1f\n",
						e.ID, e.LoggedAt.Local().Format("2006-01-02 15:04"), e.Meal,
						f.Name, f.ID, f.Calories, f.ProteinG, f.CarbsG, f.FatG)
				}
			}
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a meal entry and all its foods",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := st.DeleteFoodEntry(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

var logFoodDeleteCmd = &cobra.Command{
	Use:   "food-delete <food-id>",
	Short: "Delete a single food from its entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store) error {
			if err := st.DeleteFood(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logDeleteCmd, logFoodDeleteCmd)

	logAddCmd.Flags().StringVar(&logMeal, "meal", "", "Meal: breakfast, lunch, dinner, or snack")
	logAddCmd.Flags().StringVar(&logName, "name", "", "Food name")
	logAddCmd.Flags().IntVar(&logCalories, "calories", 0, "Calories")
	logAddCmd.Flags().Float64Var(&logProtein, "protein", 0, "Protein grams")
	logAddCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Carbs grams")
	logAddCmd.Flags().Float64Var(&logFat, "fat", 0, "Fat grams")
	logAddCmd.Flags().Int64Var(&logEntryID, "entry", 0, "Append to an existing entry instead of creating one")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date in YYYY-MM-DD")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "Time in HH:MM")
	_ = logAddCmd.MarkFlagRequired("name")

	logListCmd.Flags().StringVar(&logListDate, "date", "", "Filter by date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&logListFrom, "from", "", "Filter from date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&logListTo, "to", "", "Filter to date YYYY-MM-DD")
	logListCmd.Flags().StringVar(&logListMeal, "meal", "", "Filter by meal")
	logListCmd.Flags().IntVar(&logListN, "limit", 50, "Result limit")
}
