package macroday

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macroday/macroday/internal/macro"
	"github.com/macroday/macroday/internal/model"
	"github.com/macroday/macroday/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the coaching profile and macro targets",
}

var (
	profileSex          string
	profileAge          int
	profileHeight       float64
	profileWeight       float64
	profileGoal         string
	profileActivity     string
	profileExercise     string
	profilePreference   string
	profileTargetWeight float64
	profileProteinPct   int
	profileCarbsPct     int
	profileFatPct       int
	profileCalories     int
	profileUnits        string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := store.ProfileInput{
			Sex:           model.Sex(profileSex),
			Age:           profileAge,
			HeightCM:      profileHeight,
			WeightKG:      profileWeight,
			Goal:          model.Goal(profileGoal),
			ActivityLevel: model.ActivityLevel(profileActivity),
			ExerciseLevel: model.ExerciseLevel(profileExercise),
			Preference:    model.DietaryPreference(profilePreference),
			Units:         model.UnitSystem(profileUnits),
		}
		if cmd.Flags().Changed("target-weight") {
			in.TargetWeightKG = &profileTargetWeight
		}
		if cmd.Flags().Changed("protein-pct") {
			in.ProteinPctOverride = &profileProteinPct
		}
		if cmd.Flags().Changed("carbs-pct") {
			in.CarbsPctOverride = &profileCarbsPct
		}
		if cmd.Flags().Changed("fat-pct") {
			in.FatPctOverride = &profileFatPct
		}
		if cmd.Flags().Changed("calories") {
			in.CalorieOverride = &profileCalories
		}
		return withStore(func(st *store.Store) error {
			if err := st.SaveProfile(in); err != nil {
				return err
			}
			p, err := st.Profile()
			if err != nil {
				return err
			}
			cp, err := macro.Compute(*p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
			printComputed(cmd, cp)
			return nil
		})
	},
}

var profileShowJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and its computed targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			p, err := st.Profile()
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("profile not set (run: macroday profile set)")
			}
			cp, err := macro.Compute(*p)
			if err != nil {
				return err
			}
			if profileShowJSON {
				out := map[string]any{"profile": p, "macros": cp}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sex: %s\n", p.Sex)
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.Age)
			fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm\n", p.HeightCM)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", p.WeightKG)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", p.Goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Activity: %s\n", p.ActivityLevel)
			if p.ExerciseLevel != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exercise level: %s\n", p.ExerciseLevel)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preference: %s\n", p.Preference)
			if p.TargetWeightKG != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Target weight: %.1f kg\n", *p.TargetWeightKG)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Units: %s\n", p.Units)
			printComputed(cmd, cp)
			return nil
		})
	},
}

func printComputed(cmd *cobra.Command, cp macro.ComputedProfile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Daily target: %d kcal\n", cp.TargetCalories)
	fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %dg (%d%%) | C %dg (%d%%) | F %dg (%d%%)\n",
		cp.ProteinG, cp.ProteinPct, cp.CarbsG, cp.CarbsPct, cp.FatG, cp.FatPct)
	if cp.CalorieOverridden {
		fmt.Fprintln(cmd.OutOrStdout(), "Calorie target is manually overridden")
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileSex, "sex", "", "Sex: male or female")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Goal: lose_weight, build_muscle, or maintain")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary, light, moderate, active, or very_active")
	profileSetCmd.Flags().StringVar(&profileExercise, "exercise-level", "", "Exercise level for build_muscle: beginner, intermediate, or advanced")
	profileSetCmd.Flags().StringVar(&profilePreference, "preference", "", "Dietary preference: balanced, high_protein, low_carb, or keto")
	profileSetCmd.Flags().Float64Var(&profileTargetWeight, "target-weight", 0, "Target weight in kg (lose_weight only)")
	profileSetCmd.Flags().IntVar(&profileProteinPct, "protein-pct", 0, "Protein percent override")
	profileSetCmd.Flags().IntVar(&profileCarbsPct, "carbs-pct", 0, "Carbs percent override")
	profileSetCmd.Flags().IntVar(&profileFatPct, "fat-pct", 0, "Fat percent override")
	profileSetCmd.Flags().IntVar(&profileCalories, "calories", 0, "Daily calorie override")
	profileSetCmd.Flags().StringVar(&profileUnits, "units", "", "Display units: metric or imperial")
	_ = profileSetCmd.MarkFlagRequired("sex")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("goal")
	_ = profileSetCmd.MarkFlagRequired("activity")

	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output JSON")
}
