package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"workoutplanner/internal/model"
	"workoutplanner/internal/units"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the intake profile and current lifts",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().Bool("imperial", false, "Show height in ft/in and weights in lb")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	userID, err := a.userID(ctx, cmd)
	if err != nil {
		return err
	}

	state, apiErr := a.workouts.GetState(ctx, userID)
	if apiErr != nil {
		return apiErr
	}

	imperial, _ := cmd.Flags().GetBool("imperial")
	printProfile(cmd.OutOrStdout(), state.Form, state.Lifts, imperial)
	return nil
}

func printProfile(w io.Writer, form model.FormData, lifts model.LiftsTrackerData, imperial bool) {
	fmt.Fprintln(w, titleStyle.Render("Profile"))
	fmt.Fprintln(w, labelStyle.Render("Height:")+formatHeight(form.HeightCm, imperial))
	fmt.Fprintln(w, labelStyle.Render("Weight:")+formatWeight(form.WeightKg, imperial))
	fmt.Fprintln(w, labelStyle.Render("Gender:")+orDash(form.Gender))
	fmt.Fprintln(w, labelStyle.Render("Goal:")+orDash(form.FitnessGoal))
	fmt.Fprintln(w, labelStyle.Render("Days per week:")+orDash(form.TrainingDaysPerWeek))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Lifts"))
	for _, lift := range model.LiftKeys {
		line := formatWeight(lifts.Current[lift], imperial)
		if n := len(lifts.History[lift]); n > 0 {
			line += fmt.Sprintf("  (%d logged)", n)
		}
		fmt.Fprintln(w, labelStyle.Render(string(lift)+":")+line)
	}
}

// formatHeight renders a stored centimetre value.
func formatHeight(raw string, imperial bool) string {
	cm, ok := units.ParseAmount(raw)
	if !ok {
		return "-"
	}
	if imperial {
		feet, inches := units.FeetInches(cm)
		return fmt.Sprintf("%d'%d\"", feet, inches)
	}
	return formatNumber(units.Round1(cm)) + " cm"
}

// formatWeight renders a stored kilogram value.
func formatWeight(raw string, imperial bool) string {
	kg, ok := units.ParseAmount(raw)
	if !ok {
		return "-"
	}
	if imperial {
		return formatNumber(units.Round1(units.KgToLb(kg))) + " lb"
	}
	return formatNumber(units.Round1(kg)) + " kg"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
