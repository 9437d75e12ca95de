package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"workoutplanner/internal/dates"
	"workoutplanner/internal/schedule"
	"workoutplanner/internal/service"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the planned and recurring workout for a date",
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().String("date", "", "Date as YYYY-MM-DD (defaults to today)")
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
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

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = dates.Key(time.Now())
	}

	view, apiErr := a.workouts.Day(ctx, userID, date)
	if apiErr != nil {
		return apiErr
	}
	printDay(cmd.OutOrStdout(), view)
	return nil
}

func printDay(w io.Writer, view *service.DayView) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", view.Date, view.Weekday)))

	override := "none"
	if view.Override != nil {
		override = string(view.Override.Kind())
	}
	fmt.Fprintln(w, labelStyle.Render("Override:")+override)
	fmt.Fprintln(w, labelStyle.Render("Completed:")+yesNo(view.Completed))

	printPlanned(w, "Planned:", view.Planned)
	printPlanned(w, "Recurring:", view.Recurring)
}

func printPlanned(w io.Writer, label string, planned *schedule.Planned) {
	if planned == nil {
		fmt.Fprintln(w, labelStyle.Render(label)+"rest")
		return
	}

	heading := planned.Day.DayLabel
	if planned.Pos == schedule.CustomPos {
		heading += " (custom)"
	}
	if planned.Day.Focus != "" {
		heading += " · " + planned.Day.Focus
	}
	fmt.Fprintln(w, labelStyle.Render(label)+workoutStyle.Render(heading))
	for _, ex := range planned.Day.Exercises {
		fmt.Fprintf(w, "  - %s: %d x %s, rest %ds\n", ex.Name, ex.Sets, ex.Reps, ex.RestSeconds)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
