package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"workoutplanner/internal/dates"
	"workoutplanner/internal/service"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal", "month"},
	Short:   "Render a month of scheduled workouts",
	RunE:    runCalendar,
}

func init() {
	calendarCmd.Flags().String("month", "", "Month as YYYY-MM (defaults to the current month)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
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

	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = time.Now().Format(dates.MonthLayout)
	}

	view, apiErr := a.workouts.Month(ctx, userID, month)
	if apiErr != nil {
		return apiErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderMonth(view))
	return nil
}

func renderMonth(view *service.MonthView) string {
	var b strings.Builder

	title := view.Month
	if anchor, err := dates.ParseMonth(view.Month); err == nil {
		title = anchor.Format("January 2006")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	headers := make([]string, 0, len(dates.Weekdays))
	for _, name := range dates.Weekdays {
		headers = append(headers, headerCellStyle.Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	for week := 0; week*7 < len(view.Days); week++ {
		end := min(week*7+7, len(view.Days))
		cells := make([]string, 0, 7)
		for _, day := range view.Days[week*7 : end] {
			cells = append(cells, renderCell(day))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("%s workout  %s done  %s override",
		workoutStyle.Render("■"), completedStyle.Render("✓"), overrideStyle.Render("*")))
	return b.String()
}

func renderCell(day service.DayView) string {
	dayNum := strings.TrimLeft(day.Date[len(day.Date)-2:], "0")
	if day.Override != nil {
		dayNum += overrideStyle.Render("*")
	}

	lines := []string{dayNum, "", ""}
	if day.Planned != nil {
		lines[1] = workoutStyle.Render(truncate(day.Planned.Day.DayLabel, cellWidth-2))
	}
	if day.Completed {
		lines[2] = completedStyle.Render("✓")
	}

	style := cellStyle
	if !day.InMonth {
		style = outsideCellStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
