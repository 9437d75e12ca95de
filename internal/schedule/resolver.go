// Package schedule resolves which plan day, if any, falls on a calendar date.
package schedule

import (
	"sort"
	"time"

	"workoutplanner/internal/dates"
	"workoutplanner/internal/model"
)

// CustomPos marks a planned day that came from a custom override and is not an
// index into the plan's schedule.
const CustomPos = -1

const fallbackDaysPerWeek = 3

type Planned struct {
	Day model.WorkoutPlanDay `json:"day"`
	Pos int                  `json:"pos"`
}

// DefaultTrainingWeekdays spreads n sessions across the week (0=Sun ... 6=Sat).
// Unknown counts get the three-day default.
func DefaultTrainingWeekdays(n int) []int {
	switch n {
	case 2:
		return []int{2, 5}
	case 3:
		return []int{1, 3, 5}
	case 4:
		return []int{1, 2, 4, 5}
	case 5:
		return []int{1, 2, 3, 5, 6}
	case 6:
		return []int{1, 2, 3, 4, 5, 6}
	default:
		return []int{1, 3, 5}
	}
}

// NormalizeTrainingWeekdays dedupes, drops values outside [0,6] and sorts.
// The result is never nil.
func NormalizeTrainingWeekdays(weekdays []int) []int {
	seen := make(map[int]struct{}, len(weekdays))
	out := make([]int, 0, len(weekdays))
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// TrainingWeekdaysFromSettings returns the explicit weekday set when one is
// configured, otherwise the default spread for the plan's day count.
func TrainingWeekdaysFromSettings(plan *model.WorkoutPlan, cal *model.CalendarSettings) []int {
	if cal != nil {
		if desired := NormalizeTrainingWeekdays(cal.TrainingWeekdays); len(desired) > 0 {
			return desired
		}
	}

	days := 0
	if plan != nil {
		days = plan.TrainingDaysPerWeek
		if days == 0 {
			days = len(plan.RecommendedSchedule)
		}
	}
	if days == 0 {
		days = fallbackDaysPerWeek
	}
	return DefaultTrainingWeekdays(days)
}

// PlannedWorkoutForDate applies the date's override when there is one and the
// recurring weekday pattern otherwise.
func PlannedWorkoutForDate(plan *model.WorkoutPlan, cal *model.CalendarSettings, d time.Time) (Planned, bool) {
	if plan == nil || len(plan.RecommendedSchedule) == 0 {
		return Planned{}, false
	}

	if cal != nil {
		if override, ok := cal.DateOverrides[dates.Key(d)]; ok && override != nil {
			return resolveOverride(plan.RecommendedSchedule, override)
		}
	}

	return recurring(plan, cal, d)
}

// RecurringPlannedWorkoutForDate ignores overrides entirely; it answers what
// the date would hold without a one-off change.
func RecurringPlannedWorkoutForDate(plan *model.WorkoutPlan, cal *model.CalendarSettings, d time.Time) (Planned, bool) {
	if plan == nil || len(plan.RecommendedSchedule) == 0 {
		return Planned{}, false
	}
	return recurring(plan, cal, d)
}

func resolveOverride(schedule []model.WorkoutPlanDay, override model.DateOverride) (Planned, bool) {
	switch o := override.(type) {
	case model.RestOverride:
		return Planned{}, false
	case model.WorkoutOverride:
		idx := clamp(o.WorkoutIndex, 0, len(schedule)-1)
		return Planned{Day: schedule[idx], Pos: idx}, true
	case model.CustomOverride:
		return Planned{Day: o.Day, Pos: CustomPos}, true
	default:
		return Planned{}, false
	}
}

func recurring(plan *model.WorkoutPlan, cal *model.CalendarSettings, d time.Time) (Planned, bool) {
	weekdays := TrainingWeekdaysFromSettings(plan, cal)
	pos := indexOf(weekdays, int(d.Weekday()))
	if pos == -1 {
		return Planned{}, false
	}
	schedule := plan.RecommendedSchedule
	return Planned{Day: schedule[pos%len(schedule)], Pos: pos}, true
}

func indexOf(values []int, target int) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
