// Package workout holds a user's planner state: the intake form, the generated
// plan, the coach transcript, the completion log, calendar settings and the
// lift tracker. Mutation methods are the only write path; each one records
// which slots it touched so the caller persists exactly those.
package workout

import (
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"workoutplanner/internal/codec"
	"workoutplanner/internal/model"
	"workoutplanner/internal/schedule"
	"workoutplanner/internal/units"
)

type State struct {
	Form       model.FormData
	Plan       *model.WorkoutPlan
	Chat       []model.ChatMessage
	WorkoutLog model.WorkoutLog
	Calendar   model.CalendarSettings
	Lifts      model.LiftsTrackerData

	changed map[Slot]bool
}

func New() *State {
	return &State{
		Form:       model.DefaultForm(),
		Chat:       []model.ChatMessage{},
		WorkoutLog: model.WorkoutLog{},
		Calendar:   model.DefaultCalendar(),
		Lifts:      model.DefaultLifts(),
		changed:    map[Slot]bool{},
	}
}

// Load rebuilds state from stored blobs. A slot that is missing or fails to
// decode is treated as absent and keeps its default.
func Load(blobs map[Slot][]byte, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := New()

	formLoaded := false
	if raw, ok := blobs[SlotForm]; ok {
		form := model.DefaultForm()
		if err := codec.DecodeInto(raw, &form); err != nil {
			logger.Warn("discarding stored slot", "slot", SlotForm, "error", err)
		} else {
			form.FillDefaults()
			s.Form = form
			formLoaded = true
		}
	}

	liftsLoaded := false
	if raw, ok := blobs[SlotLifts]; ok {
		if lifts, err := decodeLifts(raw); err != nil {
			logger.Warn("discarding stored slot", "slot", SlotLifts, "error", err)
		} else {
			s.Lifts = lifts
			liftsLoaded = true
		}
	}
	if !liftsLoaded && formLoaded {
		for _, k := range model.LiftKeys {
			if v, ok := s.Form.Strength[k]; ok {
				s.Lifts.Current[k] = v
			}
		}
	}

	if raw, ok := blobs[SlotPlan]; ok {
		plan, err := codec.Decode[*model.WorkoutPlan](raw)
		if err != nil {
			logger.Warn("discarding stored slot", "slot", SlotPlan, "error", err)
		} else if plan != nil {
			s.Plan = plan
		}
	}

	if raw, ok := blobs[SlotChat]; ok {
		chat, err := codec.Decode[[]model.ChatMessage](raw)
		if err != nil {
			logger.Warn("discarding stored slot", "slot", SlotChat, "error", err)
		} else if chat != nil {
			s.Chat = chat
		}
	}

	if raw, ok := blobs[SlotWorkoutLog]; ok {
		entries, err := codec.Decode[model.WorkoutLog](raw)
		if err != nil {
			logger.Warn("discarding stored slot", "slot", SlotWorkoutLog, "error", err)
		} else if entries != nil {
			s.WorkoutLog = entries
		}
	}

	if raw, ok := blobs[SlotCalendar]; ok {
		if cal, err := decodeCalendar(raw); err != nil {
			logger.Warn("discarding stored slot", "slot", SlotCalendar, "error", err)
		} else {
			s.Calendar = cal
		}
	}

	return s
}

type storedLifts struct {
	Current json.RawMessage `json:"current"`
}

func decodeLifts(raw []byte) (model.LiftsTrackerData, error) {
	probe, err := codec.Decode[storedLifts](raw)
	if err != nil {
		return model.LiftsTrackerData{}, err
	}
	if !isObject(probe.Current) {
		return model.LiftsTrackerData{}, errMissingField("current")
	}

	lifts := model.DefaultLifts()
	if err := codec.DecodeInto(raw, &lifts); err != nil {
		return model.LiftsTrackerData{}, err
	}
	lifts.FillDefaults()
	return lifts, nil
}

type storedCalendar struct {
	TrainingWeekdays json.RawMessage `json:"trainingWeekdays"`
	DateOverrides    json.RawMessage `json:"dateOverrides"`
}

// decodeCalendar requires a trainingWeekdays array. Non-integer entries are
// dropped, and dateOverrides falls back to empty when it is not an object.
func decodeCalendar(raw []byte) (model.CalendarSettings, error) {
	probe, err := codec.Decode[storedCalendar](raw)
	if err != nil {
		return model.CalendarSettings{}, err
	}

	var values []any
	if err := json.Unmarshal(probe.TrainingWeekdays, &values); err != nil || values == nil {
		return model.CalendarSettings{}, errMissingField("trainingWeekdays")
	}
	weekdays := make([]int, 0, len(values))
	for _, v := range values {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			continue
		}
		weekdays = append(weekdays, int(f))
	}

	cal := model.CalendarSettings{
		TrainingWeekdays: schedule.NormalizeTrainingWeekdays(weekdays),
		DateOverrides:    model.DateOverrides{},
	}
	if isObject(probe.DateOverrides) {
		var overrides model.DateOverrides
		if err := json.Unmarshal(probe.DateOverrides, &overrides); err == nil {
			cal.DateOverrides = overrides
		}
	}
	return cal, nil
}

// Changes lists the slots touched since load, in write order.
func (s *State) Changes() []Change {
	out := make([]Change, 0, len(s.changed))
	for _, slot := range AllSlots {
		if del, ok := s.changed[slot]; ok {
			out = append(out, Change{Slot: slot, Delete: del})
		}
	}
	return out
}

func (s *State) Dirty() bool {
	return len(s.changed) > 0
}

// Value returns what gets encoded for slot.
func (s *State) Value(slot Slot) any {
	switch slot {
	case SlotForm:
		return s.Form
	case SlotPlan:
		return s.Plan
	case SlotChat:
		return s.Chat
	case SlotWorkoutLog:
		return s.WorkoutLog
	case SlotCalendar:
		return s.Calendar
	case SlotLifts:
		return s.Lifts
	default:
		return nil
	}
}

func (s *State) HasProfile() bool {
	return s.Form.HasProfile()
}

func (s *State) SetForm(form model.FormData) {
	form.FillDefaults()
	s.Form = form
	s.mark(SlotForm)
}

func (s *State) SetPlan(plan model.WorkoutPlan) {
	s.Plan = &plan
	s.mark(SlotPlan)
}

func (s *State) SetChat(messages []model.ChatMessage) {
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	s.Chat = messages
	s.mark(SlotChat)
}

func (s *State) AppendChat(messages ...model.ChatMessage) {
	s.Chat = append(s.Chat, messages...)
	s.mark(SlotChat)
}

func (s *State) ToggleCompleted(key string, completed bool) {
	if s.WorkoutLog == nil {
		s.WorkoutLog = model.WorkoutLog{}
	}
	s.WorkoutLog[key] = model.WorkoutLogEntry{Completed: completed}
	s.mark(SlotWorkoutLog)
}

// SetTrainingWeekdays normalizes weekdays and, when a plan exists, keeps at most
// training_days_per_week of them (the smallest ones).
func (s *State) SetTrainingWeekdays(weekdays []int) {
	norm := schedule.NormalizeTrainingWeekdays(weekdays)
	limit := 0
	if s.Plan != nil {
		limit = s.Plan.TrainingDaysPerWeek
	}
	if limit > 0 && len(norm) > limit {
		norm = norm[:limit]
	}
	s.Calendar.TrainingWeekdays = norm
	s.mark(SlotCalendar)
}

func (s *State) ResetTrainingWeekdaysToDefault(daysPerWeek int) {
	s.Calendar.TrainingWeekdays = schedule.DefaultTrainingWeekdays(daysPerWeek)
	s.mark(SlotCalendar)
}

// SetDateOverride sets or, with a nil override, removes the override for key.
// Other dates and the weekday set are untouched.
func (s *State) SetDateOverride(key string, override model.DateOverride) {
	if s.Calendar.DateOverrides == nil {
		s.Calendar.DateOverrides = model.DateOverrides{}
	}
	if override == nil {
		delete(s.Calendar.DateOverrides, key)
	} else {
		s.Calendar.DateOverrides[key] = override
	}
	s.mark(SlotCalendar)
}

func (s *State) ClearDateOverrides() {
	s.Calendar.DateOverrides = model.DateOverrides{}
	s.mark(SlotCalendar)
}

func (s *State) SetLiftCurrent(lift model.LiftKey, value string) {
	s.Lifts.Current[lift] = value
	s.mark(SlotLifts)
}

// RecordLift sets the current value and, when it parses as a non-negative
// number, appends a history sample for date.
func (s *State) RecordLift(lift model.LiftKey, value, date string) bool {
	s.SetLiftCurrent(lift, value)
	n, ok := units.ParseAmount(value)
	if !ok {
		return false
	}
	s.Lifts.History[lift] = append(s.Lifts.History[lift], model.LiftSample{Date: date, Value: n})
	return true
}

// ClearAll resets every slot to its default and schedules every stored blob
// for deletion.
func (s *State) ClearAll() {
	fresh := New()
	s.Form = fresh.Form
	s.Plan = nil
	s.Chat = fresh.Chat
	s.WorkoutLog = fresh.WorkoutLog
	s.Calendar = fresh.Calendar
	s.Lifts = fresh.Lifts
	for _, slot := range AllSlots {
		s.changed[slot] = true
	}
}

func (s *State) mark(slot Slot) {
	if s.changed == nil {
		s.changed = map[Slot]bool{}
	}
	s.changed[slot] = false
}

func isObject(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{")
}

type errMissingField string

func (e errMissingField) Error() string {
	return "missing or invalid field " + string(e)
}
