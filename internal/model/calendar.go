package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type OverrideKind string

const (
	OverrideRest    OverrideKind = "rest"
	OverrideWorkout OverrideKind = "workout"
	OverrideCustom  OverrideKind = "custom"
)

var ErrUnknownOverrideKind = errors.New("unknown override kind")

// DateOverride is a one-off exception for a single calendar date. It is one of
// RestOverride, WorkoutOverride or CustomOverride.
type DateOverride interface {
	Kind() OverrideKind
	isDateOverride()
}

type RestOverride struct{}

type WorkoutOverride struct {
	WorkoutIndex int
}

// CustomOverride carries its own day and never reads the plan.
type CustomOverride struct {
	Day WorkoutPlanDay
}

func (RestOverride) Kind() OverrideKind    { return OverrideRest }
func (WorkoutOverride) Kind() OverrideKind { return OverrideWorkout }
func (CustomOverride) Kind() OverrideKind  { return OverrideCustom }

func (RestOverride) isDateOverride()    {}
func (WorkoutOverride) isDateOverride() {}
func (CustomOverride) isDateOverride()  {}

func (o RestOverride) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind OverrideKind `json:"kind"`
	}{Kind: OverrideRest})
}

func (o WorkoutOverride) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind         OverrideKind `json:"kind"`
		WorkoutIndex int          `json:"workout_index"`
	}{Kind: OverrideWorkout, WorkoutIndex: o.WorkoutIndex})
}

func (o CustomOverride) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind OverrideKind   `json:"kind"`
		Day  WorkoutPlanDay `json:"day"`
	}{Kind: OverrideCustom, Day: o.Day})
}

type overrideEnvelope struct {
	Kind         OverrideKind    `json:"kind"`
	WorkoutIndex *int            `json:"workout_index"`
	Day          *WorkoutPlanDay `json:"day"`
}

// DecodeOverride parses the tagged wire form of a single override.
func DecodeOverride(data []byte) (DateOverride, error) {
	var env overrideEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode override: %w", err)
	}

	switch env.Kind {
	case OverrideRest:
		return RestOverride{}, nil
	case OverrideWorkout:
		idx := 0
		if env.WorkoutIndex != nil {
			idx = *env.WorkoutIndex
		}
		return WorkoutOverride{WorkoutIndex: idx}, nil
	case OverrideCustom:
		if env.Day == nil {
			return nil, errors.New("decode override: custom override without day")
		}
		return CustomOverride{Day: *env.Day}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOverrideKind, env.Kind)
	}
}

// DateOverrides is keyed by YYYY-MM-DD. Entries that fail to decode are dropped
// so one bad entry does not discard the rest of the calendar.
type DateOverrides map[string]DateOverride

func (o *DateOverrides) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(DateOverrides, len(raw))
	for key, value := range raw {
		if isJSONNull(value) {
			continue
		}
		override, err := DecodeOverride(value)
		if err != nil {
			continue
		}
		out[key] = override
	}
	*o = out
	return nil
}

// OverrideUpdates is a patch of date overrides: a nil value means "remove the
// override for that date".
type OverrideUpdates map[string]DateOverride

func (u *OverrideUpdates) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(OverrideUpdates, len(raw))
	for key, value := range raw {
		if isJSONNull(value) {
			out[key] = nil
			continue
		}
		override, err := DecodeOverride(value)
		if err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}
		out[key] = override
	}
	*u = out
	return nil
}

type CalendarSettings struct {
	// 0=Sun ... 6=Sat, sorted and deduplicated.
	TrainingWeekdays []int         `json:"trainingWeekdays"`
	DateOverrides    DateOverrides `json:"dateOverrides"`
}

func DefaultCalendar() CalendarSettings {
	return CalendarSettings{
		TrainingWeekdays: []int{1, 3, 5},
		DateOverrides:    DateOverrides{},
	}
}

func isJSONNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
