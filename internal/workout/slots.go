package workout

// Slot names one independently persisted piece of a user's state.
type Slot string

const (
	SlotForm       Slot = "form"
	SlotPlan       Slot = "plan"
	SlotChat       Slot = "chat"
	SlotWorkoutLog Slot = "workout_log"
	SlotCalendar   Slot = "calendar"
	SlotLifts      Slot = "lifts"
)

// AllSlots is also the order in which changes are written.
var AllSlots = []Slot{SlotForm, SlotPlan, SlotChat, SlotWorkoutLog, SlotCalendar, SlotLifts}

func (s Slot) Valid() bool {
	for _, slot := range AllSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// Change is a pending write for one slot. Delete removes the stored blob
// instead of writing the current value.
type Change struct {
	Slot   Slot
	Delete bool
}
