package model

type LiftKey string

const (
	LiftBench         LiftKey = "bench"
	LiftSquat         LiftKey = "squat"
	LiftDeadlift      LiftKey = "deadlift"
	LiftOverheadPress LiftKey = "overheadPress"
	LiftLatPulldown   LiftKey = "latPulldown"
	LiftLegPress      LiftKey = "legPress"
)

// LiftKeys is the fixed lift set in display order.
var LiftKeys = []LiftKey{
	LiftBench,
	LiftSquat,
	LiftDeadlift,
	LiftOverheadPress,
	LiftLatPulldown,
	LiftLegPress,
}

func IsLiftKey(key string) bool {
	for _, k := range LiftKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	GoalLoseWeight       = "lose-weight"
	GoalBuildMuscle      = "build-muscle"
	GoalImproveEndurance = "improve-endurance"
	GenderFemale         = "female"
	GenderMale           = "male"
	GenderNonbinary      = "nonbinary"
	GenderPreferNotToSay = "prefer-not-to-say"
)

type StrengthData map[LiftKey]string

type StrengthNeverTried map[LiftKey]bool

type FormData struct {
	HeightCm            string             `json:"heightCm"`
	WeightKg            string             `json:"weightKg"`
	Units               string             `json:"units"`
	Gender              string             `json:"gender"`
	FitnessGoal         string             `json:"fitnessGoal"`
	TrainingDaysPerWeek string             `json:"trainingDaysPerWeek"`
	StrengthSkipAll     bool               `json:"strengthSkipAll"`
	Strength            StrengthData       `json:"strength"`
	StrengthNeverTried  StrengthNeverTried `json:"strengthNeverTried"`
}

func DefaultForm() FormData {
	return FormData{
		Units:              UnitsMetric,
		Strength:           blankStrength(),
		StrengthNeverTried: blankNeverTried(),
	}
}

// HasProfile reports whether onboarding basics were filled at least once.
func (f FormData) HasProfile() bool {
	return f.FitnessGoal != "" && f.TrainingDaysPerWeek != ""
}

// FillDefaults restores any per-lift entry or unit preference that a partial
// document left empty.
func (f *FormData) FillDefaults() {
	if f.Units == "" {
		f.Units = UnitsMetric
	}
	if f.Strength == nil {
		f.Strength = StrengthData{}
	}
	if f.StrengthNeverTried == nil {
		f.StrengthNeverTried = StrengthNeverTried{}
	}
	for _, k := range LiftKeys {
		if _, ok := f.Strength[k]; !ok {
			f.Strength[k] = ""
		}
		if _, ok := f.StrengthNeverTried[k]; !ok {
			f.StrengthNeverTried[k] = false
		}
	}
}

type LiftSample struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type LiftsTrackerData struct {
	Current StrengthData             `json:"current"`
	History map[LiftKey][]LiftSample `json:"history"`
}

func DefaultLifts() LiftsTrackerData {
	history := make(map[LiftKey][]LiftSample, len(LiftKeys))
	for _, k := range LiftKeys {
		history[k] = []LiftSample{}
	}
	return LiftsTrackerData{
		Current: blankStrength(),
		History: history,
	}
}

func (l *LiftsTrackerData) FillDefaults() {
	if l.Current == nil {
		l.Current = StrengthData{}
	}
	if l.History == nil {
		l.History = map[LiftKey][]LiftSample{}
	}
	for _, k := range LiftKeys {
		if _, ok := l.Current[k]; !ok {
			l.Current[k] = ""
		}
		if l.History[k] == nil {
			l.History[k] = []LiftSample{}
		}
	}
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type WorkoutLogEntry struct {
	Completed bool `json:"completed"`
}

// WorkoutLog is keyed by YYYY-MM-DD.
type WorkoutLog map[string]WorkoutLogEntry

func blankStrength() StrengthData {
	s := make(StrengthData, len(LiftKeys))
	for _, k := range LiftKeys {
		s[k] = ""
	}
	return s
}

func blankNeverTried() StrengthNeverTried {
	s := make(StrengthNeverTried, len(LiftKeys))
	for _, k := range LiftKeys {
		s[k] = false
	}
	return s
}
