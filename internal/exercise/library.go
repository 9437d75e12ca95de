// Package exercise maps free-text exercise names from a plan to a short
// description, coaching cues and a demo animation path.
package exercise

import (
	"regexp"
	"sort"
	"strings"
)

type Meta struct {
	// DemoSrc is a path under the frontend's public directory.
	DemoSrc     string   `json:"demoSrc,omitempty"`
	Description string   `json:"description"`
	Cues        []string `json:"cues,omitempty"`
}

type entry struct {
	names []string
	meta  Meta
}

var catalog = []entry{
	{
		names: []string{"dumbbell bench press", "db bench press", "anim dumbbell bench press", "bench press dumbbell", "bench press", "benchpress", "barbell bench press"},
		meta: Meta{
			DemoSrc:     "/animations/anim-dumbbell-bench-press.gif",
			Description: "Press the dumbbells from chest level to full extension while keeping your shoulders packed and wrists stacked over elbows.",
			Cues:        []string{"Feet planted", "Elbows ~45°", "Control the descent"},
		},
	},
	{
		names: []string{"incline dumbbell press", "incline db press"},
		meta: Meta{
			DemoSrc:     "/animations/Incline-Dumbbell-Press.gif",
			Description: "Incline press emphasizes upper chest. Lower the dumbbells to upper-chest level and press up without shrugging your shoulders.",
			Cues:        []string{"Chest up", "Don't flare elbows", "Smooth tempo"},
		},
	},
	{
		names: []string{"dumbbell shoulder press", "db shoulder press", "overhead dumbbell press"},
		meta: Meta{
			DemoSrc:     "/animations/Dumbbell-Shoulder-Press.gif",
			Description: "Press overhead in a straight line while bracing your core. Keep ribs down to avoid arching your back.",
			Cues:        []string{"Brace core", "Ribs down", "Full lockout"},
		},
	},
	{
		names: []string{"bent over dumbbell row", "bent-over dumbbell row", "db row", "one arm dumbbell row", "dumbbell row", "dumbbell rows", "dumbbell bent row"},
		meta: Meta{
			DemoSrc:     "/animations/Bent-Over-Dumbbell-Row.gif",
			Description: "Hinge at the hips, keep a flat back, and row the dumbbell toward your hip to target lats and upper back.",
			Cues:        []string{"Hinge + flat back", "Pull to hip", "Squeeze shoulder blade"},
		},
	},
	{
		names: []string{"seated row machine", "machine row", "seated cable row"},
		meta: Meta{
			DemoSrc:     "/animations/Seated-Row-Machine.gif",
			Description: "Row the handle to your torso while keeping your chest tall. Control the return to maintain tension.",
			Cues:        []string{"Chest tall", "Elbows back", "Control return"},
		},
	},
	{
		names: []string{"lat pulldown", "lat pull-down", "pulldown"},
		meta: Meta{
			DemoSrc:     "/animations/Lat-Pulldown.gif",
			Description: "Pull the bar to upper chest by driving elbows down. Avoid leaning back excessively or yanking with momentum.",
			Cues:        []string{"Elbows down", "Chest up", "No swinging"},
		},
	},
	{
		names: []string{"leg press"},
		meta: Meta{
			DemoSrc:     "/animations/Leg-Press.gif",
			Description: "Press through mid-foot/heel, keep knees tracking over toes, and avoid locking out hard at the top.",
			Cues:        []string{"Full range", "Knees track toes", "Don't bounce"},
		},
	},
	{
		names: []string{"seated leg curl", "leg curl"},
		meta: Meta{
			DemoSrc:     "/animations/Seated-Leg-Curl.gif",
			Description: "Curl with control, squeeze hamstrings at the bottom, and return slowly to keep tension on the muscle.",
			Cues:        []string{"Slow eccentric", "Full squeeze", "Stay seated"},
		},
	},
	{
		names: []string{"barbell squat", "back squat", "barbell full squat", "squat"},
		meta: Meta{
			DemoSrc:     "/animations/barbell-full-squat.gif",
			Description: "Descend with control, keep your torso braced, and drive up by pushing the floor away through your whole foot.",
			Cues:        []string{"Brace + breathe", "Knees track toes", "Drive up"},
		},
	},
	{
		names: []string{"dumbbell calf raise", "calf raise"},
		meta: Meta{
			DemoSrc:     "/animations/Dumbbell-Calf-Raise.gif",
			Description: "Rise onto your toes with a pause at the top, then lower fully to stretch the calves before the next rep.",
			Cues:        []string{"Pause at top", "Full stretch", "No bouncing"},
		},
	},
	{
		names: []string{"walking lunge", "dumbbell walking lunge", "dumbbell walking lunges"},
		meta: Meta{
			DemoSrc:     "/animations/dumbbell-walking-lunges.gif",
			Description: "Step forward, drop the back knee toward the floor, and keep your front knee over mid-foot as you stand through the front leg.",
			Cues:        []string{"Tall torso", "Soft knee touch", "Drive through front heel"},
		},
	},
	{
		names: []string{"plank"},
		meta: Meta{
			DemoSrc:     "/animations/plank.gif",
			Description: "Maintain a straight line from head to heels. Brace your core and squeeze glutes to prevent sagging.",
			Cues:        []string{"Brace hard", "Glutes on", "Neutral neck"},
		},
	},
	{
		names: []string{"russian twist"},
		meta: Meta{
			DemoSrc:     "/animations/russian-twist.gif",
			Description: "Rotate from your torso (not just arms). Keep a long spine and move under control.",
			Cues:        []string{"Long spine", "Rotate torso", "Controlled reps"},
		},
	},
	{
		names: []string{"glute bridge", "resistance band glute bridge", "band glute bridge"},
		meta: Meta{
			DemoSrc:     "/animations/resistance-band-glute-bridge.gif",
			Description: "Drive hips up by squeezing glutes. Keep ribs down and don't overextend your low back at the top.",
			Cues:        []string{"Glutes squeeze", "Ribs down", "Pause at top"},
		},
	},
	{
		names: []string{"tricep pushdown", "pushdown", "cable pushdown"},
		meta: Meta{
			DemoSrc:     "/animations/Pushdown.gif",
			Description: "Keep elbows pinned to your sides. Extend fully at the bottom and return with control.",
			Cues:        []string{"Elbows stay put", "Full extension", "Slow return"},
		},
	},
	{
		names: []string{"dumbbell bicep curl", "bicep curl", "dumbbell curls", "anim dumbbell bicep curls"},
		meta: Meta{
			DemoSrc:     "/animations/anim-dumbbell-bicep-curls.gif",
			Description: "Curl without swinging. Keep elbows close, squeeze at the top, and lower slowly.",
			Cues:        []string{"No momentum", "Elbows close", "Slow lower"},
		},
	},
	{
		names: []string{"dumbbell lunges", "lunges", "dumbbell lunge"},
		meta: Meta{
			DemoSrc:     "/animations/Dumbbell-Lunges.gif",
			Description: "Step forward, lower your back knee toward the floor, and drive through your front heel to return to start. Keep your torso upright.",
			Cues:        []string{"Front knee over ankle", "Back knee toward floor", "Stay upright"},
		},
	},
	{
		names: []string{"dumbbell lateral raise", "lateral raise", "side raise"},
		meta: Meta{
			DemoSrc:     "/animations/Dumbell Lateral Raise.gif",
			Description: "Raise dumbbells out to the sides with slight elbow bend until arms are parallel to floor. Control the descent.",
			Cues:        []string{"Slight elbow bend", "Raise to shoulder height", "Control descent"},
		},
	},
	{
		names: []string{"hip thrusts", "barbell hip thrust", "hip thrust"},
		meta: Meta{
			DemoSrc:     "/animations/Hip-Thrusts.gif",
			Description: "Drive hips up by squeezing glutes at the top. Keep upper back against bench and shoulders packed.",
			Cues:        []string{"Glutes squeeze at top", "Upper back supported", "Full hip drive"},
		},
	},
	{
		names: []string{"leg extensions", "leg extension"},
		meta: Meta{
			DemoSrc:     "/animations/Leg-Extensions.gif",
			Description: "Extend legs against resistance by straightening knees. Squeeze quads at the top and lower with control.",
			Cues:        []string{"Full extension at top", "Squeeze quads", "Control the weight"},
		},
	},
	{
		names: []string{"pushup", "push-up", "push up", "pushups"},
		meta: Meta{
			DemoSrc:     "/animations/Pushup.gif",
			Description: "Lower your body until chest is near floor while keeping elbows at ~45°. Press back to start position.",
			Cues:        []string{"Elbows ~45°", "Chest toward floor", "Keep body straight"},
		},
	},
	{
		names: []string{"side lunge", "side lunges"},
		meta: Meta{
			DemoSrc:     "/animations/Side-Lunge.gif",
			Description: "Step to the side, shift weight to one leg while keeping the other straight. Drive through your leg to return.",
			Cues:        []string{"Chest up", "Deep side step", "Controlled return"},
		},
	},
	{
		names: []string{"tricep dips", "dips", "tricep dip", "bodyweight dips"},
		meta: Meta{
			DemoSrc:     "/animations/Tricep-Dips.gif",
			Description: "Lower your body by bending elbows, keeping them close to your body. Press back up to full extension.",
			Cues:        []string{"Elbows close", "Full range", "Controlled tempo"},
		},
	},
	{
		names: []string{"jumping jack", "jumping jacks", "jumpin jacks"},
		meta: Meta{
			DemoSrc:     "/animations/Jumping-jack.gif",
			Description: "Jump while spreading legs and raising arms overhead. Land softly and return to start position.",
			Cues:        []string{"Soft landing", "Full extension overhead", "Controlled pace"},
		},
	},
	{
		names: []string{"deadlift", "barbell deadlift", "barbell-deadlift-movement"},
		meta: Meta{
			DemoSrc:     "/animations/barbell-deadlift-movement.gif",
			Description: "Hinge at the hips with a neutral spine and drive through heels to stand tall. Keep the bar close to your body.",
			Cues:        []string{"Neutral spine", "Bar close to shins", "Drive through heels"},
		},
	},
	{
		names: []string{"supine leg raises", "leg raises", "lying leg raises"},
		meta: Meta{
			DemoSrc:     "/animations/supine-leg-raises.gif",
			Description: "Lie flat, keep your lower back pressed to the floor, and lift legs using your lower abs while controlling the descent.",
			Cues:        []string{"Lower back down", "Controlled descent", "Lead with pelvis"},
		},
	},
}

var fallback = Meta{
	Description: "Focus on controlled reps and full range of motion. Keep good form, and stop 1-2 reps before failure.",
	Cues:        []string{"Control the weight", "Full range", "Breathe + brace"},
}

type alias struct {
	key  string
	meta Meta
}

var (
	byName  map[string]Meta
	aliases []alias

	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

func init() {
	byName = make(map[string]Meta)
	for _, e := range catalog {
		for _, n := range e.names {
			key := Normalize(n)
			if _, ok := byName[key]; ok {
				continue
			}
			byName[key] = e.meta
			aliases = append(aliases, alias{key: key, meta: e.meta})
		}
	}
	// Longest alias first: the contains pass prefers the most specific name.
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i].key) > len(aliases[j].key)
	})
}

// Normalize lowercases, spells out "&" and collapses every run of other
// characters to a single space.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", "and")
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Lookup is best-effort: exact alias, then a contains match in either
// direction, then a generic description.
func Lookup(name string) (Meta, bool) {
	key := Normalize(name)
	if key == "" {
		return fallback, false
	}
	if meta, ok := byName[key]; ok {
		return meta, true
	}
	for _, a := range aliases {
		if strings.Contains(key, a.key) || strings.Contains(a.key, key) {
			return a.meta, true
		}
	}
	return fallback, false
}
