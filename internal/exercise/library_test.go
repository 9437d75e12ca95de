package exercise

import "testing"

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Lat Pull-Down ":       "lat pull down",
		"Squat & Press":          "squat and press",
		"DB Bench Press (Flat)!": "db bench press flat",
		"":                       "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
		wantDemo  string
	}{
		{"Leg Press", true, "/animations/Leg-Press.gif"},
		{"Lat Pulldown (wide grip)", true, "/animations/Lat-Pulldown.gif"},
		{"BARBELL BACK SQUAT", true, "/animations/barbell-full-squat.gif"},
		{"Push-Ups", true, "/animations/Pushup.gif"},
		{"Farmer's carry", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, found := Lookup(tt.name)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if meta.DemoSrc != tt.wantDemo {
				t.Fatalf("demo = %q, want %q", meta.DemoSrc, tt.wantDemo)
			}
			if meta.Description == "" {
				t.Fatal("every lookup returns a description")
			}
		})
	}
}
