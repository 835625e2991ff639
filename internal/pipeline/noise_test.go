package pipeline

import (
	"testing"

	"promptdex/internal/record"
)

func TestFilterNoise(t *testing.T) {
	keep := record.Record{"Prompt": "a crystal cavern lit by bioluminescent ferns and streams"}

	tests := []struct {
		name string
		rec  record.Record
	}{
		{name: "placeholder phrase", rec: record.Record{"Prompt": "Lorem ipsum...dolor sit amet padding past the length gate"}},
		{name: "placeholder with ellipsis", rec: record.Record{"Prompt": "placeholder...and some padding to pass the length gate"}},
		{name: "too short", rec: record.Record{"Prompt": "short but real text"}},
		{name: "empty", rec: record.Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, removed := FilterNoise([]record.Record{keep, tt.rec})
			if len(clean) != 1 {
				t.Errorf("len(clean) = %d, want 1", len(clean))
			}
			if removed != 1 {
				t.Errorf("removed = %d, want 1", removed)
			}
		})
	}
}

func TestFilterNoise_SurvivorsMeetLengthFloor(t *testing.T) {
	records := []record.Record{
		{"Prompt": "a crystal cavern lit by bioluminescent ferns and streams"},
		{"Prompt": "almost thirty chars here"},
	}

	clean, _ := FilterNoise(records)
	for _, rec := range clean {
		if len([]rune(rec.BestText())) < 30 {
			t.Errorf("survivor under length floor: %q", rec.BestText())
		}
	}
}
