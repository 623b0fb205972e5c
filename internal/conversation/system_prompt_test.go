package conversation

import (
	"strings"
	"testing"

	"github.com/ecocenter/visit-platform/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		CenterName: "Greenvale Nature Ecology Center",
		VisitRules: catalog.VisitRules{
			MinPeoplePerTeam:         10,
			MaxPeoplePerTeam:         40,
			ReservationDeadlineHours: 48,
		},
		Programs: []catalog.Program{
			{
				ProgramID: "P001",
				Name:      "Forest Walk",
				Target:    "Elementary school",
				AvailableSlots: []catalog.Slot{
					{Date: "2025-09-15", Time: "10:00-11:00", Capacity: 30, Reserved: 12},
				},
			},
		},
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(testCatalog())

	for _, want := range []string{
		"Greenvale Nature Ecology Center",
		"Minimum people per team: 10",
		"Maximum people per team: 40",
		"48 hours before the visit",
		"[AUTO_FILL]",
		"[/AUTO_FILL]",
		"Forest Walk", // serialized catalog embedded
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	cat := testCatalog()
	if BuildSystemPrompt(cat) != BuildSystemPrompt(cat) {
		t.Fatal("prompt is not deterministic")
	}
}

func TestBuildSystemPromptFallbackName(t *testing.T) {
	cat := testCatalog()
	cat.CenterName = ""
	prompt := BuildSystemPrompt(cat)
	if !strings.Contains(prompt, defaultCenterLabel) {
		t.Fatal("expected fallback center label")
	}
}
