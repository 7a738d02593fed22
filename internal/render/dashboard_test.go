package render

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyor/internal/api"
)

func TestBuildDashboardProjection(t *testing.T) {
	sd := &api.StructuredData{
		Domain:   "AI in Agriculture",
		Overview: "Great field.\nMore.",
		Papers: []api.Paper{
			{Title: "Crop Yield & Prediction", Summary: "Uses ML.", Source: "OpenAlex", Year: 2023, CitedByCount: 42},
		},
		Ideas: []string{"Precision irrigation"},
		Venues: api.Venues{
			Conferences: []string{"AAAI", "NeurIPS"},
			Journals:    []string{"Computers and Electronics in Agriculture"},
		},
	}

	got := BuildDashboard(sd)

	want := Dashboard{
		Domain:         "AI in Agriculture",
		OverviewPoints: []string{"Great field."},
		Papers: []PaperView{{
			Title:        "Crop Yield & Prediction",
			Summary:      "Uses ML.",
			Source:       "OpenAlex",
			Year:         2023,
			CitedByCount: 42,
			ScholarURL:   "https://scholar.google.com/scholar?q=Crop+Yield+%26+Prediction",
		}},
		Ideas:       []string{"Precision irrigation"},
		Conferences: []string{"AAAI", "NeurIPS"},
		Journals:    []string{"Computers and Electronics in Agriculture"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDashboardCapsPapersAndIdeas(t *testing.T) {
	sd := &api.StructuredData{Overview: "o"}
	for i := 0; i < 8; i++ {
		sd.Papers = append(sd.Papers, api.Paper{Title: fmt.Sprintf("paper %d", i)})
		sd.Ideas = append(sd.Ideas, fmt.Sprintf("idea %d", i))
	}

	got := BuildDashboard(sd)

	require.Len(t, got.Papers, 5)
	require.Len(t, got.Ideas, 5)
	assert.Equal(t, "paper 0", got.Papers[0].Title, "the first five are kept")
	assert.Equal(t, "idea 4", got.Ideas[4])
}

func TestBuildDashboardNilInput(t *testing.T) {
	got := BuildDashboard(nil)
	assert.Empty(t, got.Papers)
	assert.Empty(t, got.OverviewPoints)
}

func TestDashboardMarkdownSections(t *testing.T) {
	d := Dashboard{
		Domain:         "Robotics",
		OverviewPoints: []string{"Robots are useful."},
		Papers: []PaperView{{
			Title:      "Grasping Survey",
			Summary:    "A survey.",
			Year:       2022,
			ScholarURL: "https://scholar.google.com/scholar?q=Grasping+Survey",
		}},
		Ideas:       []string{"Soft grippers"},
		Conferences: []string{"ICRA"},
		Journals:    []string{"T-RO"},
	}

	md := DashboardMarkdown(d)

	assert.Contains(t, md, "# Robotics")
	assert.Contains(t, md, "> Robots are useful.")
	assert.Contains(t, md, "[Grasping Survey](https://scholar.google.com/scholar?q=Grasping+Survey)")
	assert.Contains(t, md, "2022")
	assert.Contains(t, md, "- Soft grippers")
	assert.Contains(t, md, "**Conferences:** ICRA")
	assert.Contains(t, md, "**Journals:** T-RO")
}

func TestRenderTerminalFallsBackWithoutRenderer(t *testing.T) {
	assert.Equal(t, "plain **text**", RenderTerminal(nil, "plain **text**"))
}
