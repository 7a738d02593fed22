package render

import (
	"net/url"

	"surveyor/internal/api"
)

// maxDisplayItems caps papers and ideas on the dashboard.
const maxDisplayItems = 5

const scholarSearchURL = "https://scholar.google.com/scholar?q="

// PaperView is one paper row on the dashboard, with an outbound scholar
// search link built from the title.
type PaperView struct {
	Title        string
	Summary      string
	Source       string
	Year         int
	CitedByCount int
	ScholarURL   string
}

// Dashboard is the view model projected from a structured response. It is a
// pure projection: no text processing beyond the one-line overview point.
type Dashboard struct {
	Domain         string
	OverviewPoints []string
	Papers         []PaperView
	Ideas          []string
	Conferences    []string
	Journals       []string
}

// BuildDashboard projects structured data into the dashboard view model.
func BuildDashboard(sd *api.StructuredData) Dashboard {
	if sd == nil {
		return Dashboard{}
	}

	papers := sd.Papers
	if len(papers) > maxDisplayItems {
		papers = papers[:maxDisplayItems]
	}
	views := make([]PaperView, 0, len(papers))
	for _, p := range papers {
		views = append(views, PaperView{
			Title:        p.Title,
			Summary:      p.Summary,
			Source:       p.Source,
			Year:         p.Year,
			CitedByCount: p.CitedByCount,
			ScholarURL:   scholarSearchURL + url.QueryEscape(p.Title),
		})
	}

	ideas := sd.Ideas
	if len(ideas) > maxDisplayItems {
		ideas = ideas[:maxDisplayItems]
	}

	return Dashboard{
		Domain:         sd.Domain,
		OverviewPoints: OverviewPoints(sd.Overview),
		Papers:         views,
		Ideas:          ideas,
		Conferences:    sd.Venues.Conferences,
		Journals:       sd.Venues.Journals,
	}
}
