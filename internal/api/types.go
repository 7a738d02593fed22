// Package api implements the client for the Literature Surveyor generation
// endpoint (POST {base}/LS/content/v1/generate).
package api

import "encoding/json"

// GenerateRequest is the JSON body of a generation call.
// Provider is only sent on the hosted path; the backend ignores it when
// local_llm is set, so the client omits it entirely in that case.
type GenerateRequest struct {
	Question string `json:"question"`
	LocalLLM bool   `json:"local_llm"`
	Provider string `json:"provider,omitempty"`
}

// Paper is one literature result inside structured data.
type Paper struct {
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	Source       string `json:"source,omitempty"`
	Year         int    `json:"year,omitempty"`
	CitedByCount int    `json:"cited_by_count,omitempty"`
}

// Venues groups discovered publication venues.
type Venues struct {
	Conferences []string `json:"conferences"`
	Journals    []string `json:"journals"`
}

// StructuredData is the dashboard payload newer backend versions return.
type StructuredData struct {
	Domain   string   `json:"domain"`
	Overview string   `json:"overview"`
	Papers   []Paper  `json:"papers"`
	Ideas    []string `json:"ideas"`
	Venues   Venues   `json:"venues"`
}

// GenerateResponse is the generation result. Either StructuredData is
// present, or the legacy fields (Answer, Data) carry free text. Data may be
// a JSON string, an array of strings, or an arbitrary object, so it is kept
// raw until rendering.
type GenerateResponse struct {
	StructuredData *StructuredData `json:"structured_data,omitempty"`

	Answer string          `json:"answer,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`

	// Echo fields the backend attaches to every response.
	OriginalQuestion string `json:"originalQuestion,omitempty"`
	ProviderUsed     string `json:"providerUsed,omitempty"`
	UsedLocalLLM     bool   `json:"usedLocalLLM,omitempty"`
}

// IsStructured reports whether the response carries the dashboard payload.
func (r *GenerateResponse) IsStructured() bool {
	return r != nil && r.StructuredData != nil
}
