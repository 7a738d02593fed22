// Package dispatch owns the submission flow: validate the question, call
// the generation endpoint, settle the UI state, and record the query in
// history on success.
package dispatch

import "surveyor/internal/api"

// Phase is the submission lifecycle. There is no terminal state: after a
// request settles the machine is ready for the next submission.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

// State is the interaction state behind the result display. Exactly one
// display mode (loading, error, empty, structured result, legacy result)
// derives from it at any time.
type State struct {
	// Question is the live input text; it may drift from OriginalQuestion
	// while the user types.
	Question string

	// OriginalQuestion is the query that produced the current Response or
	// Err, frozen at submit time.
	OriginalQuestion string

	Phase    Phase
	Response *api.GenerateResponse
	Err      error

	UseLocalLLM bool
	Provider    string
}

// BeginSubmit starts a submission: previous result and error are cleared
// and the question is captured. Submission is disabled (Loading reports
// true) until the request settles.
func (s State) BeginSubmit(question string) State {
	s.Question = question
	s.OriginalQuestion = question
	s.Phase = PhaseSubmitting
	s.Response = nil
	s.Err = nil
	return s
}

// Settle resolves a submission. Response and error are mutually exclusive;
// whichever is non-nil decides the phase.
func (s State) Settle(resp *api.GenerateResponse, err error) State {
	if err != nil {
		s.Phase = PhaseFailed
		s.Err = err
		s.Response = nil
		return s
	}
	s.Phase = PhaseSuccess
	s.Response = resp
	s.Err = nil
	return s
}

// Reset returns the state to an empty idle display, keeping the provider
// toggles.
func (s State) Reset() State {
	return State{UseLocalLLM: s.UseLocalLLM, Provider: s.Provider}
}

// Loading reports whether a request is in flight; the input control is
// disabled while it is.
func (s State) Loading() bool {
	return s.Phase == PhaseSubmitting
}
