package domain

import "time"

// CoachSummaryResponse is a short, non-medical weekly summary generated from
// the user's computed scores.
// @Description LLM-generated weekly wellness summary.
type CoachSummaryResponse struct {
	// The generated summary text
	Summary string `json:"summary"`
	// Model that produced the summary
	Model string `json:"model"`
	// Generation timestamp
	GeneratedAt time.Time `json:"generated_at"`
	// Trace identifier for feedback correlation
	TraceID string `json:"trace_id,omitempty"`
}

// CoachFeedbackRequest is a user rating of a coach summary.
type CoachFeedbackRequest struct {
	// Trace identifier returned with the summary
	TraceID string `json:"trace_id" validate:"required"`
	// Rating from 1 (unhelpful) to 5 (very helpful)
	Rating int `json:"rating" validate:"required,min=1,max=5"`
	// Optional free-text comment
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
