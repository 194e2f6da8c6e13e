package models

import "time"

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

type Outcome string

const (
	OutcomeScored             Outcome = "scored"
	OutcomeGraded             Outcome = "graded"
	OutcomeSubmittedForReview Outcome = "submitted_for_review"
	OutcomeRecorded           Outcome = "recorded"
)

// Result is the immutable snapshot computed once when a session completes.
type Result struct {
	AssessmentKey string         `json:"assessment_key"`
	Kind          AssessmentKind `json:"kind"`
	Outcome       Outcome        `json:"outcome"`

	// Percentage 0-100 for scored kinds, effectiveness for scenarios.
	Score float64 `json:"score"`
	Grade string  `json:"grade,omitempty"`

	CorrectCount int `json:"correct_count"`
	TotalCount   int `json:"total_count"`

	// Proctored exam only.
	ElapsedSeconds int `json:"elapsed_seconds,omitempty"`

	CompletedAt time.Time `json:"completed_at"`
}

// State is a point-in-time copy of a session, safe to hand to callers.
type State struct {
	SessionID     string         `json:"session_id"`
	AssessmentKey string         `json:"assessment_key"`
	Kind          AssessmentKind `json:"kind"`
	Status        SessionStatus  `json:"status"`

	CurrentIndex   int  `json:"current_index"`
	QuestionsCount int  `json:"questions_count"`
	IsFirst        bool `json:"is_first"`
	IsLast         bool `json:"is_last"`
	CanAdvance     bool `json:"can_advance"`

	Answers Answers `json:"answers"`

	// Drag-and-drop pool and zone contents (display texts per zone id).
	AvailableItems []string            `json:"available_items,omitempty"`
	Zones          map[string][]string `json:"zones,omitempty"`

	TimeRemaining int    `json:"time_remaining"`
	Clock         string `json:"clock"`

	// Essay helpers for the current question.
	WordCount     int  `json:"word_count,omitempty"`
	OverWordLimit bool `json:"over_word_limit,omitempty"`

	StartedAt *time.Time `json:"started_at,omitempty"`
	Result    *Result    `json:"result,omitempty"`
}
