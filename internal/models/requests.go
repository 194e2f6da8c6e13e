package models

// CreateSessionRequest opens a new attempt against a catalog assessment.
type CreateSessionRequest struct {
	AssessmentKey string `json:"assessment_key" validate:"required,max=100"`
}

// AnswerRequest carries one answer mutation. Exactly one of Option, Text,
// Value or Toggle is set; which one is valid depends on the assessment kind.
type AnswerRequest struct {
	Index  *int    `json:"index" validate:"required,min=0"`
	Option *string `json:"option,omitempty" validate:"omitempty,max=500"`
	Text   *string `json:"text,omitempty" validate:"omitempty,max=100000"`
	Value  *string `json:"value,omitempty" validate:"omitempty,max=64"`
	Toggle *string `json:"toggle,omitempty" validate:"omitempty,max=100"`
}

// PlacementRequest drops a drag-and-drop item into a zone.
type PlacementRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	ZoneID string `json:"zone_id" validate:"required"`
}
