package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// EventType represents the lifecycle transitions published for a session
type EventType string

const (
	EventSessionCreated   EventType = "session.created"
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"
	EventSessionRestarted EventType = "session.restarted"
	EventSessionClosed    EventType = "session.closed"

	EventAssessmentSaved   EventType = "assessment.saved"
	EventAssessmentDeleted EventType = "assessment.deleted"
)

const (
	eventSource  = "assessment-engine"
	eventVersion = "1.0"
)

// SessionEvent is the envelope for every published event
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SessionLifecycleEvent struct {
	SessionID     string                `json:"session_id"`
	AssessmentKey string                `json:"assessment_key"`
	Kind          models.AssessmentKind `json:"kind"`
	Status        models.SessionStatus  `json:"status"`
	At            time.Time             `json:"at"`
}

type SessionCompletedEvent struct {
	SessionID string        `json:"session_id"`
	Result    models.Result `json:"result"`
}

type AssessmentChangedEvent struct {
	AssessmentKey string                `json:"assessment_key"`
	Kind          models.AssessmentKind `json:"kind,omitempty"`
}

// Event factory functions

func newEvent(t EventType, data interface{}) *SessionEvent {
	return &SessionEvent{
		ID:        GenerateEventID(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// NewSessionLifecycleEvent covers created, started, restarted and closed.
func NewSessionLifecycleEvent(t EventType, state models.State) *SessionEvent {
	return newEvent(t, SessionLifecycleEvent{
		SessionID:     state.SessionID,
		AssessmentKey: state.AssessmentKey,
		Kind:          state.Kind,
		Status:        state.Status,
		At:            time.Now(),
	})
}

func NewSessionCompletedEvent(sessionID string, result models.Result) *SessionEvent {
	return newEvent(EventSessionCompleted, SessionCompletedEvent{
		SessionID: sessionID,
		Result:    result,
	})
}

func NewAssessmentChangedEvent(t EventType, key string, kind models.AssessmentKind) *SessionEvent {
	return newEvent(t, AssessmentChangedEvent{
		AssessmentKey: key,
		Kind:          kind,
	})
}

// GenerateEventID returns a random UUID string.
func GenerateEventID() string {
	return uuid.NewString()
}
