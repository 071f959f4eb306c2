package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "assessment-service"
	EventVersion = "1.0"
)

// Event types
const (
	AssessmentCreated          = "assessment.created"
	AssessmentUpdated          = "assessment.updated"
	AssessmentDeleted          = "assessment.deleted"
	AssessmentSubmissionScored = "assessment.submission_scored"
)

// Event is the envelope published for every domain event
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps an event with a fresh ID and the current time
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// AssessmentEvent carries the assessment a lifecycle event refers to
type AssessmentEvent struct {
	AssessmentID uint `json:"assessment_id"`
	CourseID     uint `json:"course_id"`
}

// SubmissionScoredEvent carries the result of a scored submission
type SubmissionScoredEvent struct {
	AssessmentID uint `json:"assessment_id,omitempty"`
	CourseID     uint `json:"course_id,omitempty"`
	Total        int  `json:"total"`
	Correct      int  `json:"correct"`
}

// EventPublisher publishes domain events to the outside world
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
