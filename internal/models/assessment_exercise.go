package models

import (
	"encoding/json"
)

// AssessmentExercise joins an exercise with its template and the course assessment.
// It is built per request and never persisted.
type AssessmentExercise struct {
	// Exercise
	ExerciseID    uint            `json:"exercise_id" validate:"required"`
	TopicID       uint            `json:"topic_id"`
	Question      string          `json:"question"`
	Content       json.RawMessage `json:"content,omitempty"`
	CorrectAnswer string          `json:"correct_answer"`

	// Template
	TemplateID      uint   `json:"template_id"`
	TemplateName    string `json:"template_name"`
	TemplateContent string `json:"template_content"`

	// Assessment
	AssessmentID uint `json:"assessment_id"`
	CourseID     uint `json:"course_id"`

	// Filled in by the learner on submission
	UserAnswer string `json:"user_answer" validate:"max=10000"`
}

// NewAssessmentExercise assembles the view of one exercise for an assessment.
func NewAssessmentExercise(exercise *Exercise, template *Template, assessment *Assessment) AssessmentExercise {
	ae := AssessmentExercise{
		ExerciseID:      exercise.ID,
		TopicID:         exercise.TopicID,
		Question:        exercise.Question,
		CorrectAnswer:   exercise.CorrectAnswer,
		TemplateID:      template.ID,
		TemplateName:    template.Name,
		TemplateContent: template.Content,
		AssessmentID:    assessment.ID,
		CourseID:        assessment.CourseID,
	}
	if len(exercise.Content) > 0 {
		ae.Content = json.RawMessage(exercise.Content)
	}
	return ae
}

// Metric names reported for a scored submission.
const (
	MetricTotal   = "total"
	MetricCorrect = "correct"
)

// SubmissionStats maps a metric name to its value.
type SubmissionStats map[string]int

func (s SubmissionStats) Total() int {
	return s[MetricTotal]
}

func (s SubmissionStats) Correct() int {
	return s[MetricCorrect]
}
