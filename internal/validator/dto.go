package validator

import "github.com/SAP-F-2025/lms-assessment-engine/internal/models"

// AssessmentRequest is the body of assessment create and update calls
type AssessmentRequest struct {
	ID       *uint `json:"id"`
	CourseID uint  `json:"course_id" validate:"required,min=1"`
}

// QuestionConfigRequest asks for a random exercise set for a course
type QuestionConfigRequest struct {
	CourseID          uint `json:"course_id" validate:"required,min=1"`
	NumberOfQuestions *int `json:"number_of_questions" validate:"required,min=0"`
}

// SubmissionRequest is a list of answered exercises
type SubmissionRequest []models.AssessmentExercise
