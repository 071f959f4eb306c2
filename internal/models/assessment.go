package models

import (
	"time"
)

// Assessment anchors the practice test of a course. There is at most one per course.
type Assessment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex"`

	// Metadata
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// AssessmentDetails is the list view of an assessment with its completeness verdict.
type AssessmentDetails struct {
	ID       uint `json:"id"`
	CourseID uint `json:"course_id"`
	Complete bool `json:"complete"`
}

func NewAssessmentDetails(assessment *Assessment, complete bool) *AssessmentDetails {
	return &AssessmentDetails{
		ID:       assessment.ID,
		CourseID: assessment.CourseID,
		Complete: complete,
	}
}

func (Assessment) TableName() string {
	return "assessments"
}
