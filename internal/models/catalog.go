package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course is the top-level grouping that owns topics.
type Course struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Topics []Topic `json:"topics,omitempty" gorm:"foreignKey:CourseID"`
}

// Topic is a subject unit within a course.
type Topic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Exercises []Exercise `json:"exercises,omitempty" gorm:"foreignKey:TopicID"`
}

// Exercise is a single question, rendered through a template.
type Exercise struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TopicID    uint   `json:"topic_id" gorm:"not null;index"`
	TemplateID uint   `json:"template_id" gorm:"not null;index"`
	Question   string `json:"question" gorm:"type:text;not null"`

	// Rendering parameters handed to the template
	Content       datatypes.JSON `json:"content" gorm:"type:jsonb"`
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Template is reusable question-rendering content shared by many exercises.
type Template struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (Topic) TableName() string {
	return "topics"
}

func (Exercise) TableName() string {
	return "exercises"
}

func (Template) TableName() string {
	return "templates"
}
