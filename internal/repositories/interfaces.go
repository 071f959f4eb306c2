package repositories

import (
	"context"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
)

// AssessmentRepository persists assessment records
type AssessmentRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context) ([]*models.Assessment, error)
	GetByCourseID(ctx context.Context, courseID uint) (*models.Assessment, error)
}

// CatalogRepository is the exercise catalog gateway. Lookups that find nothing
// return ErrNotFound; list lookups return an empty slice.
type CatalogRepository interface {
	GetCourse(ctx context.Context, courseID uint) (*models.Course, error)
	FindTopicsByCourse(ctx context.Context, courseID uint) ([]*models.Topic, error)
	FindExercisesByTopic(ctx context.Context, topicID uint) ([]*models.Exercise, error)
	FindTemplateByID(ctx context.Context, templateID uint) (*models.Template, error)

	// Seeding
	UpsertCourse(ctx context.Context, course *models.Course) error
	UpsertTopic(ctx context.Context, topic *models.Topic) error
	UpsertExercise(ctx context.Context, exercise *models.Exercise) error
	UpsertTemplate(ctx context.Context, template *models.Template) error

	// InvalidateCache drops every cached catalog lookup
	InvalidateCache(ctx context.Context)
}
