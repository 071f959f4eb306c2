package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

// ExerciseSetBuilder joins a course's topics, their exercises and the exercises'
// templates into AssessmentExercise records for the course assessment.
type ExerciseSetBuilder struct {
	assessments repositories.AssessmentRepository
	catalog     repositories.CatalogRepository
}

func NewExerciseSetBuilder(assessments repositories.AssessmentRepository, catalog repositories.CatalogRepository) *ExerciseSetBuilder {
	return &ExerciseSetBuilder{assessments: assessments, catalog: catalog}
}

// Build returns every exercise of the course in topic order, then exercise order.
// Either the whole set is assembled or an error is returned; a missing assessment
// yields ErrAssessmentNotFound and any failing lookup after that a *CompositionError.
func (b *ExerciseSetBuilder) Build(ctx context.Context, courseID uint) ([]models.AssessmentExercise, error) {
	assessment, err := b.assessments.GetByCourseID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: no assessment for course %d", ErrAssessmentNotFound, courseID)
		}
		return nil, newCompositionError("assessment", err)
	}

	topics, err := b.catalog.FindTopicsByCourse(ctx, courseID)
	if err != nil {
		return nil, newCompositionError("topics", err)
	}

	result := make([]models.AssessmentExercise, 0)
	seen := make(map[uint]struct{})
	templates := make(map[uint]*models.Template)

	for _, topic := range topics {
		exercises, err := b.catalog.FindExercisesByTopic(ctx, topic.ID)
		if err != nil {
			return nil, newCompositionError("exercises", fmt.Errorf("topic %d: %w", topic.ID, err))
		}

		for _, exercise := range exercises {
			if _, dup := seen[exercise.ID]; dup {
				continue
			}
			seen[exercise.ID] = struct{}{}

			template, ok := templates[exercise.TemplateID]
			if !ok {
				template, err = b.catalog.FindTemplateByID(ctx, exercise.TemplateID)
				if err != nil {
					if repositories.IsNotFoundError(err) {
						err = fmt.Errorf("%w: template %d for exercise %d", ErrTemplateNotFound, exercise.TemplateID, exercise.ID)
					}
					return nil, newCompositionError("template", err)
				}
				templates[exercise.TemplateID] = template
			}

			result = append(result, models.NewAssessmentExercise(exercise, template, assessment))
		}
	}

	return result, nil
}
