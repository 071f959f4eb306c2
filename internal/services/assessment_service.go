package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/events"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/validator"
)

type assessmentService struct {
	repo      repositories.Repository
	policy    CompletenessPolicy
	publisher events.EventPublisher
	rand      RandProvider
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssessmentService(repo repositories.Repository, policy CompletenessPolicy, publisher events.EventPublisher, rand RandProvider, logger *slog.Logger, validator *validator.Validator) AssessmentService {
	if rand == nil {
		rand = NewEntropyRandProvider()
	}
	return &assessmentService{
		repo:      repo,
		policy:    policy,
		publisher: publisher,
		rand:      rand,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *AssessmentRequest) (*models.Assessment, error) {
	if req.ID != nil {
		return nil, ErrAssessmentHasID
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	s.logger.Info("Creating assessment", "course_id", req.CourseID)

	assessment := &models.Assessment{CourseID: req.CourseID}
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := s.checkCourseAvailable(ctx, tx, req.CourseID, 0); err != nil {
			return err
		}
		if err := tx.Assessment().Create(ctx, assessment); err != nil {
			// a concurrent create for the same course won the unique index
			if repositories.IsDuplicateError(err) {
				return ErrAssessmentCourseTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment created successfully", "assessment_id", assessment.ID)
	s.publish(ctx, events.AssessmentCreated, events.AssessmentEvent{AssessmentID: assessment.ID, CourseID: assessment.CourseID})

	return assessment, nil
}

// Update saves an existing assessment. A request without an ID creates one.
func (s *assessmentService) Update(ctx context.Context, req *AssessmentRequest) (*models.Assessment, error) {
	if req.ID == nil {
		return s.Create(ctx, &AssessmentRequest{CourseID: req.CourseID})
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := *req.ID
	s.logger.Info("Updating assessment", "assessment_id", id, "course_id", req.CourseID)

	var assessment *models.Assessment
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		existing, err := tx.Assessment().GetByID(ctx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrAssessmentNotFound
			}
			return err
		}

		if err := s.checkCourseAvailable(ctx, tx, req.CourseID, existing.ID); err != nil {
			return err
		}

		existing.CourseID = req.CourseID
		if err := tx.Assessment().Update(ctx, existing); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrAssessmentNotFound
			}
			if repositories.IsDuplicateError(err) {
				return ErrAssessmentCourseTaken
			}
			return err
		}
		assessment = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assessment updated successfully", "assessment_id", assessment.ID)
	s.publish(ctx, events.AssessmentUpdated, events.AssessmentEvent{AssessmentID: assessment.ID, CourseID: assessment.CourseID})

	return assessment, nil
}

func (s *assessmentService) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	s.logger.Debug("Getting assessment", "assessment_id", id)

	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting assessment", "assessment_id", id)

	assessment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssessmentNotFound
		}
		return err
	}

	s.logger.Info("Assessment deleted successfully", "assessment_id", id)
	s.publish(ctx, events.AssessmentDeleted, events.AssessmentEvent{AssessmentID: assessment.ID, CourseID: assessment.CourseID})

	return nil
}

// List returns every assessment with its completeness verdict. An assessment whose
// course has disappeared is reported as incomplete.
func (s *assessmentService) List(ctx context.Context) ([]*models.AssessmentDetails, error) {
	assessments, err := s.repo.Assessment().List(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*models.AssessmentDetails, 0, len(assessments))
	for _, assessment := range assessments {
		complete, err := s.EvaluateCompleteness(ctx, assessment)
		if err != nil {
			if !errors.Is(err, ErrCourseNotFound) {
				return nil, err
			}
			s.logger.Warn("Assessment references a missing course", "assessment_id", assessment.ID, "course_id", assessment.CourseID)
		}
		details = append(details, models.NewAssessmentDetails(assessment, complete))
	}

	return details, nil
}

// ===== COMPOSITION AND SCORING =====

func (s *assessmentService) ComposeAssessmentExercises(ctx context.Context, req *QuestionConfigRequest) ([]models.AssessmentExercise, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	count := *req.NumberOfQuestions

	s.logger.Debug("Composing assessment exercises", "course_id", req.CourseID, "number_of_questions", count)

	candidates, err := NewExerciseSetBuilder(s.repo.Assessment(), s.repo.Catalog()).Build(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	selected, err := Sample(s.rand(), candidates, count)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Composed assessment exercises", "course_id", req.CourseID, "candidates", len(candidates), "selected", len(selected))
	return selected, nil
}

func (s *assessmentService) ScoreSubmission(ctx context.Context, submitted SubmissionRequest) (models.SubmissionStats, error) {
	var validationErrors ValidationErrors
	for i := range submitted {
		if err := s.validator.Validate(submitted[i]); err != nil {
			var itemErrors ValidationErrors
			if !errors.As(err, &itemErrors) {
				return nil, err
			}
			for _, ve := range itemErrors {
				ve.Field = fmt.Sprintf("[%d].%s", i, ve.Field)
				validationErrors = append(validationErrors, ve)
			}
		}
	}
	if len(validationErrors) > 0 {
		return nil, validationErrors
	}

	stats := ScoreSubmission(submitted)
	s.logger.Info("Submission scored", "total", stats.Total(), "correct", stats.Correct())

	scored := events.SubmissionScoredEvent{Total: stats.Total(), Correct: stats.Correct()}
	if len(submitted) > 0 {
		scored.AssessmentID = submitted[0].AssessmentID
		scored.CourseID = submitted[0].CourseID
	}
	s.publish(ctx, events.AssessmentSubmissionScored, scored)

	return stats, nil
}

// ===== COMPLETENESS =====

func (s *assessmentService) EvaluateCompleteness(ctx context.Context, assessment *models.Assessment) (bool, error) {
	if assessment == nil || assessment.CourseID == 0 {
		return false, invalidArgument("assessment must reference a course")
	}

	if _, err := s.repo.Catalog().GetCourse(ctx, assessment.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return false, fmt.Errorf("%w: course %d", ErrCourseNotFound, assessment.CourseID)
		}
		return false, err
	}

	complete, err := s.policy.IsComplete(ctx, s.repo.Catalog(), assessment.CourseID)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate completeness: %w", err)
	}
	return complete, nil
}

func (s *assessmentService) Completeness(ctx context.Context, id uint) (*CompletenessResponse, error) {
	assessment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	complete, err := s.EvaluateCompleteness(ctx, assessment)
	if err != nil {
		return nil, err
	}

	return &CompletenessResponse{
		AssessmentID: assessment.ID,
		Policy:       s.policy.Name(),
		Complete:     complete,
	}, nil
}

// ===== HELPERS =====

// checkCourseAvailable requires the course to exist and to have no assessment other than ownID.
func (s *assessmentService) checkCourseAvailable(ctx context.Context, tx repositories.Repository, courseID, ownID uint) error {
	if _, err := tx.Catalog().GetCourse(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: course %d", ErrCourseNotFound, courseID)
		}
		return err
	}

	current, err := tx.Assessment().GetByCourseID(ctx, courseID)
	switch {
	case err == nil && current.ID != ownID:
		return fmt.Errorf("%w: course %d", ErrAssessmentCourseTaken, courseID)
	case err != nil && !repositories.IsNotFoundError(err):
		return fmt.Errorf("failed to check course assessment: %w", err)
	}
	return nil
}

// publish is best effort; failures are logged only.
func (s *assessmentService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "event_id", event.ID, "error", err)
	}
}
