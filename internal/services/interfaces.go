package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type AssessmentRequest = validator.AssessmentRequest
type QuestionConfigRequest = validator.QuestionConfigRequest
type SubmissionRequest = validator.SubmissionRequest

type CompletenessResponse struct {
	AssessmentID uint   `json:"assessment_id"`
	Policy       string `json:"policy"`
	Complete     bool   `json:"complete"`
}

// ===== SERVICE INTERFACES =====

type AssessmentService interface {
	// Core CRUD operations
	Create(ctx context.Context, req *AssessmentRequest) (*models.Assessment, error)
	Update(ctx context.Context, req *AssessmentRequest) (*models.Assessment, error)
	GetByID(ctx context.Context, id uint) (*models.Assessment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.AssessmentDetails, error)

	// Composition and scoring
	ComposeAssessmentExercises(ctx context.Context, req *QuestionConfigRequest) ([]models.AssessmentExercise, error)
	ScoreSubmission(ctx context.Context, submitted SubmissionRequest) (models.SubmissionStats, error)

	// Completeness
	EvaluateCompleteness(ctx context.Context, assessment *models.Assessment) (bool, error)
	Completeness(ctx context.Context, id uint) (*CompletenessResponse, error)

	// Export writes every assessment as an XLSX workbook
	Export(ctx context.Context, w io.Writer) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Assessment() AssessmentService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
