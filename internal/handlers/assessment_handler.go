package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/services"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// CreateAssessment creates a new assessment
// @Summary Create assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body services.AssessmentRequest true "Assessment data"
// @Success 201 {object} models.Assessment
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating assessment", "course_id", req.CourseID)

	assessment, err := h.assessmentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondCreated(c, assessment)
}

func respondCreated(c *gin.Context, assessment *models.Assessment) {
	c.Header("Location", fmt.Sprintf("/api/v1/assessments/%d", assessment.ID))
	c.JSON(http.StatusCreated, assessment)
}

// UpdateAssessment saves an assessment; a body without id creates one
// @Summary Update assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body services.AssessmentRequest true "Assessment data"
// @Success 200 {object} models.Assessment
// @Success 201 {object} models.Assessment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments [put]
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	var req services.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating assessment", "course_id", req.CourseID)

	assessment, err := h.assessmentService.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if req.ID == nil {
		respondCreated(c, assessment)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// ListAssessments returns all assessments with their completeness
// @Summary List assessments
// @Tags assessments
// @Produce json
// @Success 200 {array} models.AssessmentDetails
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	details, err := h.assessmentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetAssessment retrieves an assessment by ID
// @Summary Get assessment
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting assessment", "assessment_id", id)

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// GetCompleteness reports whether an assessment is complete under the configured policy
// @Summary Assessment completeness
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.CompletenessResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id}/completeness [get]
func (h *AssessmentHandler) GetCompleteness(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.assessmentService.Completeness(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAssessment deletes an assessment
// @Summary Delete assessment
// @Tags assessments
// @Param id path uint true "Assessment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting assessment", "assessment_id", id)

	if err := h.assessmentService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Assessment deleted successfully",
	})
}

// GetAssessmentExercises draws a random exercise set for a course
// @Summary Compose assessment exercises
// @Tags assessments
// @Accept json
// @Produce json
// @Param config body services.QuestionConfigRequest true "Course and number of questions"
// @Success 200 {array} models.AssessmentExercise
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /assessments/exercises [post]
func (h *AssessmentHandler) GetAssessmentExercises(c *gin.Context) {
	var req services.QuestionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Composing assessment exercises", "course_id", req.CourseID)

	exercises, err := h.assessmentService.ComposeAssessmentExercises(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// SubmitAssessment scores a list of answered exercises
// @Summary Submit answers
// @Tags assessments
// @Accept json
// @Produce json
// @Param answers body []models.AssessmentExercise true "Answered exercises"
// @Success 200 {object} models.SubmissionStats
// @Failure 400 {object} ErrorResponse
// @Router /assessments/submit [post]
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var submitted services.SubmissionRequest
	if err := c.ShouldBindJSON(&submitted); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Scoring submission", "items", len(submitted))

	stats, err := h.assessmentService.ScoreSubmission(c.Request.Context(), submitted)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportAssessments downloads all assessments as a spreadsheet
// @Summary Export assessments
// @Tags assessments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /assessments/export [get]
func (h *AssessmentHandler) ExportAssessments(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.assessmentService.Export(c.Request.Context(), &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="assessments.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *AssessmentHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	// Composition failures wrap their cause, so they are matched first
	var compositionError *services.CompositionError
	if errors.As(err, &compositionError) {
		h.LogError(c, err, "Exercise composition failed", "stage", compositionError.Stage)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "No exercise content available",
			Details: map[string]interface{}{
				"stage": compositionError.Stage,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAssessmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Assessment not found",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Course not found",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrAssessmentHasID):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "A new assessment cannot already have an ID",
		})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Bad request",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrAssessmentCourseTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Course already has an assessment",
			Details: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
