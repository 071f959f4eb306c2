package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/services"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/utils"
)

const serviceName = "assessment-service"

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	health            func(ctx context.Context) error
	logger            utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), logger),
		health:            serviceManager.HealthCheck,
		logger:            logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.PUT("", hm.assessmentHandler.UpdateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/export", hm.assessmentHandler.ExportAssessments)

			// Composition and scoring
			assessments.POST("/exercises", hm.assessmentHandler.GetAssessmentExercises)
			assessments.POST("/submit", hm.assessmentHandler.SubmitAssessment)

			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.GET("/:id/completeness", hm.assessmentHandler.GetCompleteness)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
		}
	}
}

// HealthCheck reports liveness and the state of the database and cache
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	}

	if err := hm.health(ctx); err != nil {
		utils.GetLogger(c, hm.logger).Warn("Health check failed", "error", err)
		body["status"] = "unhealthy"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}
