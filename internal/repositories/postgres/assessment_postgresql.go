package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/cache"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

type AssessmentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager

	// afterCommit runs cache invalidation once the surrounding transaction
	// (if any) has committed
	afterCommit func(func())
}

func NewAssessmentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager, afterCommit func(func())) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
		afterCommit:  afterCommit,
	}
}

// Create inserts a new assessment and invalidates the course lookup
func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	if err := a.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return wrapWriteError("create", err)
	}

	id, courseID := assessment.ID, assessment.CourseID
	a.afterCommit(func() {
		cache.InvalidateAssessmentCache(ctx, a.cacheManager, id, courseID)
	})

	return nil
}

// GetByID retrieves an assessment by ID with caching
func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment

	err := a.cacheManager.Assessment.CacheOrExecute(ctx, cache.AssessmentIDKey(id), &assessment, cache.AssessmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessment models.Assessment
		if err := a.db.WithContext(ctx).First(&dbAssessment, id).Error; err != nil {
			return nil, wrapLookupError("assessment", err)
		}
		return &dbAssessment, nil
	})
	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

// GetByCourseID retrieves the single assessment of a course with caching
func (a *AssessmentPostgreSQL) GetByCourseID(ctx context.Context, courseID uint) (*models.Assessment, error) {
	var assessment models.Assessment

	err := a.cacheManager.Assessment.CacheOrExecute(ctx, cache.AssessmentCourseKey(courseID), &assessment, cache.AssessmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssessment models.Assessment
		if err := a.db.WithContext(ctx).Where("course_id = ?", courseID).First(&dbAssessment).Error; err != nil {
			return nil, wrapLookupError("assessment for course", err)
		}
		return &dbAssessment, nil
	})
	if err != nil {
		return nil, err
	}

	return &assessment, nil
}

// Update saves an existing assessment and invalidates both course lookups
func (a *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	var current models.Assessment
	if err := a.db.WithContext(ctx).Select("id, course_id").First(&current, assessment.ID).Error; err != nil {
		return wrapLookupError("assessment", err)
	}

	if err := a.db.WithContext(ctx).Model(&models.Assessment{}).Where("id = ?", assessment.ID).Updates(map[string]interface{}{
		"course_id": assessment.CourseID,
	}).Error; err != nil {
		return wrapWriteError("update", err)
	}

	if err := a.db.WithContext(ctx).First(assessment, assessment.ID).Error; err != nil {
		return fmt.Errorf("failed to reload assessment: %w", err)
	}

	newCourseID := assessment.CourseID
	a.afterCommit(func() {
		cache.InvalidateAssessmentCache(ctx, a.cacheManager, current.ID, current.CourseID)
		cache.SafeDelete(ctx, a.cacheManager.Assessment, cache.AssessmentCourseKey(newCourseID))
	})

	return nil
}

// Delete hard deletes an assessment
func (a *AssessmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).Select("id, course_id").First(&assessment, id).Error; err != nil {
		return wrapLookupError("assessment", err)
	}

	if err := a.db.WithContext(ctx).Delete(&models.Assessment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	a.afterCommit(func() {
		cache.InvalidateAssessmentCache(ctx, a.cacheManager, id, assessment.CourseID)
	})

	return nil
}

// List retrieves every assessment ordered by ID
func (a *AssessmentPostgreSQL) List(ctx context.Context) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	if err := a.db.WithContext(ctx).Order("id ASC").Find(&assessments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// wrapWriteError maps a unique constraint violation onto repositories.ErrDuplicate
func wrapWriteError(op string, err error) error {
	if repositories.IsDuplicateError(err) {
		return fmt.Errorf("failed to %s assessment: %w", op, repositories.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s assessment: %w", op, err)
}

func runNow(fn func()) {
	fn()
}

// wrapLookupError maps gorm's not-found error onto repositories.ErrNotFound
func wrapLookupError(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
