package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateAssessmentCache drops the id and course lookups of an assessment
func InvalidateAssessmentCache(ctx context.Context, cm *CacheManager, assessmentID, courseID uint) {
	SafeDelete(ctx, cm.Assessment,
		AssessmentIDKey(assessmentID),
		AssessmentCourseKey(courseID))
}

// InvalidateCatalogCache drops every cached catalog row
func InvalidateCatalogCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Catalog, "*")
}

func AssessmentIDKey(id uint) string {
	return fmt.Sprintf("id:%d", id)
}

func AssessmentCourseKey(courseID uint) string {
	return fmt.Sprintf("course:%d", courseID)
}

func TemplateKey(id uint) string {
	return fmt.Sprintf("template:%d", id)
}

func CourseKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}
