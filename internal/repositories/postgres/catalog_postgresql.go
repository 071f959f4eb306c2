package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/cache"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

// CatalogPostgreSQL reads the course -> topic -> exercise -> template hierarchy.
// Templates and courses are cached since many exercises share one template.
type CatalogPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
	ttl          time.Duration
}

func NewCatalogPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager, ttl time.Duration) repositories.CatalogRepository {
	return &CatalogPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
		ttl:          ttl,
	}
}

func (c *CatalogPostgreSQL) GetCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course

	err := c.cacheManager.Catalog.CacheOrExecute(ctx, cache.CourseKey(courseID), &course, c.ttl, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).First(&dbCourse, courseID).Error; err != nil {
			return nil, wrapLookupError("course", err)
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// FindTopicsByCourse returns topics in insertion order
func (c *CatalogPostgreSQL) FindTopicsByCourse(ctx context.Context, courseID uint) ([]*models.Topic, error) {
	var topics []*models.Topic
	if err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to get topics for course %d: %w", courseID, err)
	}
	return topics, nil
}

// FindExercisesByTopic returns exercises in insertion order
func (c *CatalogPostgreSQL) FindExercisesByTopic(ctx context.Context, topicID uint) ([]*models.Exercise, error) {
	var exercises []*models.Exercise
	if err := c.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("id ASC").
		Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to get exercises for topic %d: %w", topicID, err)
	}
	return exercises, nil
}

func (c *CatalogPostgreSQL) FindTemplateByID(ctx context.Context, templateID uint) (*models.Template, error) {
	var template models.Template

	err := c.cacheManager.Catalog.CacheOrExecute(ctx, cache.TemplateKey(templateID), &template, c.ttl, func() (interface{}, error) {
		var dbTemplate models.Template
		if err := c.db.WithContext(ctx).First(&dbTemplate, templateID).Error; err != nil {
			return nil, wrapLookupError("template", err)
		}
		return &dbTemplate, nil
	})
	if err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *CatalogPostgreSQL) UpsertCourse(ctx context.Context, course *models.Course) error {
	if err := c.upsert(ctx, course, "name"); err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}
	cache.SafeDelete(ctx, c.cacheManager.Catalog, cache.CourseKey(course.ID))
	return nil
}

func (c *CatalogPostgreSQL) UpsertTopic(ctx context.Context, topic *models.Topic) error {
	if err := c.upsert(ctx, topic, "course_id", "name"); err != nil {
		return fmt.Errorf("failed to upsert topic: %w", err)
	}
	return nil
}

func (c *CatalogPostgreSQL) UpsertExercise(ctx context.Context, exercise *models.Exercise) error {
	if err := c.upsert(ctx, exercise, "topic_id", "template_id", "question", "content", "correct_answer"); err != nil {
		return fmt.Errorf("failed to upsert exercise: %w", err)
	}
	return nil
}

func (c *CatalogPostgreSQL) UpsertTemplate(ctx context.Context, template *models.Template) error {
	if err := c.upsert(ctx, template, "name", "content"); err != nil {
		return fmt.Errorf("failed to upsert template: %w", err)
	}
	cache.SafeDelete(ctx, c.cacheManager.Catalog, cache.TemplateKey(template.ID))
	return nil
}

func (c *CatalogPostgreSQL) InvalidateCache(ctx context.Context) {
	cache.InvalidateCatalogCache(ctx, c.cacheManager)
}

func (c *CatalogPostgreSQL) upsert(ctx context.Context, value interface{}, columns ...string) error {
	columns = append(columns, "updated_at")
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(value).Error
}
