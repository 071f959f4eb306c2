package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory repositories.Repository
type fakeRepository struct {
	assessments *fakeAssessmentRepo
	catalog     *fakeCatalog
	pingErr     error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		assessments: &fakeAssessmentRepo{rows: map[uint]*models.Assessment{}},
		catalog: &fakeCatalog{
			courses:   map[uint]*models.Course{},
			templates: map[uint]*models.Template{},
			exercises: map[uint][]*models.Exercise{},
		},
	}
}

func (r *fakeRepository) Assessment() repositories.AssessmentRepository { return r.assessments }
func (r *fakeRepository) Catalog() repositories.CatalogRepository       { return r.catalog }
func (r *fakeRepository) Ping(ctx context.Context) error                { return r.pingErr }
func (r *fakeRepository) Close() error                                  { return nil }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

type fakeAssessmentRepo struct {
	mu     sync.Mutex
	rows   map[uint]*models.Assessment
	nextID uint
	err    error

	// writeErr fails Create and Update only
	writeErr error
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, a *models.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssessmentRepo) Update(ctx context.Context, a *models.Assessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.rows[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAssessmentRepo) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAssessmentRepo) List(ctx context.Context) ([]*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Assessment, 0, len(f.rows))
	for _, a := range f.rows {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssessmentRepo) GetByCourseID(ctx context.Context, courseID uint) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.rows {
		if a.CourseID == courseID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// fakeCatalog serves a fixed course -> topic -> exercise -> template tree
type fakeCatalog struct {
	mu        sync.Mutex
	courses   map[uint]*models.Course
	topics    []*models.Topic
	exercises map[uint][]*models.Exercise
	templates map[uint]*models.Template

	topicsErr     error
	exercisesErr  error
	templateErr   error
	templateCalls map[uint]int
}

func (c *fakeCatalog) addCourse(id uint) {
	c.courses[id] = &models.Course{ID: id, Name: "course"}
}

func (c *fakeCatalog) addTopic(id, courseID uint) {
	c.topics = append(c.topics, &models.Topic{ID: id, CourseID: courseID})
}

func (c *fakeCatalog) addExercise(id, topicID, templateID uint, answer string) {
	c.exercises[topicID] = append(c.exercises[topicID], &models.Exercise{
		ID: id, TopicID: topicID, TemplateID: templateID, Question: "q", CorrectAnswer: answer,
	})
}

func (c *fakeCatalog) addTemplate(id uint, content string) {
	c.templates[id] = &models.Template{ID: id, Name: "tpl", Content: content}
}

func (c *fakeCatalog) GetCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	course, ok := c.courses[courseID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

func (c *fakeCatalog) FindTopicsByCourse(ctx context.Context, courseID uint) ([]*models.Topic, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.topicsErr != nil {
		return nil, c.topicsErr
	}
	var out []*models.Topic
	for _, t := range c.topics {
		if t.CourseID == courseID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindExercisesByTopic(ctx context.Context, topicID uint) ([]*models.Exercise, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exercisesErr != nil {
		return nil, c.exercisesErr
	}
	return c.exercises[topicID], nil
}

func (c *fakeCatalog) FindTemplateByID(ctx context.Context, templateID uint) (*models.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.templateCalls == nil {
		c.templateCalls = map[uint]int{}
	}
	c.templateCalls[templateID]++
	if c.templateErr != nil {
		return nil, c.templateErr
	}
	tpl, ok := c.templates[templateID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return tpl, nil
}

func (c *fakeCatalog) UpsertCourse(ctx context.Context, course *models.Course) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.courses[course.ID] = course
	return nil
}

func (c *fakeCatalog) UpsertTopic(ctx context.Context, topic *models.Topic) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	return nil
}

func (c *fakeCatalog) UpsertExercise(ctx context.Context, exercise *models.Exercise) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exercises[exercise.TopicID] = append(c.exercises[exercise.TopicID], exercise)
	return nil
}

func (c *fakeCatalog) InvalidateCache(ctx context.Context) {}

func (c *fakeCatalog) UpsertTemplate(ctx context.Context, template *models.Template) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[template.ID] = template
	return nil
}
