package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

// SeedFile is the YAML layout of a catalog seed
type SeedFile struct {
	Templates []TemplateFile `yaml:"templates"`
	Courses   []CourseFile   `yaml:"courses"`
}

type TemplateFile struct {
	ID      uint   `yaml:"id"`
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

type CourseFile struct {
	ID     uint        `yaml:"id"`
	Name   string      `yaml:"name"`
	Topics []TopicFile `yaml:"topics"`
}

type TopicFile struct {
	ID        uint           `yaml:"id"`
	Name      string         `yaml:"name"`
	Exercises []ExerciseFile `yaml:"exercises"`
}

type ExerciseFile struct {
	ID            uint                   `yaml:"id"`
	TemplateID    uint                   `yaml:"template_id"`
	Question      string                 `yaml:"question"`
	CorrectAnswer string                 `yaml:"correct_answer"`
	Content       map[string]interface{} `yaml:"content"`
}

// Summary counts what a seed wrote
type Summary struct {
	Templates int
	Courses   int
	Topics    int
	Exercises int
}

// Loader upserts a YAML catalog seed through the catalog repository
type Loader struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewLoader(repo repositories.Repository, logger *slog.Logger) *Loader {
	return &Loader{repo: repo, logger: logger}
}

// LoadFile reads and checks a seed file
func LoadFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := seed.validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// validate rejects zero and duplicate IDs
func (s *SeedFile) validate() error {
	templates := map[uint]bool{}
	for _, t := range s.Templates {
		if t.ID == 0 {
			return fmt.Errorf("template %q: id is required", t.Name)
		}
		if templates[t.ID] {
			return fmt.Errorf("template %d: duplicate id", t.ID)
		}
		templates[t.ID] = true
	}

	courses, topics, exercises := map[uint]bool{}, map[uint]bool{}, map[uint]bool{}
	for _, c := range s.Courses {
		if c.ID == 0 || courses[c.ID] {
			return fmt.Errorf("course %q: missing or duplicate id %d", c.Name, c.ID)
		}
		courses[c.ID] = true

		for _, t := range c.Topics {
			if t.ID == 0 || topics[t.ID] {
				return fmt.Errorf("topic %q: missing or duplicate id %d", t.Name, t.ID)
			}
			topics[t.ID] = true

			for _, e := range t.Exercises {
				if e.ID == 0 || exercises[e.ID] {
					return fmt.Errorf("exercise in topic %d: missing or duplicate id %d", t.ID, e.ID)
				}
				if e.TemplateID == 0 {
					return fmt.Errorf("exercise %d: template_id is required", e.ID)
				}
				exercises[e.ID] = true
			}
		}
	}
	return nil
}

// Seed writes the whole file in one transaction
func (l *Loader) Seed(ctx context.Context, seed *SeedFile) (Summary, error) {
	var summary Summary

	err := l.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		summary = Summary{}
		catalog := tx.Catalog()

		for _, t := range seed.Templates {
			if err := catalog.UpsertTemplate(ctx, &models.Template{ID: t.ID, Name: t.Name, Content: t.Content}); err != nil {
				return fmt.Errorf("upsert template %d: %w", t.ID, err)
			}
			summary.Templates++
		}

		for _, c := range seed.Courses {
			if err := catalog.UpsertCourse(ctx, &models.Course{ID: c.ID, Name: c.Name}); err != nil {
				return fmt.Errorf("upsert course %d: %w", c.ID, err)
			}
			summary.Courses++

			for _, t := range c.Topics {
				if err := catalog.UpsertTopic(ctx, &models.Topic{ID: t.ID, CourseID: c.ID, Name: t.Name}); err != nil {
					return fmt.Errorf("upsert topic %d: %w", t.ID, err)
				}
				summary.Topics++

				for _, e := range t.Exercises {
					exercise, err := e.toModel(t.ID)
					if err != nil {
						return err
					}
					if err := catalog.UpsertExercise(ctx, exercise); err != nil {
						return fmt.Errorf("upsert exercise %d: %w", e.ID, err)
					}
					summary.Exercises++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	// Reads during the transaction may have re-cached old rows
	l.repo.Catalog().InvalidateCache(ctx)

	l.logger.Info("Catalog seeded",
		"templates", summary.Templates,
		"courses", summary.Courses,
		"topics", summary.Topics,
		"exercises", summary.Exercises,
	)
	return summary, nil
}

// SeedFromFile loads path and seeds it
func (l *Loader) SeedFromFile(ctx context.Context, path string) (Summary, error) {
	seed, err := LoadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return l.Seed(ctx, seed)
}

func (e ExerciseFile) toModel(topicID uint) (*models.Exercise, error) {
	exercise := &models.Exercise{
		ID:            e.ID,
		TopicID:       topicID,
		TemplateID:    e.TemplateID,
		Question:      e.Question,
		CorrectAnswer: e.CorrectAnswer,
	}
	if len(e.Content) > 0 {
		raw, err := json.Marshal(e.Content)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: encode content: %w", e.ID, err)
		}
		exercise.Content = datatypes.JSON(raw)
	}
	return exercise, nil
}
