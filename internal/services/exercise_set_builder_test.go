package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
)

// seedCourse builds course 1 with topics 10 and 11 holding exercises 100, 101 and 102
// rendered through templates 7 and 8, and an assessment for the course.
func seedCourse(t *testing.T, repo *fakeRepository) *models.Assessment {
	t.Helper()
	c := repo.catalog
	c.addCourse(1)
	c.addTopic(10, 1)
	c.addTopic(11, 1)
	c.addTemplate(7, "mcq")
	c.addTemplate(8, "free text")
	c.addExercise(100, 10, 7, "a")
	c.addExercise(101, 10, 8, "b")
	c.addExercise(102, 11, 7, "c")

	a := &models.Assessment{CourseID: 1}
	if err := repo.assessments.Create(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestExerciseSetBuilder_Build(t *testing.T) {
	repo := newFakeRepository()
	assessment := seedCourse(t, repo)

	got, err := NewExerciseSetBuilder(repo.Assessment(), repo.Catalog()).Build(context.Background(), 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantIDs := []uint{100, 101, 102}
	if len(got) != len(wantIDs) {
		t.Fatalf("Build() returned %d exercises, want %d", len(got), len(wantIDs))
	}
	for i, ae := range got {
		if ae.ExerciseID != wantIDs[i] {
			t.Errorf("exercise %d = %d, want %d", i, ae.ExerciseID, wantIDs[i])
		}
		if ae.AssessmentID != assessment.ID || ae.CourseID != 1 {
			t.Errorf("exercise %d assessment = %d/%d", i, ae.AssessmentID, ae.CourseID)
		}
	}
	if got[1].TemplateContent != "free text" || got[2].TemplateContent != "mcq" {
		t.Errorf("templates not joined: %+v", got)
	}

	// template 7 is shared by two exercises and fetched once
	if calls := repo.catalog.templateCalls[7]; calls != 1 {
		t.Errorf("template 7 fetched %d times, want 1", calls)
	}
}

func TestExerciseSetBuilder_ExerciseEmittedOnce(t *testing.T) {
	repo := newFakeRepository()
	seedCourse(t, repo)
	// the same exercise row listed under a second topic
	repo.catalog.exercises[11] = append(repo.catalog.exercises[11], repo.catalog.exercises[10][0])

	got, err := NewExerciseSetBuilder(repo.Assessment(), repo.Catalog()).Build(context.Background(), 1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Build() returned %d exercises, want 3", len(got))
	}
}

func TestExerciseSetBuilder_EmptyCourse(t *testing.T) {
	repo := newFakeRepository()
	repo.catalog.addCourse(2)
	if err := repo.assessments.Create(context.Background(), &models.Assessment{CourseID: 2}); err != nil {
		t.Fatal(err)
	}

	got, err := NewExerciseSetBuilder(repo.Assessment(), repo.Catalog()).Build(context.Background(), 2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Build() = %v, want empty non-nil slice", got)
	}
}

func TestExerciseSetBuilder_Errors(t *testing.T) {
	errDB := errors.New("connection reset")

	tests := []struct {
		name      string
		setup     func(repo *fakeRepository)
		courseID  uint
		wantErr   error
		wantStage string
	}{
		{
			name:     "no assessment for course",
			setup:    func(repo *fakeRepository) {},
			courseID: 5,
			wantErr:  ErrAssessmentNotFound,
		},
		{
			name:      "assessment lookup fails",
			setup:     func(repo *fakeRepository) { repo.assessments.err = errDB },
			courseID:  1,
			wantErr:   errDB,
			wantStage: "assessment",
		},
		{
			name:      "topic lookup fails",
			setup:     func(repo *fakeRepository) { repo.catalog.topicsErr = errDB },
			courseID:  1,
			wantErr:   errDB,
			wantStage: "topics",
		},
		{
			name:      "exercise lookup fails",
			setup:     func(repo *fakeRepository) { repo.catalog.exercisesErr = errDB },
			courseID:  1,
			wantErr:   errDB,
			wantStage: "exercises",
		},
		{
			name:      "template missing",
			setup:     func(repo *fakeRepository) { delete(repo.catalog.templates, 8) },
			courseID:  1,
			wantErr:   ErrTemplateNotFound,
			wantStage: "template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seedCourse(t, repo)
			tt.setup(repo)

			got, err := NewExerciseSetBuilder(repo.Assessment(), repo.Catalog()).Build(context.Background(), tt.courseID)
			if got != nil {
				t.Errorf("Build() returned partial result %v", got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}

			var compErr *CompositionError
			isComp := errors.As(err, &compErr)
			if tt.wantStage == "" {
				if isComp {
					t.Errorf("Build() error = %v, should not be a composition failure", err)
				}
				return
			}
			if !isComp || compErr.Stage != tt.wantStage {
				t.Errorf("Build() error = %v, want composition failure at %q", err, tt.wantStage)
			}
			if !errors.Is(err, ErrCompositionFailed) {
				t.Errorf("Build() error = %v, should match ErrCompositionFailed", err)
			}
		})
	}
}
