package services

import (
	"testing"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
)

func answered(correct, given string) models.AssessmentExercise {
	return models.AssessmentExercise{ExerciseID: 1, CorrectAnswer: correct, UserAnswer: given}
}

func TestScoreSubmission(t *testing.T) {
	tests := []struct {
		name        string
		submitted   []models.AssessmentExercise
		wantTotal   int
		wantCorrect int
	}{
		{name: "empty", submitted: nil, wantTotal: 0, wantCorrect: 0},
		{
			name: "three of five",
			submitted: []models.AssessmentExercise{
				answered("4", "4"),
				answered("paris", "Paris"),
				answered("x=2", " x=2 "),
				answered("7", "8"),
				answered("true", "false"),
			},
			wantTotal:   5,
			wantCorrect: 3,
		},
		{
			name:        "blank answer is wrong",
			submitted:   []models.AssessmentExercise{answered("", ""), answered("a", "   ")},
			wantTotal:   2,
			wantCorrect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ScoreSubmission(tt.submitted)
			if len(stats) != 2 {
				t.Errorf("ScoreSubmission() has %d metrics, want 2", len(stats))
			}
			if stats.Total() != tt.wantTotal || stats.Correct() != tt.wantCorrect {
				t.Errorf("ScoreSubmission() = %v, want total=%d correct=%d", stats, tt.wantTotal, tt.wantCorrect)
			}
		})
	}
}
