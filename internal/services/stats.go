package services

import (
	"strings"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/models"
)

// ScoreSubmission counts answered items and the ones matching the expected answer.
func ScoreSubmission(submitted []models.AssessmentExercise) models.SubmissionStats {
	stats := models.SubmissionStats{
		models.MetricTotal:   0,
		models.MetricCorrect: 0,
	}
	for _, item := range submitted {
		stats[models.MetricTotal]++
		if answersMatch(item.UserAnswer, item.CorrectAnswer) {
			stats[models.MetricCorrect]++
		}
	}
	return stats
}

// A blank answer never counts as correct.
func answersMatch(given, expected string) bool {
	given = strings.TrimSpace(given)
	if given == "" {
		return false
	}
	return strings.EqualFold(given, strings.TrimSpace(expected))
}
