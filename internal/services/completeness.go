package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

const (
	PolicyTopicCoverage = "topic_coverage"
	PolicyHasExercises  = "has_exercises"
)

// CompletenessPolicy decides whether the course behind an assessment has enough
// content for the assessment to be considered complete.
type CompletenessPolicy interface {
	Name() string
	IsComplete(ctx context.Context, catalog repositories.CatalogRepository, courseID uint) (bool, error)
}

var completenessPolicies = map[string]func() CompletenessPolicy{
	PolicyTopicCoverage: func() CompletenessPolicy { return topicCoveragePolicy{} },
	PolicyHasExercises:  func() CompletenessPolicy { return hasExercisesPolicy{} },
}

// NewCompletenessPolicy looks a policy up by name
func NewCompletenessPolicy(name string) (CompletenessPolicy, error) {
	factory, ok := completenessPolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown completeness policy %q (known: %v)", name, CompletenessPolicyNames())
	}
	return factory(), nil
}

func CompletenessPolicyNames() []string {
	names := make([]string, 0, len(completenessPolicies))
	for name := range completenessPolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// topicCoveragePolicy: at least one topic, and every topic has at least one exercise.
type topicCoveragePolicy struct{}

func (topicCoveragePolicy) Name() string { return PolicyTopicCoverage }

func (topicCoveragePolicy) IsComplete(ctx context.Context, catalog repositories.CatalogRepository, courseID uint) (bool, error) {
	topics, err := catalog.FindTopicsByCourse(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		return false, nil
	}

	for _, topic := range topics {
		exercises, err := catalog.FindExercisesByTopic(ctx, topic.ID)
		if err != nil {
			return false, fmt.Errorf("failed to list exercises for topic %d: %w", topic.ID, err)
		}
		if len(exercises) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// hasExercisesPolicy: any topic of the course has an exercise.
type hasExercisesPolicy struct{}

func (hasExercisesPolicy) Name() string { return PolicyHasExercises }

func (hasExercisesPolicy) IsComplete(ctx context.Context, catalog repositories.CatalogRepository, courseID uint) (bool, error) {
	topics, err := catalog.FindTopicsByCourse(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to list topics: %w", err)
	}

	for _, topic := range topics {
		exercises, err := catalog.FindExercisesByTopic(ctx, topic.ID)
		if err != nil {
			return false, fmt.Errorf("failed to list exercises for topic %d: %w", topic.ID, err)
		}
		if len(exercises) > 0 {
			return true, nil
		}
	}
	return false, nil
}
