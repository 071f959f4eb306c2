package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/repositories"
)

const exportSheet = "Assessments"

var exportHeader = []interface{}{"ID", "Course ID", "Exercises", "Complete"}

func (s *assessmentService) Export(ctx context.Context, w io.Writer) error {
	details, err := s.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, d := range details {
		exercises, err := countExercises(ctx, s.repo.Catalog(), d.CourseID)
		if err != nil {
			return err
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{d.ID, d.CourseID, exercises, strconv.FormatBool(d.Complete)}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Assessments exported", "count", len(details))
	return nil
}

// countExercises counts the distinct exercises reachable from the course's topics
func countExercises(ctx context.Context, catalog repositories.CatalogRepository, courseID uint) (int, error) {
	topics, err := catalog.FindTopicsByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to list topics for course %d: %w", courseID, err)
	}

	seen := make(map[uint]struct{})
	for _, topic := range topics {
		exercises, err := catalog.FindExercisesByTopic(ctx, topic.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to list exercises for topic %d: %w", topic.ID, err)
		}
		for _, e := range exercises {
			seen[e.ID] = struct{}{}
		}
	}
	return len(seen), nil
}
