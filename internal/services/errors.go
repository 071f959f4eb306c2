package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/lms-assessment-engine/internal/validator"
)

var (
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrCourseNotFound        = errors.New("course not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrCompositionFailed     = errors.New("exercise composition failed")
	ErrAssessmentHasID       = errors.New("a new assessment cannot already have an ID")
	ErrAssessmentCourseTaken = errors.New("course already has an assessment")
)

// ValidationErrors is the request validation failure returned by services
type ValidationErrors = validator.ValidationErrors

// CompositionError reports which lookup of the course -> topic -> exercise -> template
// join failed. It matches both ErrCompositionFailed and the underlying cause.
type CompositionError struct {
	Stage string
	Err   error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCompositionFailed.Error(), e.Stage, e.Err)
}

func (e *CompositionError) Unwrap() []error {
	return []error{ErrCompositionFailed, e.Err}
}

func newCompositionError(stage string, err error) error {
	return &CompositionError{Stage: stage, Err: err}
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
