package domain

import "context"

// ListFilter selects a page of questions. ExamType chooses the collection,
// Topic is required, Subtopic narrows within the topic when non-empty.
type ListFilter struct {
	ExamType ExamType
	Topic    string
	Subtopic string
	Limit    int
	Offset   int
}

// QuestionRepository is the storage port for exam questions. Implementations
// wrap driver errors with context but do not classify them; classification
// into the error taxonomy is the service's job.
type QuestionRepository interface {
	// List returns the filtered page, most recent first. Zero matches yield
	// an empty non-nil slice, not an error.
	List(ctx context.Context, filter ListFilter) ([]*Question, error)

	// Count returns the total number of questions matching the filter,
	// ignoring Limit/Offset.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// GetByID returns nil, nil when no question has the given ID.
	GetByID(ctx context.Context, examType ExamType, id string) (*Question, error)

	// Create persists the question. The caller has already validated it and
	// assigned an ID.
	Create(ctx context.Context, q *Question) error
}
