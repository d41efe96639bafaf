package validation

import (
	"strconv"
	"strings"

	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/taxonomy"
)

const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 100
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateListParams parses and validates the raw list-questions parameters.
// Every violated field is reported; the filter is only meaningful when the
// returned ValidationErrors is empty. Out-of-range limits fail rather than
// silently clamping.
func (v *Validator) ValidateListParams(req dto.ListQuestionsRequest) (domain.ListFilter, domain.ValidationErrors) {
	var errs domain.ValidationErrors
	filter := domain.ListFilter{
		ExamType: domain.ExamTypeStep1,
		Limit:    DefaultLimit,
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errs = append(errs, domain.NewMissingFieldError("topic"))
	} else if !taxonomy.IsValidTopic(topic) {
		errs = append(errs, domain.NewInvalidFormatError("topic", topic))
	} else {
		filter.Topic = topic

		if subtopic := strings.TrimSpace(req.Subtopic); subtopic != "" {
			if !taxonomy.IsValidSubtopic(topic, subtopic) {
				errs = append(errs, domain.NewInvalidFormatError("subtopic", subtopic))
			} else {
				filter.Subtopic = subtopic
			}
		}
	}

	if req.ExamType != "" {
		examType, ok := domain.ParseExamType(req.ExamType)
		if !ok {
			errs = append(errs, domain.NewInvalidFormatError("exam_type", req.ExamType))
		} else {
			filter.ExamType = examType
		}
	}

	if req.Limit != "" {
		limit, err := strconv.Atoi(req.Limit)
		if err != nil {
			errs = append(errs, domain.NewInvalidFormatError("limit", req.Limit))
		} else if limit < MinLimit || limit > MaxLimit {
			errs = append(errs, domain.NewOutOfRangeError("limit", limit, MinLimit, MaxLimit))
		} else {
			filter.Limit = limit
		}
	}

	if req.Offset != "" {
		offset, err := strconv.Atoi(req.Offset)
		if err != nil {
			errs = append(errs, domain.NewInvalidFormatError("offset", req.Offset))
		} else if offset < 0 {
			errs = append(errs, domain.ValidationError{Field: "offset", Message: "must not be negative"})
		} else {
			filter.Offset = offset
		}
	}

	return filter, errs
}

// ValidateCreateQuestion validates the taxonomy fields of an ingestion
// request. Structural validation (choices, answer membership) lives on
// domain.Question.Validate.
func (v *Validator) ValidateCreateQuestion(req *dto.CreateQuestionRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		errs = append(errs, domain.NewMissingFieldError("topic"))
	} else if !taxonomy.IsValidTopic(topic) {
		errs = append(errs, domain.NewInvalidFormatError("topic", topic))
	} else if subtopic := strings.TrimSpace(req.Subtopic); subtopic != "" && !taxonomy.IsValidSubtopic(topic, subtopic) {
		errs = append(errs, domain.NewInvalidFormatError("subtopic", subtopic))
	}

	if req.ExamType != "" {
		if _, ok := domain.ParseExamType(req.ExamType); !ok {
			errs = append(errs, domain.NewInvalidFormatError("exam_type", req.ExamType))
		}
	}

	return errs
}
