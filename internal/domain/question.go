package domain

import (
	"fmt"
	"time"
)

// ExamType selects between the two parallel question collections.
type ExamType string

const (
	ExamTypeStep1 ExamType = "step1"
	ExamTypeStep2 ExamType = "step2"
)

// ParseExamType returns the ExamType for s, or false if s names no known exam.
func ParseExamType(s string) (ExamType, bool) {
	switch ExamType(s) {
	case ExamTypeStep1:
		return ExamTypeStep1, true
	case ExamTypeStep2:
		return ExamTypeStep2, true
	default:
		return "", false
	}
}

// PatientDetails is the structured patient presentation attached to a
// Step-2 question.
type PatientDetails struct {
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	Setting     string `json:"setting"`
	ChiefReport string `json:"chief_report"`
	History     string `json:"history"`
	Vitals      string `json:"vitals"`
}

// Step2Details is the payload carried only by Step-2 questions. A Question
// whose ExamType is ExamTypeStep2 has a non-nil Step2 field; every other
// question has nil. Consumers switch on ExamType rather than probing fields.
type Step2Details struct {
	BaseQuestion     string         `json:"base_question"`
	Patient          PatientDetails `json:"patient"`
	ComposedQuestion string         `json:"composed_question"`
	ShelfSubject     string         `json:"shelf_subject"`
}

// Question is a canonical exam item.
//
// The correctness contract is by value: Answer must equal one of Choices
// exactly. Duplicate choice text would make two options simultaneously
// correct, so Validate rejects duplicates at ingestion.
type Question struct {
	ID          string
	ExamType    ExamType
	Topic       string
	Subtopic    string
	Question    string
	Choices     []string
	Answer      string
	Explanation string
	Source      string
	Embedding   []float32 // stored, not consumed by any read path
	CreatedAt   time.Time
	Step2       *Step2Details
}

// NewQuestion creates a new Step-1 Question instance
func NewQuestion(topic, subtopic, question string, choices []string, answer, explanation, source string) *Question {
	return &Question{
		ExamType:    ExamTypeStep1,
		Topic:       topic,
		Subtopic:    subtopic,
		Question:    question,
		Choices:     choices,
		Answer:      answer,
		Explanation: explanation,
		Source:      source,
		CreatedAt:   time.Now(),
	}
}

// CorrectChoice returns the index of the choice equal to Answer, or false
// when no choice matches.
func (q *Question) CorrectChoice() (int, bool) {
	for i, c := range q.Choices {
		if c == q.Answer {
			return i, true
		}
	}
	return 0, false
}

// Validate validates the question for ingestion.
func (q *Question) Validate() error {
	var errs ValidationErrors
	if q.Topic == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	}
	if q.Question == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if len(q.Choices) < 2 {
		errs = append(errs, ValidationError{Field: "choices", Message: "at least two choices are required"})
	}
	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if seen[c] {
			errs = append(errs, ValidationError{Field: "choices", Message: fmt.Sprintf("duplicate choice %q", c)})
			break
		}
		seen[c] = true
	}
	if q.Answer == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	} else if _, ok := q.CorrectChoice(); !ok {
		errs = append(errs, ValidationError{Field: "answer", Message: "must equal one of the choices"})
	}
	if q.Explanation == "" {
		errs = append(errs, NewMissingFieldError("explanation"))
	}
	if q.Source == "" {
		errs = append(errs, NewMissingFieldError("source"))
	}
	if q.ExamType == ExamTypeStep2 && q.Step2 == nil {
		errs = append(errs, ValidationError{Field: "step2", Message: "step2 questions require step2 details"})
	}
	if q.ExamType != ExamTypeStep2 && q.Step2 != nil {
		errs = append(errs, ValidationError{Field: "step2", Message: "only step2 questions carry step2 details"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
