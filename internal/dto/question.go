package dto

import "time"

// ListQuestionsRequest carries the raw, unparsed query parameters of a list
// call. Parsing and validation happen in the service layer so that every
// violation is reported, not just the first.
type ListQuestionsRequest struct {
	Topic    string
	Subtopic string
	ExamType string
	Limit    string
	Offset   string
}

// PatientDetailsDTO mirrors domain.PatientDetails on the wire.
type PatientDetailsDTO struct {
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	Setting     string `json:"setting"`
	ChiefReport string `json:"chief_report"`
	History     string `json:"history"`
	Vitals      string `json:"vitals"`
}

// Step2DetailsDTO is present only on step2 questions.
type Step2DetailsDTO struct {
	BaseQuestion     string            `json:"base_question"`
	Patient          PatientDetailsDTO `json:"patient"`
	ComposedQuestion string            `json:"composed_question"`
	ShelfSubject     string            `json:"shelf_subject"`
}

// QuestionResponse represents a question in the API response
// @Description Exam question with choices and the correct answer
type QuestionResponse struct {
	ID          string           `json:"id"`
	ExamType    string           `json:"exam_type"`
	Topic       string           `json:"topic"`
	Subtopic    string           `json:"subtopic,omitempty"`
	Question    string           `json:"question"`
	Choices     []string         `json:"choices"`
	Answer      string           `json:"answer"`
	Explanation string           `json:"explanation"`
	Source      string           `json:"source"`
	CreatedAt   time.Time        `json:"created_at"`
	Step2       *Step2DetailsDTO `json:"step2,omitempty"`
}

// QuestionListResponse wraps a page of questions in the API envelope
// @Description Paginated question list
type QuestionListResponse struct {
	Success  bool               `json:"success"`
	Data     []QuestionResponse `json:"data"`
	Count    int                `json:"count"`
	Topic    string             `json:"topic"`
	Subtopic string             `json:"subtopic,omitempty"`
	ExamType string             `json:"exam_type,omitempty"`
	Message  string             `json:"message"`
}

// CreateQuestionRequest is the body of POST /api/questions
// @Description New question payload
type CreateQuestionRequest struct {
	ExamType    string           `json:"exam_type"`
	Topic       string           `json:"topic"`
	Subtopic    string           `json:"subtopic"`
	Question    string           `json:"question"`
	Choices     []string         `json:"choices"`
	Answer      string           `json:"answer"`
	Explanation string           `json:"explanation"`
	Source      string           `json:"source"`
	Step2       *Step2DetailsDTO `json:"step2,omitempty"`
}

// CreateQuestionResponse wraps the created record
type CreateQuestionResponse struct {
	Success bool             `json:"success"`
	Data    QuestionResponse `json:"data"`
	Message string           `json:"message"`
}
