package dto

// StartPracticeRequest begins a practice session for one category.
type StartPracticeRequest struct {
	Category string `json:"category"`
	Subtopic string `json:"subtopic,omitempty"`
	ExamType string `json:"exam_type,omitempty"`
}

// AnswerRequest records a choice for a question inside a session.
type AnswerRequest struct {
	QuestionID  string `json:"question_id"`
	ChoiceIndex int    `json:"choice_index"`
}

// GotoRequest jumps to a question index inside an assessment session.
type GotoRequest struct {
	Index int `json:"index"`
}

// PracticeStateResponse is the full practice session state after a transition.
type PracticeStateResponse struct {
	SessionID    string             `json:"session_id"`
	Category     string             `json:"category"`
	Questions    []QuestionResponse `json:"questions"`
	CurrentIndex int                `json:"current_index"`
	Answers      map[string]int     `json:"answers"`
	ShowFeedback bool               `json:"show_feedback"`
	IsComplete   bool               `json:"is_complete"`
	Loading      bool               `json:"loading"`
	Error        string             `json:"error,omitempty"`
}

// AssessmentStateResponse is the fixed five question assessment state.
type AssessmentStateResponse struct {
	SessionID    string             `json:"session_id"`
	Questions    []QuestionResponse `json:"questions"`
	CurrentIndex int                `json:"current_index"`
	Answers      map[string]int     `json:"answers"`
	Progress     float64            `json:"progress"`
	CanSubmit    bool               `json:"can_submit"`
	Submitted    bool               `json:"submitted"`
}

// AssessmentSubmitResponse hands back the one-shot results slot location.
type AssessmentSubmitResponse struct {
	Success   bool   `json:"success"`
	ResultsID string `json:"results_id"`
	Message   string `json:"message"`
}

// AssessmentResultsResponse is produced when the one-shot slot is consumed.
type AssessmentResultsResponse struct {
	Success bool           `json:"success"`
	Answers map[string]int `json:"answers"`
}

// ChatMessageDTO is one transcript entry of a case-study session.
type ChatMessageDTO struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CaseStudyStateResponse is the case-study session state after a transition.
type CaseStudyStateResponse struct {
	SessionID      string           `json:"session_id"`
	Title          string           `json:"title"`
	Vignette       string           `json:"vignette"`
	Question       string           `json:"question"`
	Choices        []string         `json:"choices"`
	SelectedAnswer *int             `json:"selected_answer"`
	Submitted      bool             `json:"submitted"`
	Correct        bool             `json:"correct"`
	Explanation    string           `json:"explanation,omitempty"`
	Transcript     []ChatMessageDTO `json:"transcript"`
}

// ChatMessageRequest sends one user message into the case-study chat.
type ChatMessageRequest struct {
	Content string `json:"content"`
}

// StartComparisonRequest begins a comparison flow for one category.
type StartComparisonRequest struct {
	Category string `json:"category"`
}

// ComparisonSlotDTO is one half of a comparison pair.
type ComparisonSlotDTO struct {
	Question      QuestionResponse `json:"question"`
	SelectedIndex *int             `json:"selected_index"`
	Revealed      bool             `json:"revealed"`
	Correct       bool             `json:"correct"`
}

// SelectBetterRequest picks which question of the pair is better (1 or 2).
type SelectBetterRequest struct {
	Which int `json:"which"`
}

// ComparisonStateResponse is the comparison flow state after a transition.
type ComparisonStateResponse struct {
	SessionID string            `json:"session_id"`
	Category  string            `json:"category"`
	Step      int               `json:"step"`
	First     ComparisonSlotDTO `json:"first"`
	Second    ComparisonSlotDTO `json:"second"`
	Better    int               `json:"better"`
	Submitted bool              `json:"submitted"`
}
