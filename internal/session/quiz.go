package session

import "medprep/internal/domain"

// QuizSession is the fixed five-question assessment. Navigation is free in
// both directions and answers are never locked; scoring happens outside the
// session, after the answer map is handed off.
type QuizSession struct {
	ID           string
	Questions    []*domain.Question
	CurrentIndex int
	Answers      map[string]int
	Submitted    bool
}

// NewQuizSession creates an assessment session over the given question set.
func NewQuizSession(id string, questions []*domain.Question) *QuizSession {
	return &QuizSession{
		ID:        id,
		Questions: questions,
		Answers:   make(map[string]int),
	}
}

// GoTo jumps directly to a question index. Out-of-range indexes are ignored.
func (s *QuizSession) GoTo(index int) {
	if index < 0 || index >= len(s.Questions) {
		return
	}
	s.CurrentIndex = index
}

// Next advances the cursor, bounded to the last question.
func (s *QuizSession) Next() {
	s.GoTo(s.CurrentIndex + 1)
}

// Prev moves the cursor back, bounded to the first question.
func (s *QuizSession) Prev() {
	s.GoTo(s.CurrentIndex - 1)
}

// Answer records or overwrites a selection. There is no locking; answers
// can change until submission.
func (s *QuizSession) Answer(questionID string, choiceIndex int) {
	if s.Submitted {
		return
	}
	for _, q := range s.Questions {
		if q.ID == questionID {
			s.Answers[questionID] = choiceIndex
			return
		}
	}
}

// Progress is answered questions over total questions.
func (s *QuizSession) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(len(s.Answers)) / float64(len(s.Questions))
}

// CanSubmit reports whether every question has a recorded answer.
func (s *QuizSession) CanSubmit() bool {
	return len(s.Questions) > 0 && len(s.Answers) == len(s.Questions)
}

// Submit marks the session submitted and returns a copy of the answer map
// for the external results computation. It returns false when not every
// question has been answered.
func (s *QuizSession) Submit() (map[string]int, bool) {
	if !s.CanSubmit() {
		return nil, false
	}
	s.Submitted = true
	out := make(map[string]int, len(s.Answers))
	for k, v := range s.Answers {
		out[k] = v
	}
	return out, true
}
