// Package session holds the in-memory study session engines. Every
// transition is a synchronous method that never panics across the dispatch
// boundary; failures are captured into state fields and rendered by the
// caller.
package session

import "medprep/internal/domain"

// PracticeSession drives a topic practice run: a loaded question sequence,
// a cursor, per-question selections, and feedback visibility. The question
// sequence is immutable once loaded.
//
// A session is owned by the request flow that created it; transitions are
// not internally locked.
type PracticeSession struct {
	ID           string
	Category     string
	Questions    []*domain.Question
	CurrentIndex int
	Answers      map[string]int
	ShowFeedback bool
	IsComplete   bool
	Loading      bool
	ErrMsg       string

	// loadGen guards against a late fetch completion being dispatched into
	// a session that has since started loading something else.
	loadGen int
}

// NewPracticeSession creates an idle practice session.
func NewPracticeSession(id string) *PracticeSession {
	return &PracticeSession{
		ID:      id,
		Answers: make(map[string]int),
	}
}

// StartLoading resets all session state, records the chosen category, and
// returns the generation token the eventual LoadSuccess/LoadError must carry.
func (s *PracticeSession) StartLoading(category string) int {
	s.loadGen++
	s.Category = category
	s.Questions = nil
	s.CurrentIndex = 0
	s.Answers = make(map[string]int)
	s.ShowFeedback = false
	s.IsComplete = false
	s.Loading = true
	s.ErrMsg = ""
	return s.loadGen
}

// LoadSuccess stores the fetched sequence. Stale generations are ignored.
func (s *PracticeSession) LoadSuccess(gen int, questions []*domain.Question) {
	if gen != s.loadGen {
		return
	}
	s.Questions = questions
	s.Loading = false
	s.ErrMsg = ""
}

// LoadError records the failure and clears the category, so the caller
// treats the session as having no valid category. Stale generations are
// ignored. An error state is distinct from a loaded-but-empty state.
func (s *PracticeSession) LoadError(gen int, message string) {
	if gen != s.loadGen {
		return
	}
	s.Category = ""
	s.Loading = false
	s.ErrMsg = message
}

// Current returns the question under the cursor, or nil.
func (s *PracticeSession) Current() *domain.Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// Answer records or overwrites the selection for a question. Once feedback
// is shown for the current question its answer is locked; the call is then
// silently ignored.
func (s *PracticeSession) Answer(questionID string, choiceIndex int) {
	if s.ShowFeedback {
		if cur := s.Current(); cur != nil && cur.ID == questionID {
			return
		}
	}
	s.Answers[questionID] = choiceIndex
}

// SubmitAnswer reveals feedback for the current question. Without a
// recorded selection it is silently ignored.
func (s *PracticeSession) SubmitAnswer() {
	cur := s.Current()
	if cur == nil {
		return
	}
	if _, answered := s.Answers[cur.ID]; !answered {
		return
	}
	s.ShowFeedback = true
}

// NextQuestion advances the cursor and hides feedback. On the last question
// it sets the completion flag instead of advancing past the end.
func (s *PracticeSession) NextQuestion() {
	if len(s.Questions) == 0 {
		return
	}
	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
		s.ShowFeedback = false
		return
	}
	s.IsComplete = true
}

// PracticeAgain resets cursor, answers, feedback, and completion while
// keeping the already-loaded question set.
func (s *PracticeSession) PracticeAgain() {
	s.CurrentIndex = 0
	s.Answers = make(map[string]int)
	s.ShowFeedback = false
	s.IsComplete = false
}
