package session

import (
	"sync"

	"medprep/internal/util"
)

// Store is the in-memory registry of live sessions, keyed by ULID. The maps
// are guarded because HTTP handlers run concurrently; the sessions
// themselves are not locked. Each is owned by the client that created it
// and is expected to be driven by one request at a time.
type Store struct {
	mu          sync.RWMutex
	practice    map[string]*PracticeSession
	quizzes     map[string]*QuizSession
	cases       map[string]*CaseStudySession
	comparisons map[string]*ComparisonFlow
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		practice:    make(map[string]*PracticeSession),
		quizzes:     make(map[string]*QuizSession),
		cases:       make(map[string]*CaseStudySession),
		comparisons: make(map[string]*ComparisonFlow),
	}
}

// CreatePractice registers a new practice session.
func (s *Store) CreatePractice() *PracticeSession {
	sess := NewPracticeSession(util.NewULID())
	s.mu.Lock()
	s.practice[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Practice looks up a practice session by ID.
func (s *Store) Practice(id string) (*PracticeSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.practice[id]
	return sess, ok
}

// CreateQuiz registers a new assessment session over the bundled set.
func (s *Store) CreateQuiz() *QuizSession {
	sess := NewQuizSession(util.NewULID(), AssessmentQuestions())
	s.mu.Lock()
	s.quizzes[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Quiz looks up an assessment session by ID.
func (s *Store) Quiz(id string) (*QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.quizzes[id]
	return sess, ok
}

// CreateCaseStudy registers a new case-study session over the bundled
// vignette.
func (s *Store) CreateCaseStudy() *CaseStudySession {
	sess := NewCaseStudySession(util.NewULID(), DefaultVignette())
	s.mu.Lock()
	s.cases[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// CaseStudy looks up a case-study session by ID.
func (s *Store) CaseStudy(id string) (*CaseStudySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.cases[id]
	return sess, ok
}

// CreateComparison registers a new comparison flow for a category.
func (s *Store) CreateComparison(category string) *ComparisonFlow {
	flow := NewComparisonFlow(util.NewULID(), category)
	s.mu.Lock()
	s.comparisons[flow.ID] = flow
	s.mu.Unlock()
	return flow
}

// Comparison looks up a comparison flow by ID.
func (s *Store) Comparison(id string) (*ComparisonFlow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flow, ok := s.comparisons[id]
	return flow, ok
}

// Delete discards a session of any kind. Sessions are never persisted;
// deletion is final.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.practice, id)
	delete(s.quizzes, id)
	delete(s.cases, id)
	delete(s.comparisons, id)
}
