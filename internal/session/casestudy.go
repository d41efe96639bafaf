package session

import "medprep/internal/util"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one transcript entry. ID is stable for the lifetime of the
// transcript so streamed content can be swapped in without disturbing the
// message's identity or position.
type ChatMessage struct {
	ID      string
	Role    string
	Content string
}

// CaseVignette is one clinical case with a single best-answer question.
type CaseVignette struct {
	ID           string
	Title        string
	Vignette     string
	Question     string
	Choices      []string
	CorrectIndex int
	Explanation  string
}

// CaseStudySession holds one fixed vignette, a single selected-answer slot,
// and an append-only chat transcript. The session never navigates between
// vignettes; Reset keeps the vignette and clears everything else.
type CaseStudySession struct {
	ID         string
	Vignette   CaseVignette
	Selected   *int
	Submitted  bool
	Correct    bool
	Transcript []ChatMessage
}

// NewCaseStudySession creates a session over the given vignette.
func NewCaseStudySession(id string, vignette CaseVignette) *CaseStudySession {
	return &CaseStudySession{
		ID:       id,
		Vignette: vignette,
	}
}

// SelectAnswer records the selection. Rejected once submitted; out-of-range
// selections are ignored.
func (s *CaseStudySession) SelectAnswer(choiceIndex int) {
	if s.Submitted {
		return
	}
	if choiceIndex < 0 || choiceIndex >= len(s.Vignette.Choices) {
		return
	}
	idx := choiceIndex
	s.Selected = &idx
}

// SubmitAnswer reveals correctness feedback. It requires a selection and is
// silently ignored without one.
func (s *CaseStudySession) SubmitAnswer() {
	if s.Submitted || s.Selected == nil {
		return
	}
	s.Submitted = true
	s.Correct = *s.Selected == s.Vignette.CorrectIndex
}

// SendMessage appends the user message and, in the same transition, an
// empty counterpart placeholder. The placeholder's ID is returned so the
// caller can overwrite its content as streamed text arrives; the transcript
// therefore always has a stable message identity to update.
func (s *CaseStudySession) SendMessage(content string) string {
	s.Transcript = append(s.Transcript, ChatMessage{
		ID:      util.NewULID(),
		Role:    RoleUser,
		Content: content,
	})
	reply := ChatMessage{
		ID:   util.NewULID(),
		Role: RoleAssistant,
	}
	s.Transcript = append(s.Transcript, reply)
	return reply.ID
}

// UpdateReply replaces the content of the identified message in full,
// preserving its identity and position. Unknown IDs are ignored.
func (s *CaseStudySession) UpdateReply(messageID, content string) {
	for i := range s.Transcript {
		if s.Transcript[i].ID == messageID {
			s.Transcript[i].Content = content
			return
		}
	}
}

// Reset clears the transcript and answer state but keeps the vignette.
func (s *CaseStudySession) Reset() {
	s.Selected = nil
	s.Submitted = false
	s.Correct = false
	s.Transcript = nil
}
