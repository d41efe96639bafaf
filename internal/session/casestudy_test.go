package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCaseStudy() *CaseStudySession {
	return NewCaseStudySession("case", DefaultVignette())
}

func TestCaseStudySelectAnswer(t *testing.T) {
	s := newTestCaseStudy()

	s.SelectAnswer(2)
	require.NotNil(t, s.Selected)
	assert.Equal(t, 2, *s.Selected)

	s.SelectAnswer(len(s.Vignette.Choices))
	assert.Equal(t, 2, *s.Selected, "out-of-range selections are ignored")

	s.SelectAnswer(-1)
	assert.Equal(t, 2, *s.Selected)
}

func TestCaseStudySelectAnswerLockedAfterSubmit(t *testing.T) {
	s := newTestCaseStudy()
	s.SelectAnswer(0)
	s.SubmitAnswer()
	require.True(t, s.Submitted)

	s.SelectAnswer(1)
	assert.Equal(t, 0, *s.Selected)
}

func TestCaseStudySubmitRequiresSelection(t *testing.T) {
	s := newTestCaseStudy()
	s.SubmitAnswer()
	assert.False(t, s.Submitted)
}

func TestCaseStudySubmitScoresSelection(t *testing.T) {
	s := newTestCaseStudy()
	s.SelectAnswer(s.Vignette.CorrectIndex)
	s.SubmitAnswer()
	assert.True(t, s.Correct)

	s2 := newTestCaseStudy()
	s2.SelectAnswer((s2.Vignette.CorrectIndex + 1) % len(s2.Vignette.Choices))
	s2.SubmitAnswer()
	assert.False(t, s2.Correct)
}

func TestSendMessageAppendsUserAndPlaceholder(t *testing.T) {
	s := newTestCaseStudy()
	replyID := s.SendMessage("What does the S3 gallop indicate?")

	require.Len(t, s.Transcript, 2)
	assert.Equal(t, RoleUser, s.Transcript[0].Role)
	assert.Equal(t, "What does the S3 gallop indicate?", s.Transcript[0].Content)
	assert.Equal(t, RoleAssistant, s.Transcript[1].Role)
	assert.Empty(t, s.Transcript[1].Content)
	assert.Equal(t, replyID, s.Transcript[1].ID)
}

func TestUpdateReplyPreservesIdentityAndPosition(t *testing.T) {
	s := newTestCaseStudy()
	replyID := s.SendMessage("first")
	s.SendMessage("second")
	require.Len(t, s.Transcript, 4)

	// Streamed chunks arrive as progressively longer full renditions.
	s.UpdateReply(replyID, "The S3")
	s.UpdateReply(replyID, "The S3 gallop suggests volume overload.")

	assert.Equal(t, "The S3 gallop suggests volume overload.", s.Transcript[1].Content)
	assert.Equal(t, replyID, s.Transcript[1].ID)
	assert.Len(t, s.Transcript, 4, "updates never grow the transcript")
}

func TestUpdateReplyUnknownIDIsANoOp(t *testing.T) {
	s := newTestCaseStudy()
	s.SendMessage("hello")
	before := len(s.Transcript)

	s.UpdateReply("missing", "content")
	assert.Len(t, s.Transcript, before)
	assert.Empty(t, s.Transcript[1].Content)
}

func TestCaseStudyResetKeepsVignette(t *testing.T) {
	s := newTestCaseStudy()
	vignetteID := s.Vignette.ID
	s.SelectAnswer(1)
	s.SubmitAnswer()
	s.SendMessage("question")

	s.Reset()
	assert.Equal(t, vignetteID, s.Vignette.ID)
	assert.Nil(t, s.Selected)
	assert.False(t, s.Submitted)
	assert.False(t, s.Correct)
	assert.Empty(t, s.Transcript)
}
