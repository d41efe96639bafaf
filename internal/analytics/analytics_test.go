package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSummaryScore(t *testing.T) {
	assert.Equal(t, 0.0, SessionSummary{}.Score())
	assert.Equal(t, 0.8, SessionSummary{Correct: 4, Total: 5}.Score())
}

func TestRecordStampsMissingTimestamp(t *testing.T) {
	h := NewHistory()
	h.Record(SessionSummary{Type: TypePractice, Category: "Cardiology", Correct: 3, Total: 5})

	sessions := h.Sessions()
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Timestamp.IsZero())

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.Record(SessionSummary{Type: TypeAssessment, Timestamp: fixed, Correct: 4, Total: 5})
	assert.Equal(t, fixed, h.Sessions()[1].Timestamp)
}

func TestByCategory(t *testing.T) {
	h := NewHistory()
	h.Record(SessionSummary{Type: TypePractice, Category: "Cardiology", Correct: 3, Total: 5})
	h.Record(SessionSummary{Type: TypePractice, Category: "Cardiology", Correct: 5, Total: 5})
	h.Record(SessionSummary{Type: TypePractice, Category: "Renal", Correct: 1, Total: 4})
	h.Record(SessionSummary{Type: TypeAssessment, Correct: 4, Total: 5})

	byCat := h.ByCategory()
	require.Len(t, byCat, 3)

	cardio := byCat["Cardiology"]
	assert.Equal(t, 2, cardio.Sessions)
	assert.Equal(t, 8, cardio.Correct)
	assert.Equal(t, 10, cardio.Total)
	assert.InDelta(t, 0.8, cardio.Accuracy(), 1e-9)

	uncategorized := byCat[""]
	assert.Equal(t, 1, uncategorized.Sessions)
}

func TestOverall(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0.0, h.Overall().Accuracy())

	h.Record(SessionSummary{Type: TypePractice, Category: "Neurology", Correct: 2, Total: 4})
	h.Record(SessionSummary{Type: TypeCaseStudy, Category: "Cardiology", Correct: 1, Total: 1})

	overall := h.Overall()
	assert.Equal(t, 2, overall.Sessions)
	assert.Equal(t, 3, overall.Correct)
	assert.Equal(t, 5, overall.Total)
	assert.InDelta(t, 0.6, overall.Accuracy(), 1e-9)
}

func TestSessionsReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.Record(SessionSummary{Type: TypePractice, Correct: 1, Total: 2})

	sessions := h.Sessions()
	sessions[0].Correct = 99
	assert.Equal(t, 1, h.Sessions()[0].Correct)
}
