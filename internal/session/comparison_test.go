package session

import (
	"context"
	"errors"
	"testing"

	"medprep/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePairProvider struct {
	pairs [][2]*domain.Question
	err   error
	calls int
}

func (f *fakePairProvider) FetchPair(_ context.Context, _ string) (*domain.Question, *domain.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	pair := f.pairs[(f.calls-1)%len(f.pairs)]
	return pair[0], pair[1], nil
}

func newTestFlow(t *testing.T) (*ComparisonFlow, *fakePairProvider) {
	t.Helper()
	qs := practiceQuestions(4)
	provider := &fakePairProvider{pairs: [][2]*domain.Question{
		{qs[0], qs[1]},
		{qs[2], qs[3]},
	}}
	flow := NewComparisonFlow("cmp", "Cardiology")
	require.NoError(t, flow.FetchNewPair(context.Background(), provider))
	return flow, provider
}

func TestFetchNewPairFailurePreservesFlow(t *testing.T) {
	flow := NewComparisonFlow("cmp", "Cardiology")
	provider := &fakePairProvider{err: errors.New("too few questions")}

	err := flow.FetchNewPair(context.Background(), provider)
	assert.Error(t, err)
	assert.Nil(t, flow.First.Question)
}

func TestQuestionStepNeedsAnswerThenContinue(t *testing.T) {
	flow, _ := newTestFlow(t)

	flow.Continue()
	assert.Equal(t, StepFirstQuestion, flow.Step, "continue before answering is ignored")

	flow.Answer(0)
	require.True(t, flow.First.Revealed)
	assert.Equal(t, StepFirstQuestion, flow.Step, "answering alone does not advance")

	flow.Continue()
	assert.Equal(t, StepSecondQuestion, flow.Step)
}

func TestAnswerOutOfRangeIsIgnored(t *testing.T) {
	flow, _ := newTestFlow(t)
	flow.Answer(len(flow.First.Question.Choices))
	assert.Nil(t, flow.First.Selected)
	assert.False(t, flow.First.Revealed)
}

func TestSelectBetterOnlyOnCompareStep(t *testing.T) {
	flow, _ := newTestFlow(t)

	flow.SelectBetter(1)
	assert.Zero(t, flow.Better)

	flow.Answer(0)
	flow.Continue()
	flow.Answer(1)
	flow.Continue()
	require.Equal(t, StepCompare, flow.Step)

	flow.SelectBetter(3)
	assert.Zero(t, flow.Better, "only 1 or 2 are valid")

	flow.SelectBetter(2)
	assert.Equal(t, 2, flow.Better)
}

func TestSubmitRequiresBetterChoice(t *testing.T) {
	flow, _ := newTestFlow(t)
	flow.Answer(0)
	flow.Continue()
	flow.Answer(0)
	flow.Continue()

	assert.False(t, flow.Submit())

	flow.SelectBetter(1)
	require.True(t, flow.CanSubmit())
	assert.True(t, flow.Submit())
	assert.True(t, flow.Submitted)
	assert.False(t, flow.Submit(), "a flow submits at most once")
}

func TestFetchNewPairResetsAfterSubmit(t *testing.T) {
	flow, provider := newTestFlow(t)
	flow.Answer(0)
	flow.Continue()
	flow.Answer(1)
	flow.Continue()
	flow.SelectBetter(1)
	require.True(t, flow.Submit())

	require.NoError(t, flow.FetchNewPair(context.Background(), provider))
	assert.Equal(t, StepFirstQuestion, flow.Step)
	assert.False(t, flow.Submitted)
	assert.Zero(t, flow.Better)
	assert.Nil(t, flow.First.Selected)
	assert.Equal(t, 2, provider.calls)
}

func TestComparisonSlotCorrect(t *testing.T) {
	q := &domain.Question{
		ID:      "q",
		Choices: []string{"A", "B", "C"},
		Answer:  "B",
	}
	idx := 1
	slot := ComparisonSlot{Question: q, Selected: &idx, Revealed: true}
	assert.True(t, slot.Correct())

	wrong := 0
	slot.Selected = &wrong
	assert.False(t, slot.Correct())

	slot.Selected = nil
	assert.False(t, slot.Correct())
}
