package session

import (
	"context"

	"medprep/internal/domain"
	"medprep/internal/logger"

	"go.uber.org/zap"
)

// ComparisonStep orders the three stages of the flow.
type ComparisonStep int

const (
	StepFirstQuestion ComparisonStep = iota + 1
	StepSecondQuestion
	StepCompare
)

// PairProvider fetches two distinct questions for a topic. It fails with a
// descriptive error when the topic has fewer than two questions.
type PairProvider interface {
	FetchPair(ctx context.Context, topic string) (*domain.Question, *domain.Question, error)
}

// ComparisonSlot tracks one half of the pair: the question, the selection,
// and whether its result has been revealed.
type ComparisonSlot struct {
	Question *domain.Question
	Selected *int
	Revealed bool
}

// Correct reports whether the revealed selection matches the question's
// answer by value.
func (c *ComparisonSlot) Correct() bool {
	if c.Question == nil || c.Selected == nil {
		return false
	}
	idx, ok := c.Question.CorrectChoice()
	return ok && idx == *c.Selected
}

// ComparisonFlow is the three-step compare wizard: answer question one,
// answer question two, pick the better question. Advancing out of a
// question step takes two distinct user actions: answering and an explicit
// continue.
type ComparisonFlow struct {
	ID        string
	Category  string
	Step      ComparisonStep
	First     ComparisonSlot
	Second    ComparisonSlot
	Better    int // 1 or 2, zero until selected
	Submitted bool
}

// NewComparisonFlow creates an empty flow for the category. FetchNewPair
// must run before the flow is usable.
func NewComparisonFlow(id, category string) *ComparisonFlow {
	return &ComparisonFlow{
		ID:       id,
		Category: category,
		Step:     StepFirstQuestion,
	}
}

// FetchNewPair loads a fresh pair and resets the flow to step one. The pair
// is ephemeral; the previous one is discarded entirely.
func (f *ComparisonFlow) FetchNewPair(ctx context.Context, provider PairProvider) error {
	first, second, err := provider.FetchPair(ctx, f.Category)
	if err != nil {
		return err
	}
	f.First = ComparisonSlot{Question: first}
	f.Second = ComparisonSlot{Question: second}
	f.Step = StepFirstQuestion
	f.Better = 0
	f.Submitted = false
	return nil
}

func (f *ComparisonFlow) currentSlot() *ComparisonSlot {
	switch f.Step {
	case StepFirstQuestion:
		return &f.First
	case StepSecondQuestion:
		return &f.Second
	default:
		return nil
	}
}

// Answer records the selection for the current question step and reveals
// its result. Ignored on the compare step or before a pair is loaded.
func (f *ComparisonFlow) Answer(choiceIndex int) {
	slot := f.currentSlot()
	if slot == nil || slot.Question == nil {
		return
	}
	if choiceIndex < 0 || choiceIndex >= len(slot.Question.Choices) {
		return
	}
	idx := choiceIndex
	slot.Selected = &idx
	slot.Revealed = true
}

// Continue advances to the next step. It is the second of the two user
// actions a question step requires; without a revealed result it is ignored.
func (f *ComparisonFlow) Continue() {
	slot := f.currentSlot()
	if slot == nil || !slot.Revealed {
		return
	}
	f.Step++
}

// SelectBetter records which question is judged better (1 or 2). Only
// meaningful on the compare step.
func (f *ComparisonFlow) SelectBetter(which int) {
	if f.Step != StepCompare {
		return
	}
	if which != 1 && which != 2 {
		return
	}
	f.Better = which
}

// CanSubmit reports whether the compare step has a better-question choice.
func (f *ComparisonFlow) CanSubmit() bool {
	return f.Step == StepCompare && f.Better != 0 && !f.Submitted
}

// Submit logs the outcome. Nothing is persisted server-side; the caller
// then fetches a fresh pair. Returns false when submission is not enabled.
func (f *ComparisonFlow) Submit() bool {
	if !f.CanSubmit() {
		return false
	}
	f.Submitted = true

	var firstID, secondID string
	if f.First.Question != nil {
		firstID = f.First.Question.ID
	}
	if f.Second.Question != nil {
		secondID = f.Second.Question.ID
	}
	logger.Get().Info("Comparison submitted",
		zap.String("category", f.Category),
		zap.String("first_question", firstID),
		zap.String("second_question", secondID),
		zap.Int("better", f.Better),
		zap.Bool("first_correct", f.First.Correct()),
		zap.Bool("second_correct", f.Second.Correct()),
	)
	return true
}
