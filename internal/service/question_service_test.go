package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"medprep/internal/domain"
	"medprep/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manual mock for the repository port.
type MockQuestionRepository struct {
	ListFunc    func(ctx context.Context, filter domain.ListFilter) ([]*domain.Question, error)
	CountFunc   func(ctx context.Context, filter domain.ListFilter) (int, error)
	GetByIDFunc func(ctx context.Context, examType domain.ExamType, id string) (*domain.Question, error)
	CreateFunc  func(ctx context.Context, q *domain.Question) error

	ListCalls   int
	CountCalls  int
	CreateCalls int
}

func (m *MockQuestionRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Question, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Question{}, nil
}

func (m *MockQuestionRepository) Count(ctx context.Context, filter domain.ListFilter) (int, error) {
	m.CountCalls++
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	return 0, nil
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, examType domain.ExamType, id string) (*domain.Question, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, examType, id)
	}
	return nil, nil
}

func (m *MockQuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, q)
	}
	return nil
}

func cardiologyQuestions(ids ...string) []*domain.Question {
	out := make([]*domain.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Question{
			ID:       id,
			ExamType: domain.ExamTypeStep1,
			Topic:    "Cardiology",
			Question: "Q " + id,
			Choices:  []string{"A", "B", "C", "D"},
			Answer:   "A",
		})
	}
	return out
}

func TestGetQuestions_ValidationFailureIssuesNoQueries(t *testing.T) {
	repo := &MockQuestionRepository{}
	svc := NewQuestionService(repo, nil, time.Minute)

	_, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{
		Topic: "Astrology",
		Limit: "500",
	})

	var validationErrs domain.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Len(t, validationErrs, 2, "unknown topic and out-of-range limit are both reported")
	assert.Zero(t, repo.ListCalls)
	assert.Zero(t, repo.CountCalls)
}

func TestGetQuestions_EmptyPageIsNotAnError(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, _ domain.ListFilter) ([]*domain.Question, error) {
			return []*domain.Question{}, nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	resp, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{Topic: "Cardiology"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Count)
	assert.Equal(t, "No questions matched the requested filters", resp.Message)
}

func TestGetQuestions_StorageFailureIsClassified(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, _ domain.ListFilter) ([]*domain.Question, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	_, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{Topic: "Cardiology"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorage, domainErr.Code)
	assert.Equal(t, "failed to query questions", domainErr.Message)
}

func TestGetQuestions_PagingIsDisjoint(t *testing.T) {
	all := cardiologyQuestions("q01", "q02", "q03", "q04", "q05", "q06", "q07", "q08", "q09", "q10")
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, filter domain.ListFilter) ([]*domain.Question, error) {
			end := filter.Offset + filter.Limit
			if end > len(all) {
				end = len(all)
			}
			return all[filter.Offset:end], nil
		},
		CountFunc: func(_ context.Context, _ domain.ListFilter) (int, error) {
			return len(all), nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	first, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{
		Topic: "Cardiology", Limit: "5", Offset: "0",
	})
	require.NoError(t, err)
	second, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{
		Topic: "Cardiology", Limit: "5", Offset: "5",
	})
	require.NoError(t, err)

	require.Len(t, first.Data, 5)
	require.Len(t, second.Data, 5)
	assert.Equal(t, 10, first.Count)
	assert.Equal(t, 10, second.Count)

	seen := make(map[string]bool)
	for _, q := range first.Data {
		seen[q.ID] = true
	}
	for _, q := range second.Data {
		assert.False(t, seen[q.ID], "pages must not overlap: %s", q.ID)
	}
}

func TestGetQuestions_IdenticalRequestsAreIdempotent(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, _ domain.ListFilter) ([]*domain.Question, error) {
			return cardiologyQuestions("q1", "q2"), nil
		},
		CountFunc: func(_ context.Context, _ domain.ListFilter) (int, error) {
			return 2, nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	req := dto.ListQuestionsRequest{Topic: "Cardiology"}
	first, err := svc.GetQuestions(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.GetQuestions(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetQuestions_ExamTypeEchoedOnlyWhenRequested(t *testing.T) {
	repo := &MockQuestionRepository{}
	svc := NewQuestionService(repo, nil, time.Minute)

	plain, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{Topic: "Cardiology"})
	require.NoError(t, err)
	assert.Empty(t, plain.ExamType)

	tagged, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{
		Topic: "Cardiology", ExamType: "step2",
	})
	require.NoError(t, err)
	assert.Equal(t, "step2", tagged.ExamType)
}

func TestGetQuestions_CachedPageKeepsExamTypeEchoPerRequest(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, _ domain.ListFilter) ([]*domain.Question, error) {
			return cardiologyQuestions("q1"), nil
		},
		CountFunc: func(_ context.Context, _ domain.ListFilter) (int, error) {
			return 1, nil
		},
	}
	svc := NewQuestionService(repo, newFakeCache(), time.Minute)

	// The plain request populates the cache for the step1 page.
	plain, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{Topic: "Cardiology"})
	require.NoError(t, err)
	assert.Empty(t, plain.ExamType)
	require.Equal(t, 1, repo.ListCalls)

	// The scoped request hits that same cached page but still gets its echo.
	scoped, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{
		Topic: "Cardiology", ExamType: "step1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.ListCalls, "the scoped request is served from cache")
	assert.Equal(t, "step1", scoped.ExamType)

	// And the other way around: a scoped hit does not leak the echo into a
	// later plain request.
	plainAgain, err := svc.GetQuestions(context.Background(), dto.ListQuestionsRequest{Topic: "Cardiology"})
	require.NoError(t, err)
	assert.Empty(t, plainAgain.ExamType)
}

func TestCreateQuestion_RejectsAnswerNotAmongChoices(t *testing.T) {
	repo := &MockQuestionRepository{}
	svc := NewQuestionService(repo, nil, time.Minute)

	_, err := svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		Topic:    "Cardiology",
		Subtopic: "Heart Failure",
		Question: "Which drug improves mortality in HFrEF?",
		Choices:  []string{"Metoprolol succinate", "Digoxin", "Furosemide"},
		Answer:   "Lisinopril",
	})

	var validationErrs domain.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Zero(t, repo.CreateCalls, "invalid payloads never reach storage")
}

func TestCreateQuestion_RejectsDuplicateChoices(t *testing.T) {
	repo := &MockQuestionRepository{}
	svc := NewQuestionService(repo, nil, time.Minute)

	_, err := svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		Topic:    "Cardiology",
		Subtopic: "Heart Failure",
		Question: "Which drug improves mortality in HFrEF?",
		Choices:  []string{"Metoprolol succinate", "Metoprolol succinate", "Furosemide"},
		Answer:   "Furosemide",
	})

	var validationErrs domain.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Zero(t, repo.CreateCalls)
}

func TestCreateQuestion_PersistsValidPayload(t *testing.T) {
	var stored *domain.Question
	repo := &MockQuestionRepository{
		CreateFunc: func(_ context.Context, q *domain.Question) error {
			stored = q
			return nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	resp, err := svc.CreateQuestion(context.Background(), &dto.CreateQuestionRequest{
		Topic:       "Cardiology",
		Subtopic:    "Heart Failure",
		Question:    "Which drug improves mortality in HFrEF?",
		Choices:     []string{"Metoprolol succinate", "Digoxin", "Furosemide"},
		Answer:      "Metoprolol succinate",
		Explanation: "Evidence-based beta blockers reduce mortality in HFrEF.",
		Source:      "seed",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, domain.ExamTypeStep1, stored.ExamType)
	assert.Equal(t, stored.ID, resp.ID)
	assert.Equal(t, "Metoprolol succinate", resp.Answer)
}

func TestFetchPair_NeedsAtLeastTwoQuestions(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, _ domain.ListFilter) ([]*domain.Question, error) {
			return cardiologyQuestions("only"), nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	_, _, err := svc.FetchPair(context.Background(), "Cardiology")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	assert.Contains(t, domainErr.Message, "fewer than two questions")
}

func TestFetchPair_ReturnsDistinctQuestions(t *testing.T) {
	repo := &MockQuestionRepository{
		ListFunc: func(_ context.Context, filter domain.ListFilter) ([]*domain.Question, error) {
			assert.Equal(t, comparisonPoolSize, filter.Limit)
			return cardiologyQuestions("q1", "q2", "q3"), nil
		},
	}
	svc := NewQuestionService(repo, nil, time.Minute)

	first, second, err := svc.FetchPair(context.Background(), "Cardiology")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
