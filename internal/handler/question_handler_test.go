package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/handler"
	"medprep/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Manual mock for the handler's service dependency.
type MockQuestionService struct {
	GetQuestionsFunc   func(ctx context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error)
	CreateQuestionFunc func(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetCalls           int
}

func (m *MockQuestionService) GetQuestions(ctx context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
	m.GetCalls++
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, req)
	}
	return nil, errors.New("GetQuestionsFunc not set on mock")
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, req)
	}
	return nil, errors.New("CreateQuestionFunc not set on mock")
}

func (m *MockQuestionService) FetchCategory(ctx context.Context, examType domain.ExamType, topic string, limit int) ([]*domain.Question, error) {
	panic("not implemented in mock")
}

func (m *MockQuestionService) FetchPair(ctx context.Context, topic string) (*domain.Question, *domain.Question, error) {
	panic("not implemented in mock")
}

func setupApp(svc *MockQuestionService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewQuestionHandler(svc)
	app.Get("/api/questions", h.GetQuestions)
	app.Get("/api/questions/:examType", h.GetQuestionsByExamType)
	return app
}

func TestGetQuestions_MissingTopicFailsFast(t *testing.T) {
	svc := &MockQuestionService{}
	app := setupApp(svc)

	req := httptest.NewRequest("GET", "/api/questions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, svc.GetCalls, "no service call happens without a topic")

	var body middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "topic", body.Errors[0].Field)
}

func TestGetQuestions_Success(t *testing.T) {
	svc := &MockQuestionService{
		GetQuestionsFunc: func(_ context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
			assert.Equal(t, "Cardiology", req.Topic)
			assert.Equal(t, "Heart Failure", req.Subtopic)
			return &dto.QuestionListResponse{
				Success: true,
				Data:    []dto.QuestionResponse{{ID: "q1", Topic: "Cardiology"}},
				Count:   1,
				Topic:   "Cardiology",
				Message: "Questions retrieved successfully",
			}, nil
		},
	}
	app := setupApp(svc)

	req := httptest.NewRequest("GET", "/api/questions?topic=Cardiology&subtopic=Heart+Failure", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=600",
		resp.Header.Get(fiber.HeaderCacheControl))

	var body dto.QuestionListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "q1", body.Data[0].ID)
}

func TestGetQuestions_ValidationErrorsFromService(t *testing.T) {
	svc := &MockQuestionService{
		GetQuestionsFunc: func(_ context.Context, _ dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
			return nil, domain.ValidationErrors{
				domain.NewOutOfRangeError("limit", 500, 1, 100),
				domain.NewInvalidFormatError("examType", "step3"),
			}
		},
	}
	app := setupApp(svc)

	req := httptest.NewRequest("GET", "/api/questions?topic=Cardiology&limit=500&examType=step3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Errors, 2, "every violation is reported")
}

func TestGetQuestions_StorageErrorMapsTo503(t *testing.T) {
	svc := &MockQuestionService{
		GetQuestionsFunc: func(_ context.Context, _ dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
			return nil, domain.NewStorageError("failed to query questions", errors.New("connection refused"))
		},
	}
	app := setupApp(svc)

	req := httptest.NewRequest("GET", "/api/questions?topic=Cardiology", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection refused",
		"the underlying cause is not exposed to clients")
}

func TestGetQuestionsByExamType_BindsPathParam(t *testing.T) {
	svc := &MockQuestionService{
		GetQuestionsFunc: func(_ context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
			assert.Equal(t, "step2", req.ExamType)
			return &dto.QuestionListResponse{Success: true, Data: []dto.QuestionResponse{}, Topic: req.Topic}, nil
		},
	}
	app := setupApp(svc)

	req := httptest.NewRequest("GET", "/api/questions/step2?topic=Cardiology", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.GetCalls)
}
