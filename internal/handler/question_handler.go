package handler

import (
	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/logger"
	"medprep/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// pageCacheControl is sent on successful list responses so shared caches can
// serve and revalidate pages.
const pageCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// GetQuestions godoc
// @Summary List questions
// @Description Returns a page of questions filtered by topic, optional subtopic, and optional exam type
// @Tags questions
// @Accept json
// @Produce json
// @Param topic query string true "Topic name"
// @Param subtopic query string false "Subtopic name"
// @Param examType query string false "Exam type (step1 or step2)"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) GetQuestions(c *fiber.Ctx) error {
	req := dto.ListQuestionsRequest{
		Topic:    c.Query("topic"),
		Subtopic: c.Query("subtopic"),
		ExamType: c.Query("examType"),
		Limit:    c.Query("limit"),
		Offset:   c.Query("offset"),
	}

	// Missing topic fails before any storage work happens.
	if req.Topic == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}

	resp, err := h.service.GetQuestions(c.Context(), req)
	if err != nil {
		logger.Get().Error("Failed to get questions",
			zap.Error(err),
			zap.String("topic", req.Topic),
			zap.String("subtopic", req.Subtopic),
		)
		return err
	}

	c.Set(fiber.HeaderCacheControl, pageCacheControl)
	return c.JSON(resp)
}

// GetQuestionsByExamType godoc
// @Summary List questions for one exam type
// @Description Same as the list endpoint with the exam type bound in the path
// @Tags questions
// @Accept json
// @Produce json
// @Param examType path string true "Exam type (step1 or step2)"
// @Param topic query string true "Topic name"
// @Param subtopic query string false "Subtopic name"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /questions/{examType} [get]
func (h *QuestionHandler) GetQuestionsByExamType(c *fiber.Ctx) error {
	req := dto.ListQuestionsRequest{
		Topic:    c.Query("topic"),
		Subtopic: c.Query("subtopic"),
		ExamType: c.Params("examType"),
		Limit:    c.Query("limit"),
		Offset:   c.Query("offset"),
	}

	if req.Topic == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}

	resp, err := h.service.GetQuestions(c.Context(), req)
	if err != nil {
		logger.Get().Error("Failed to get questions by exam type",
			zap.Error(err),
			zap.String("exam_type", req.ExamType),
			zap.String("topic", req.Topic),
		)
		return err
	}

	c.Set(fiber.HeaderCacheControl, pageCacheControl)
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Ingest a question
// @Description Validates and stores a new question; the answer must equal one of the choices by value
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question payload"
// @Success 201 {object} dto.CreateQuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	resp, err := h.service.CreateQuestion(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to create question",
			zap.Error(err),
			zap.String("topic", req.Topic),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateQuestionResponse{
		Success: true,
		Data:    *resp,
		Message: "Question created successfully",
	})
}
