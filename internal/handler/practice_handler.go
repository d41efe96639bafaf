package handler

import (
	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/logger"
	"medprep/internal/service"
	"medprep/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// practiceSetSize is how many questions one practice run loads.
const practiceSetSize = 10

// PracticeHandler drives practice sessions over HTTP. Each transition
// returns the complete session state so the client renders from scratch.
type PracticeHandler struct {
	store     *session.Store
	questions service.QuestionService
}

// NewPracticeHandler creates a new PracticeHandler instance
func NewPracticeHandler(store *session.Store, questions service.QuestionService) *PracticeHandler {
	return &PracticeHandler{
		store:     store,
		questions: questions,
	}
}

// Start godoc
// @Summary Start a practice session
// @Description Creates a session and loads a question set for the chosen category
// @Tags practice
// @Accept json
// @Produce json
// @Param request body dto.StartPracticeRequest true "Category selection"
// @Success 201 {object} dto.PracticeStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /practice [post]
func (h *PracticeHandler) Start(c *fiber.Ctx) error {
	var req dto.StartPracticeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}
	if req.Category == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("category")}
	}

	examType := domain.ExamTypeStep1
	if req.ExamType != "" {
		parsed, ok := domain.ParseExamType(req.ExamType)
		if !ok {
			return domain.ValidationErrors{domain.NewInvalidFormatError("exam_type", req.ExamType)}
		}
		examType = parsed
	}

	sess := h.store.CreatePractice()
	gen := sess.StartLoading(req.Category)

	questions, err := h.questions.FetchCategory(c.Context(), examType, req.Category, practiceSetSize)
	if err != nil {
		logger.Get().Warn("Practice question load failed",
			zap.Error(err),
			zap.String("category", req.Category),
		)
		sess.LoadError(gen, "Failed to load questions for this category")
	} else {
		sess.LoadSuccess(gen, questions)
	}

	return c.Status(fiber.StatusCreated).JSON(toPracticeState(sess))
}

// State godoc
// @Summary Read practice session state
// @Tags practice
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice/{id} [get]
func (h *PracticeHandler) State(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(toPracticeState(sess))
}

// Answer godoc
// @Summary Record a practice answer
// @Tags practice
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selection"
// @Success 200 {object} dto.PracticeStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice/{id}/answer [post]
func (h *PracticeHandler) Answer(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	sess.Answer(req.QuestionID, req.ChoiceIndex)
	return c.JSON(toPracticeState(sess))
}

// Submit godoc
// @Summary Reveal feedback for the current practice question
// @Tags practice
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice/{id}/submit [post]
func (h *PracticeHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	sess.SubmitAnswer()
	return c.JSON(toPracticeState(sess))
}

// Next godoc
// @Summary Advance to the next practice question
// @Tags practice
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice/{id}/next [post]
func (h *PracticeHandler) Next(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	sess.NextQuestion()
	return c.JSON(toPracticeState(sess))
}

// Again godoc
// @Summary Restart the practice run over the same question set
// @Tags practice
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.PracticeStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /practice/{id}/again [post]
func (h *PracticeHandler) Again(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	sess.PracticeAgain()
	return c.JSON(toPracticeState(sess))
}

func (h *PracticeHandler) lookup(c *fiber.Ctx) (*session.PracticeSession, error) {
	sess, ok := h.store.Practice(c.Params("id"))
	if !ok {
		return nil, domain.NewNotFoundError("practice session not found")
	}
	return sess, nil
}

func toPracticeState(s *session.PracticeSession) dto.PracticeStateResponse {
	questions := make([]dto.QuestionResponse, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, service.ToQuestionResponse(q))
	}
	return dto.PracticeStateResponse{
		SessionID:    s.ID,
		Category:     s.Category,
		Questions:    questions,
		CurrentIndex: s.CurrentIndex,
		Answers:      s.Answers,
		ShowFeedback: s.ShowFeedback,
		IsComplete:   s.IsComplete,
		Loading:      s.Loading,
		Error:        s.ErrMsg,
	}
}
