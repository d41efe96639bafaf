package handler

import (
	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/logger"
	"medprep/internal/service"
	"medprep/internal/session"
	"medprep/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler drives the fixed five-question assessment. Submission
// parks the answers in a one-shot slot; the results endpoint consumes it.
type AssessmentHandler struct {
	store   *session.Store
	handoff service.ResultHandoffService
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(store *session.Store, handoff service.ResultHandoffService) *AssessmentHandler {
	return &AssessmentHandler{
		store:   store,
		handoff: handoff,
	}
}

// Start godoc
// @Summary Start an assessment session
// @Description Creates a session over the bundled five-question set
// @Tags assessment
// @Produce json
// @Success 201 {object} dto.AssessmentStateResponse
// @Router /assessment [post]
func (h *AssessmentHandler) Start(c *fiber.Ctx) error {
	sess := h.store.CreateQuiz()
	return c.Status(fiber.StatusCreated).JSON(toAssessmentState(sess))
}

// State godoc
// @Summary Read assessment session state
// @Tags assessment
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AssessmentStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/{id} [get]
func (h *AssessmentHandler) State(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(toAssessmentState(sess))
}

// Answer godoc
// @Summary Record an assessment answer
// @Description Answers stay editable until submission
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selection"
// @Success 200 {object} dto.AssessmentStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/{id}/answer [post]
func (h *AssessmentHandler) Answer(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	sess.Answer(req.QuestionID, req.ChoiceIndex)
	return c.JSON(toAssessmentState(sess))
}

// Goto godoc
// @Summary Jump to an assessment question
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.GotoRequest true "Target index"
// @Success 200 {object} dto.AssessmentStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/{id}/goto [post]
func (h *AssessmentHandler) Goto(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.GotoRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	sess.GoTo(req.Index)
	return c.JSON(toAssessmentState(sess))
}

// Submit godoc
// @Summary Submit the assessment
// @Description Requires every question answered; parks the answers in a one-shot results slot
// @Tags assessment
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AssessmentSubmitResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/{id}/submit [post]
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	answers, ok := sess.Submit()
	if !ok {
		return domain.ValidationErrors{{
			Field:   "answers",
			Message: "every question must be answered before submission",
		}}
	}

	resultsID := util.NewULID()
	if err := h.handoff.Put(c.Context(), resultsID, answers); err != nil {
		logger.Get().Error("Failed to park assessment results",
			zap.Error(err),
			zap.String("session_id", sess.ID),
		)
		return err
	}

	h.store.Delete(sess.ID)

	return c.JSON(dto.AssessmentSubmitResponse{
		Success:   true,
		ResultsID: resultsID,
		Message:   "Assessment submitted",
	})
}

// Results godoc
// @Summary Consume assessment results
// @Description The slot yields its answers exactly once; a second read is a 404
// @Tags assessment
// @Produce json
// @Param id path string true "Results ID"
// @Success 200 {object} dto.AssessmentResultsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /assessment/results/{id} [get]
func (h *AssessmentHandler) Results(c *fiber.Ctx) error {
	answers, err := h.handoff.Take(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.AssessmentResultsResponse{
		Success: true,
		Answers: answers,
	})
}

func (h *AssessmentHandler) lookup(c *fiber.Ctx) (*session.QuizSession, error) {
	sess, ok := h.store.Quiz(c.Params("id"))
	if !ok {
		return nil, domain.NewNotFoundError("assessment session not found")
	}
	return sess, nil
}

func toAssessmentState(s *session.QuizSession) dto.AssessmentStateResponse {
	questions := make([]dto.QuestionResponse, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, service.ToQuestionResponse(q))
	}
	return dto.AssessmentStateResponse{
		SessionID:    s.ID,
		Questions:    questions,
		CurrentIndex: s.CurrentIndex,
		Answers:      s.Answers,
		Progress:     s.Progress(),
		CanSubmit:    s.CanSubmit(),
		Submitted:    s.Submitted,
	}
}
