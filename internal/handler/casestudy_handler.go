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

// CaseStudyHandler drives the case-study session: one fixed vignette, an
// answer slot, and a chat transcript backed by the LLM responder.
type CaseStudyHandler struct {
	store     *session.Store
	responder service.ChatResponder
}

// NewCaseStudyHandler creates a new CaseStudyHandler instance
func NewCaseStudyHandler(store *session.Store, responder service.ChatResponder) *CaseStudyHandler {
	return &CaseStudyHandler{
		store:     store,
		responder: responder,
	}
}

// Start godoc
// @Summary Start a case-study session
// @Description Creates a session over the bundled clinical vignette
// @Tags casestudy
// @Produce json
// @Success 201 {object} dto.CaseStudyStateResponse
// @Router /case-study [post]
func (h *CaseStudyHandler) Start(c *fiber.Ctx) error {
	sess := h.store.CreateCaseStudy()
	return c.Status(fiber.StatusCreated).JSON(toCaseStudyState(sess))
}

// State godoc
// @Summary Read case-study session state
// @Tags casestudy
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CaseStudyStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /case-study/{id} [get]
func (h *CaseStudyHandler) State(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(toCaseStudyState(sess))
}

// Answer godoc
// @Summary Select a case-study answer
// @Tags casestudy
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Selection"
// @Success 200 {object} dto.CaseStudyStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /case-study/{id}/answer [post]
func (h *CaseStudyHandler) Answer(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	sess.SelectAnswer(req.ChoiceIndex)
	return c.JSON(toCaseStudyState(sess))
}

// Submit godoc
// @Summary Submit the case-study answer
// @Tags casestudy
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CaseStudyStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /case-study/{id}/submit [post]
func (h *CaseStudyHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	sess.SubmitAnswer()
	return c.JSON(toCaseStudyState(sess))
}

// Message godoc
// @Summary Send a chat message about the case
// @Description Appends the user message and a reply placeholder, then fills the placeholder from the chat backend
// @Tags casestudy
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ChatMessageRequest true "Message"
// @Success 200 {object} dto.CaseStudyStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /case-study/{id}/message [post]
func (h *CaseStudyHandler) Message(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}
	if req.Content == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("content")}
	}

	replyID := sess.SendMessage(req.Content)

	// Each streamed chunk replaces the placeholder's content in full.
	reply, err := h.responder.Reply(c.Context(), sess.Vignette.Vignette, req.Content,
		func(full string) {
			sess.UpdateReply(replyID, full)
		})
	if err != nil {
		logger.Get().Error("Chat reply failed",
			zap.Error(err),
			zap.String("session_id", sess.ID),
		)
		sess.UpdateReply(replyID, "The attending is unavailable right now. Please try again.")
		return c.JSON(toCaseStudyState(sess))
	}
	sess.UpdateReply(replyID, reply)

	return c.JSON(toCaseStudyState(sess))
}

// Reset godoc
// @Summary Reset the case-study session
// @Description Clears the answer and transcript while keeping the vignette
// @Tags casestudy
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CaseStudyStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /case-study/{id}/reset [post]
func (h *CaseStudyHandler) Reset(c *fiber.Ctx) error {
	sess, err := h.lookup(c)
	if err != nil {
		return err
	}
	sess.Reset()
	return c.JSON(toCaseStudyState(sess))
}

func (h *CaseStudyHandler) lookup(c *fiber.Ctx) (*session.CaseStudySession, error) {
	sess, ok := h.store.CaseStudy(c.Params("id"))
	if !ok {
		return nil, domain.NewNotFoundError("case-study session not found")
	}
	return sess, nil
}

func toCaseStudyState(s *session.CaseStudySession) dto.CaseStudyStateResponse {
	transcript := make([]dto.ChatMessageDTO, 0, len(s.Transcript))
	for _, m := range s.Transcript {
		transcript = append(transcript, dto.ChatMessageDTO{
			ID:      m.ID,
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp := dto.CaseStudyStateResponse{
		SessionID:      s.ID,
		Title:          s.Vignette.Title,
		Vignette:       s.Vignette.Vignette,
		Question:       s.Vignette.Question,
		Choices:        s.Vignette.Choices,
		SelectedAnswer: s.Selected,
		Submitted:      s.Submitted,
		Correct:        s.Correct,
		Transcript:     transcript,
	}
	// The explanation is withheld until the answer is submitted.
	if s.Submitted {
		resp.Explanation = s.Vignette.Explanation
	}
	return resp
}
