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

// ComparisonHandler drives the three-step question comparison flow.
type ComparisonHandler struct {
	store     *session.Store
	questions service.QuestionService
}

// NewComparisonHandler creates a new ComparisonHandler instance
func NewComparisonHandler(store *session.Store, questions service.QuestionService) *ComparisonHandler {
	return &ComparisonHandler{
		store:     store,
		questions: questions,
	}
}

// Start godoc
// @Summary Start a comparison flow
// @Description Creates a flow and fetches its first question pair
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body dto.StartComparisonRequest true "Category selection"
// @Success 201 {object} dto.ComparisonStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison [post]
func (h *ComparisonHandler) Start(c *fiber.Ctx) error {
	var req dto.StartComparisonRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}
	if req.Category == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("category")}
	}

	flow := h.store.CreateComparison(req.Category)
	if err := flow.FetchNewPair(c.Context(), h.questions); err != nil {
		logger.Get().Warn("Comparison pair fetch failed",
			zap.Error(err),
			zap.String("category", req.Category),
		)
		h.store.Delete(flow.ID)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toComparisonState(flow))
}

// State godoc
// @Summary Read comparison flow state
// @Tags comparison
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} dto.ComparisonStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison/{id} [get]
func (h *ComparisonHandler) State(c *fiber.Ctx) error {
	flow, err := h.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(toComparisonState(flow))
}

// Answer godoc
// @Summary Answer the current comparison question
// @Description Records the selection and reveals its result; advancing still requires continue
// @Tags comparison
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param request body dto.AnswerRequest true "Selection"
// @Success 200 {object} dto.ComparisonStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison/{id}/answer [post]
func (h *ComparisonHandler) Answer(c *fiber.Ctx) error {
	flow, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	flow.Answer(req.ChoiceIndex)
	return c.JSON(toComparisonState(flow))
}

// Continue godoc
// @Summary Advance the comparison flow
// @Tags comparison
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} dto.ComparisonStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison/{id}/continue [post]
func (h *ComparisonHandler) Continue(c *fiber.Ctx) error {
	flow, err := h.lookup(c)
	if err != nil {
		return err
	}
	flow.Continue()
	return c.JSON(toComparisonState(flow))
}

// SelectBetter godoc
// @Summary Pick the better question of the pair
// @Tags comparison
// @Accept json
// @Produce json
// @Param id path string true "Flow ID"
// @Param request body dto.SelectBetterRequest true "Choice (1 or 2)"
// @Success 200 {object} dto.ComparisonStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison/{id}/select [post]
func (h *ComparisonHandler) SelectBetter(c *fiber.Ctx) error {
	flow, err := h.lookup(c)
	if err != nil {
		return err
	}

	var req dto.SelectBetterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}

	flow.SelectBetter(req.Which)
	return c.JSON(toComparisonState(flow))
}

// Submit godoc
// @Summary Submit the comparison and start a fresh pair
// @Description Logs the judgement, then fetches the next pair for the same category
// @Tags comparison
// @Produce json
// @Param id path string true "Flow ID"
// @Success 200 {object} dto.ComparisonStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /comparison/{id}/submit [post]
func (h *ComparisonHandler) Submit(c *fiber.Ctx) error {
	flow, err := h.lookup(c)
	if err != nil {
		return err
	}

	if !flow.Submit() {
		return domain.ValidationErrors{{
			Field:   "better",
			Message: "a better-question choice is required before submission",
		}}
	}

	if err := flow.FetchNewPair(c.Context(), h.questions); err != nil {
		logger.Get().Warn("Comparison pair refresh failed",
			zap.Error(err),
			zap.String("category", flow.Category),
		)
		return err
	}

	return c.JSON(toComparisonState(flow))
}

func (h *ComparisonHandler) lookup(c *fiber.Ctx) (*session.ComparisonFlow, error) {
	flow, ok := h.store.Comparison(c.Params("id"))
	if !ok {
		return nil, domain.NewNotFoundError("comparison flow not found")
	}
	return flow, nil
}

func toComparisonState(f *session.ComparisonFlow) dto.ComparisonStateResponse {
	return dto.ComparisonStateResponse{
		SessionID: f.ID,
		Category:  f.Category,
		Step:      int(f.Step),
		First:     toComparisonSlot(&f.First),
		Second:    toComparisonSlot(&f.Second),
		Better:    f.Better,
		Submitted: f.Submitted,
	}
}

func toComparisonSlot(slot *session.ComparisonSlot) dto.ComparisonSlotDTO {
	out := dto.ComparisonSlotDTO{
		SelectedIndex: slot.Selected,
		Revealed:      slot.Revealed,
		Correct:       slot.Revealed && slot.Correct(),
	}
	if slot.Question != nil {
		out.Question = service.ToQuestionResponse(slot.Question)
	}
	return out
}
