package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"intersight/api/internal/models"
	"intersight/api/internal/review"
)

type ReviewHandler struct {
	session *review.Session
}

func NewReviewHandler(session *review.Session) *ReviewHandler {
	return &ReviewHandler{
		session: session,
	}
}

// HandleSnapshot handles GET /review: the session state, the candidate under
// the cursor, bucket counts, and the history tail.
func (h *ReviewHandler) HandleSnapshot(c *fiber.Ctx) error {
	tailSize := 5
	if n, err := strconv.Atoi(c.Query("history")); err == nil && n > 0 {
		tailSize = n
	}

	response := fiber.Map{
		"state":   h.session.State(),
		"counts":  h.session.Counts(),
		"history": h.session.HistoryTail(tailSize),
	}

	if candidate, ok := h.session.CurrentCandidate(); ok {
		response["current_candidate"] = candidate
	}

	return c.JSON(response)
}

// HandleDecide handles POST /review/decisions for the current candidate.
func (h *ReviewHandler) HandleDecide(c *fiber.Ctx) error {
	var req models.DecideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	decision, err := h.session.DecideCurrent(c.Context(), req.Decision)
	if err != nil {
		return respondSessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"decision": decision,
		"counts":   h.session.Counts(),
		"state":    h.session.State(),
	})
}

// HandleHolds handles GET /review/holds.
func (h *ReviewHandler) HandleHolds(c *fiber.Ctx) error {
	holds := h.session.OnHoldCandidates()
	if holds == nil {
		holds = []models.Candidate{}
	}

	return c.JSON(fiber.Map{
		"on_hold": holds,
	})
}

// HandleSummary handles GET /review/holds/:id/summary.
func (h *ReviewHandler) HandleSummary(c *fiber.Ctx) error {
	candidateID := c.Params("id")

	summary, err := h.session.RequestExecutiveSummary(c.Context(), candidateID)
	if err != nil {
		return respondSessionError(c, err)
	}

	return c.JSON(models.SummaryResponse{
		CandidateID: candidateID,
		Summary:     summary,
	})
}

// HandleFinalize handles POST /review/holds/:id/finalize.
func (h *ReviewHandler) HandleFinalize(c *fiber.Ctx) error {
	candidateID := c.Params("id")

	var req models.FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	decision, err := h.session.FinalizeHold(c.Context(), candidateID, req.Decision)
	if err != nil {
		return respondSessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"decision": decision,
		"counts":   h.session.Counts(),
		"state":    h.session.State(),
	})
}

// HandleFeedback handles GET /review/feedback: the generated rejection
// feedback emails keyed by candidate id.
func (h *ReviewHandler) HandleFeedback(c *fiber.Ctx) error {
	return c.JSON(models.FeedbackResponse{
		Feedback: h.session.FeedbackEmails(),
	})
}

// HandleLoadDemo handles POST /review/demo.
func (h *ReviewHandler) HandleLoadDemo(c *fiber.Ctx) error {
	h.session.LoadDeck(review.DemoDeck())

	return c.JSON(fiber.Map{
		"message": "Demo deck loaded",
		"counts":  h.session.Counts(),
		"state":   h.session.State(),
	})
}

// HandleReset handles POST /review/reset.
func (h *ReviewHandler) HandleReset(c *fiber.Ctx) error {
	h.session.Reset()

	return c.JSON(fiber.Map{
		"message": "Review session reset",
		"state":   h.session.State(),
	})
}

// respondSessionError maps invalid state transitions to 409 so caller bugs
// are distinguishable from upstream failures.
func respondSessionError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if review.IsStateTransition(err) {
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
