package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"intersight/api/internal/models"
	"intersight/api/internal/services"
)

type SearchHandler struct {
	generator services.Generator
	index     services.CandidateIndex
}

func NewSearchHandler(generator services.Generator, index services.CandidateIndex) *SearchHandler {
	return &SearchHandler{
		generator: generator,
		index:     index,
	}
}

// HandleSimilar handles GET /candidates/similar: embeds the query text and
// returns the closest previously analyzed candidates.
func (h *SearchHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.index == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "candidate index not configured",
		})
	}

	queryText := c.Query("text")
	if queryText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text query parameter is required",
		})
	}

	limit := 5
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}

	embedding, err := h.generator.GenerateEmbedding(c.Context(), queryText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to embed query text",
		})
	}

	results, err := h.index.SearchSimilar(c.Context(), embedding, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to search candidate index",
		})
	}

	if results == nil {
		results = []models.SimilarCandidate{}
	}

	return c.JSON(models.SimilarResponse{
		Results: results,
	})
}
