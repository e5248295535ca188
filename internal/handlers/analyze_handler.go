package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"intersight/api/internal/config"
	"intersight/api/internal/models"
	"intersight/api/internal/review"
	"intersight/api/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	session     *review.Session
	cfg         *config.Config
	maxFileSize int64
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	session *review.Session,
	cfg *config.Config,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		session:     session,
		cfg:         cfg,
		maxFileSize: cfg.Storage.MaxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: runs the two-stage pipeline for every
// uploaded CV and loads the resulting deck into the review session.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	if !h.cfg.GeminiConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Gemini API key not configured",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jobDescription := formValue(form.Value, "job_description")
	cultureText := formValue(form.Value, "culture_values")
	if jobDescription == "" || cultureText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description and culture_values are required",
		})
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no CV files uploaded",
		})
	}

	var files []services.BatchFile
	for _, header := range fileHeaders {
		if header.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("file %s too large. Max size: %d bytes", header.Filename, h.maxFileSize),
			})
		}

		src, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to open %s: %v", header.Filename, err),
			})
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read %s: %v", header.Filename, err),
			})
		}

		files = append(files, services.BatchFile{
			Filename: header.Filename,
			Data:     data,
		})
	}

	candidates, diagnostics := h.analyzer.AnalyzeBatch(c.Context(), jobDescription, cultureText, files)

	// A new analysis batch replaces the session wholesale.
	h.session.LoadDeck(candidates)

	if candidates == nil {
		candidates = []models.Candidate{}
	}
	if diagnostics == nil {
		diagnostics = []models.FileDiagnostic{}
	}

	return c.JSON(models.AnalyzeResponse{
		Candidates:  candidates,
		Diagnostics: diagnostics,
	})
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}
