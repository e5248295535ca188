package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"intersight/api/internal/models"
	"intersight/api/internal/repositories"
)

// NarrativeService renders the prose the review flow needs on transitions:
// rejection feedback emails and executive summaries for held candidates.
type NarrativeService struct {
	generator     Generator
	candidateRepo repositories.CandidateRepository
	promptBuilder *PromptBuilder
}

func NewNarrativeService(generator Generator, candidateRepo repositories.CandidateRepository) *NarrativeService {
	return &NarrativeService{
		generator:     generator,
		candidateRepo: candidateRepo,
		promptBuilder: NewPromptBuilder(),
	}
}

// RejectionFeedback generates a constructive feedback email for a rejected
// candidate and stores it on the persisted record best-effort.
func (n *NarrativeService) RejectionFeedback(ctx context.Context, candidate models.Candidate) (string, error) {
	analysisJSON, err := json.Marshal(candidate.Analysis)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	candidateName := strings.TrimSuffix(candidate.Filename, filepath.Ext(candidate.Filename))
	prompt := n.promptBuilder.BuildFeedbackPrompt(
		candidateName,
		candidate.Context.JobTitle,
		candidate.Context.CompanyName,
		string(analysisJSON),
	)

	feedback, err := n.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate feedback: %w", err)
	}

	n.storeFeedback(candidate.ID, feedback)

	return feedback, nil
}

// ExecutiveSummary generates decision support for a candidate on hold.
func (n *NarrativeService) ExecutiveSummary(ctx context.Context, candidate models.Candidate) (string, error) {
	analysisJSON, err := json.Marshal(candidate.Analysis)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	prompt := n.promptBuilder.BuildExecutiveSummaryPrompt(string(analysisJSON), candidate.Context.CultureText)

	summary, err := n.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return strings.TrimSpace(summary), nil
}

func (n *NarrativeService) storeFeedback(candidateID, feedback string) {
	if n.candidateRepo == nil {
		return
	}

	record, err := n.candidateRepo.FindByFilename(candidateID)
	if err != nil {
		log.Printf("⚠️  No stored record for %s, feedback kept in-session only\n", candidateID)
		return
	}

	if err := n.candidateRepo.UpdateFeedback(record.ID, feedback); err != nil {
		log.Printf("⚠️  Failed to store feedback for %s: %v\n", candidateID, err)
	}
}
