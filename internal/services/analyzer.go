package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"intersight/api/internal/models"
	"intersight/api/internal/repositories"
)

// FailureKind classifies per-candidate pipeline failures. Every kind is
// isolated to its candidate; the batch always continues.
type FailureKind string

const (
	FailureIngestion FailureKind = "ingestion"
	FailureParse     FailureKind = "parse"
	FailureUpstream  FailureKind = "upstream"
)

// PipelineFailure reports why one candidate's pipeline run was skipped.
type PipelineFailure struct {
	Kind    FailureKind
	Stage   string
	Message string
}

func (f *PipelineFailure) Error() string {
	return fmt.Sprintf("%s failure at %s stage: %s", f.Kind, f.Stage, f.Message)
}

// Only the first candidate URL is ever considered for enrichment. This is a
// deliberate policy, not an accident of list indexing.
const maxEnrichmentURLs = 1

// AnalyzerService runs the two-stage analysis pipeline for uploaded CVs.
type AnalyzerService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*models.Candidate, *PipelineFailure)
	AnalyzeBatch(ctx context.Context, jobDescription, cultureText string, files []BatchFile) ([]models.Candidate, []models.FileDiagnostic)
}

// AnalyzeInput carries one candidate's material through the pipeline.
type AnalyzeInput struct {
	JobDescription string
	CultureText    string
	Filename       string
	StoredPath     string
	CVText         string
}

// BatchFile is one uploaded document awaiting ingestion and analysis.
type BatchFile struct {
	Filename string
	Data     []byte
}

type analyzerService struct {
	generator     Generator
	github        GitHubEnricher
	portfolio     PortfolioEnricher
	extractor     DocumentExtractor
	storage       StorageService
	candidateRepo repositories.CandidateRepository
	index         CandidateIndex
	promptBuilder *PromptBuilder
	concurrency   int
}

func NewAnalyzerService(
	generator Generator,
	github GitHubEnricher,
	portfolio PortfolioEnricher,
	extractor DocumentExtractor,
	storage StorageService,
	candidateRepo repositories.CandidateRepository,
	index CandidateIndex,
	concurrency int,
) AnalyzerService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &analyzerService{
		generator:     generator,
		github:        github,
		portfolio:     portfolio,
		extractor:     extractor,
		storage:       storage,
		candidateRepo: candidateRepo,
		index:         index,
		promptBuilder: NewPromptBuilder(),
		concurrency:   concurrency,
	}
}

// Analyze implements AnalyzerService. It runs triage, enrichment selection,
// and 360° scoring for one candidate, then persists the result best-effort.
func (a *analyzerService) Analyze(ctx context.Context, in AnalyzeInput) (*models.Candidate, *PipelineFailure) {
	// Stage 1: triage classification
	triagePrompt := a.promptBuilder.BuildTriagePrompt(in.JobDescription, in.CVText)
	triageText, err := a.generator.GenerateContent(ctx, triagePrompt)
	if err != nil {
		return nil, &PipelineFailure{Kind: FailureUpstream, Stage: "triage", Message: err.Error()}
	}

	var triage models.TriageResult
	if failure := parseStageJSON(triageText, "triage", &triage); failure != nil {
		return nil, failure
	}
	triage.Normalize()

	// Enrichment selection
	externalContext := a.selectEnrichment(ctx, &triage)

	// Stage 2: full 360° scoring
	jobAndCulture := fmt.Sprintf("%s\n%s", in.JobDescription, in.CultureText)
	scoringPrompt := a.promptBuilder.BuildMatching360Prompt(jobAndCulture, in.CVText, externalContext)
	scoringText, err := a.generator.GenerateContent(ctx, scoringPrompt)
	if err != nil {
		return nil, &PipelineFailure{Kind: FailureUpstream, Stage: "scoring", Message: err.Error()}
	}

	var analysis models.Analysis360
	if failure := parseStageJSON(scoringText, "scoring", &analysis); failure != nil {
		return nil, failure
	}
	analysis.Normalize()

	candidate := &models.Candidate{
		ID:       fmt.Sprintf("%d_%s", time.Now().Unix(), in.Filename),
		Filename: in.Filename,
		Analysis: analysis,
		Context: models.CandidateContext{
			CVText:      in.CVText,
			CultureText: in.CultureText,
			JobTitle:    firstLine(in.JobDescription, "Position"),
			CompanyName: firstLine(in.CultureText, "Company"),
		},
	}

	// Persistence and indexing are best-effort: an analyzed candidate stays
	// usable in-session even when the store is unreachable.
	a.persistCandidate(candidate, in.StoredPath)
	a.indexCandidate(ctx, candidate)

	return candidate, nil
}

// AnalyzeBatch implements AnalyzerService. Files are processed with bounded
// concurrency but results keep the upload order; a failure in one file never
// aborts the others.
func (a *analyzerService) AnalyzeBatch(ctx context.Context, jobDescription, cultureText string, files []BatchFile) ([]models.Candidate, []models.FileDiagnostic) {
	type outcome struct {
		candidate *models.Candidate
		failure   *models.FileDiagnostic
	}

	outcomes := make([]outcome, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.concurrency)

	for i, file := range files {
		wg.Add(1)
		go func(i int, file BatchFile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			candidate, failure := a.processFile(ctx, jobDescription, cultureText, file)
			if failure != nil {
				log.Printf("⚠️  Skipping %s: %v\n", file.Filename, failure)
				outcomes[i] = outcome{failure: &models.FileDiagnostic{
					Filename: file.Filename,
					Stage:    failure.Stage,
					Error:    failure.Message,
				}}
				return
			}
			outcomes[i] = outcome{candidate: candidate}
		}(i, file)
	}

	wg.Wait()

	var candidates []models.Candidate
	var diagnostics []models.FileDiagnostic
	for _, o := range outcomes {
		if o.candidate != nil {
			candidates = append(candidates, *o.candidate)
		}
		if o.failure != nil {
			diagnostics = append(diagnostics, *o.failure)
		}
	}

	return candidates, diagnostics
}

func (a *analyzerService) processFile(ctx context.Context, jobDescription, cultureText string, file BatchFile) (*models.Candidate, *PipelineFailure) {
	_, storedPath, err := a.storage.SaveFile(file.Filename, file.Data)
	if err != nil {
		return nil, &PipelineFailure{Kind: FailureIngestion, Stage: "storage", Message: err.Error()}
	}

	cvText, err := a.extractor.ExtractText(file.Filename, file.Data)
	if err != nil {
		return nil, &PipelineFailure{Kind: FailureIngestion, Stage: "extraction", Message: err.Error()}
	}

	return a.Analyze(ctx, AnalyzeInput{
		JobDescription: jobDescription,
		CultureText:    cultureText,
		Filename:       file.Filename,
		StoredPath:     storedPath,
		CVText:         cvText,
	})
}

// selectEnrichment decides which external call, if any, supplements the CV.
// Only the Tech/code-hosting and Design/portfolio pairings qualify.
func (a *analyzerService) selectEnrichment(ctx context.Context, triage *models.TriageResult) string {
	if len(triage.URLsToAnalyze) == 0 {
		return NoEnrichment
	}

	firstURL := triage.URLsToAnalyze[maxEnrichmentURLs-1]
	lowered := strings.ToLower(firstURL)

	switch {
	case triage.JobCategory == models.CategoryTech && strings.Contains(lowered, "github"):
		return a.github.ProfileContext(ctx, firstURL)
	case triage.JobCategory == models.CategoryDesign &&
		(strings.Contains(lowered, "behance") || strings.Contains(lowered, "dribbble")):
		return a.portfolio.PortfolioContext(ctx, firstURL)
	}

	return NoEnrichment
}

func (a *analyzerService) persistCandidate(candidate *models.Candidate, storedPath string) {
	if a.candidateRepo == nil {
		log.Println("⚠️  Persistence not configured, keeping candidate in-session only")
		return
	}

	analysisJSON, err := json.Marshal(candidate.Analysis)
	if err != nil {
		log.Printf("⚠️  Failed to encode analysis for %s: %v\n", candidate.Filename, err)
		return
	}

	record := &models.CandidateRecord{
		CVFilename:  candidate.ID,
		CVFilepath:  storedPath,
		Analysis360: string(analysisJSON),
		Status:      models.StatusAnalyzed,
	}

	if err := a.candidateRepo.Create(record); err != nil {
		log.Printf("⚠️  Failed to persist candidate %s: %v\n", candidate.Filename, err)
	}
}

func (a *analyzerService) indexCandidate(ctx context.Context, candidate *models.Candidate) {
	if a.index == nil {
		return
	}

	embedding, err := a.generator.GenerateEmbedding(ctx, candidate.Context.CVText)
	if err != nil {
		log.Printf("⚠️  Failed to embed CV for %s: %v\n", candidate.Filename, err)
		return
	}

	if err := a.index.UpsertCandidate(ctx, candidate, embedding); err != nil {
		log.Printf("⚠️  Failed to index candidate %s: %v\n", candidate.Filename, err)
	}
}

func parseStageJSON(text, stage string, target interface{}) *PipelineFailure {
	cleaned := ExtractJSON(text)

	// The gateway may report an upstream error as a JSON payload instead of
	// the stage result.
	var errPayload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(cleaned), &errPayload); err == nil && errPayload.Error != "" {
		return &PipelineFailure{Kind: FailureUpstream, Stage: stage, Message: errPayload.Error}
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return &PipelineFailure{Kind: FailureParse, Stage: stage, Message: fmt.Sprintf("invalid JSON: %v", err)}
	}

	return nil
}

func firstLine(text, fallback string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return fallback
}
