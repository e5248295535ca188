package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generator is the LLM gateway: one prompt string in, one cleaned response
// string out. Callers treat any error as an upstream failure for the
// candidate being processed.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, modelName string) (Generator, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateContent implements Generator.
func (g *geminiService) GenerateContent(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return CleanModelResponse(text), nil
}

// GenerateEmbedding implements Generator.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// NewUnconfiguredGenerator returns a Generator that fails every call with a
// clear "not configured" error. Used when no API key is present so the server
// still starts and the demo flow keeps working.
func NewUnconfiguredGenerator() Generator {
	return unconfiguredGenerator{}
}

type unconfiguredGenerator struct{}

func (unconfiguredGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("gemini API key not configured")
}

func (unconfiguredGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("gemini API key not configured")
}

// CleanModelResponse strips markdown code fences the model tends to wrap JSON
// in, leaving the payload alone otherwise.
func CleanModelResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	return strings.TrimSpace(text)
}

// ExtractJSON pulls the outermost JSON object or array out of text that might
// still contain prose around it.
func ExtractJSON(text string) string {
	text = CleanModelResponse(text)

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
