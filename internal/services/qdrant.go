package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"intersight/api/internal/models"
)

// CandidateIndex is the vector store behind similar-candidate lookup. Every
// successfully analyzed CV is embedded and upserted; queries return the
// closest previously seen candidates.
type CandidateIndex interface {
	InitCollection() error
	UpsertCandidate(ctx context.Context, candidate *models.Candidate, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarCandidate, error)
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantIndex(urlStr, apiKey, collectionName string) (CandidateIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements CandidateIndex.
func (q *qdrantIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertCandidate implements CandidateIndex.
func (q *qdrantIndex) UpsertCandidate(ctx context.Context, candidate *models.Candidate, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"candidate_id":  candidate.ID,
			"filename":      candidate.Filename,
			"traffic_light": candidate.Analysis.TrafficLight,
			"match":         int64(candidate.Analysis.OverallMatchAccuracy),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements CandidateIndex.
func (q *qdrantIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarCandidate, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.SimilarCandidate
	for _, point := range searchResult {
		payload := point.Payload

		result := models.SimilarCandidate{
			Score: point.Score,
		}

		if candidateID, ok := payload["candidate_id"]; ok {
			if val, ok := candidateID.GetKind().(*qdrant.Value_StringValue); ok {
				result.CandidateID = val.StringValue
			}
		}

		if filename, ok := payload["filename"]; ok {
			if val, ok := filename.GetKind().(*qdrant.Value_StringValue); ok {
				result.Filename = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
