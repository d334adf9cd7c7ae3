package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/models"
)

// VectorIndexService mirrors the job catalog into Qdrant so search queries
// run against an ANN index instead of a full catalog scan.
type VectorIndexService interface {
	InitCollection(ctx context.Context) error
	UpsertJob(ctx context.Context, job models.JobPosting) error
	SearchJobs(ctx context.Context, queryEmbedding []float32, limit int) ([]models.JobSearchResult, error)
	DeleteJob(ctx context.Context, jobID string) error
}

type vectorIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewVectorIndexService(urlStr, apiKey, collectionName string, vectorSize int) (VectorIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// The gRPC client listens on 6334 unless the URL says otherwise
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

	return &vectorIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// jobPointID derives a stable numeric point id from the catalog job id so
// re-ingesting a job overwrites its point instead of duplicating it.
func jobPointID(jobID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(jobID))
	return h.Sum64()
}

// InitCollection implements VectorIndexService.
func (v *vectorIndexService) InitCollection(ctx context.Context) error {
	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		logger.Info().Str("collection", v.collectionName).Msg("Qdrant collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.Info().Str("collection", v.collectionName).Msg("Qdrant collection created")

	return nil
}

// UpsertJob implements VectorIndexService.
func (v *vectorIndexService) UpsertJob(ctx context.Context, job models.JobPosting) error {
	if len(job.Embedding) == 0 {
		return fmt.Errorf("job %s has no embedding", job.ID)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(jobPointID(job.ID)),
		Vectors: qdrant.NewVectors(job.Embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"job_id": job.ID,
			"title":  job.Title,
		}),
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchJobs implements VectorIndexService.
func (v *vectorIndexService) SearchJobs(ctx context.Context, queryEmbedding []float32, limit int) ([]models.JobSearchResult, error) {
	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]models.JobSearchResult, 0, len(searchResult))
	for _, point := range searchResult {
		result := models.JobSearchResult{Score: float64(point.Score)}

		if jobID, ok := point.Payload["job_id"]; ok {
			if val, ok := jobID.GetKind().(*qdrant.Value_StringValue); ok {
				result.JobID = val.StringValue
			}
		}
		if title, ok := point.Payload["title"]; ok {
			if val, ok := title.GetKind().(*qdrant.Value_StringValue); ok {
				result.Title = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteJob implements VectorIndexService.
func (v *vectorIndexService) DeleteJob(ctx context.Context, jobID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}
