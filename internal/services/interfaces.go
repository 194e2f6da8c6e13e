package services

import (
	"context"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// AssessmentService manages the catalog of assessment definitions
type AssessmentService interface {
	List(ctx context.Context) ([]models.Summary, error)
	Get(ctx context.Context, key string) (*models.Assessment, error)
	Put(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, key string) error
}

// RunnerService hosts live sessions and drives them from request payloads
type RunnerService interface {
	Create(ctx context.Context, req *models.CreateSessionRequest) (*models.State, error)
	Get(ctx context.Context, sessionID string) (*models.State, error)
	Begin(ctx context.Context, sessionID string) (*models.State, error)
	SubmitAnswer(ctx context.Context, sessionID string, req *models.AnswerRequest) (*models.State, error)
	Place(ctx context.Context, sessionID string, req *models.PlacementRequest) (*models.State, error)
	Unplace(ctx context.Context, sessionID, itemID string) (*models.State, error)
	Next(ctx context.Context, sessionID string) (*models.State, error)
	Previous(ctx context.Context, sessionID string) (*models.State, error)
	Complete(ctx context.Context, sessionID string) (*models.State, error)
	Restart(ctx context.Context, sessionID string) (*models.State, error)
	Result(ctx context.Context, sessionID string) (*models.Result, error)
	ExportResult(ctx context.Context, sessionID string) ([]byte, error)
	Close(ctx context.Context, sessionID string) error
	Shutdown(ctx context.Context)
}

// DefinitionSource resolves assessment keys to definitions
type DefinitionSource interface {
	Get(ctx context.Context, key string) (*models.Assessment, error)
}
