package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/assessment-engine/internal/catalog"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

type assessmentService struct {
	catalog   *catalog.Catalog
	publisher events.EventPublisher
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewAssessmentService(c *catalog.Catalog, publisher events.EventPublisher, logger *slog.Logger) AssessmentService {
	return &assessmentService{
		catalog:   c,
		publisher: publisher,
		logger:    logger,
		ops:       NewServiceLogger(logger, "assessment"),
	}
}

func (s *assessmentService) List(ctx context.Context) ([]models.Summary, error) {
	return s.catalog.List(ctx)
}

func (s *assessmentService) Get(ctx context.Context, key string) (*models.Assessment, error) {
	return s.catalog.Get(ctx, key)
}

func (s *assessmentService) Put(ctx context.Context, assessment *models.Assessment) (err error) {
	op := s.ops.WithOperation(ctx, "put_assessment")
	defer func() { op.LogResult(assessment.Key, "assessment", err) }()

	if err = s.catalog.Put(ctx, assessment); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.NewAssessmentChangedEvent(events.EventAssessmentSaved, assessment.Key, assessment.Kind))
	return nil
}

func (s *assessmentService) Delete(ctx context.Context, key string) (err error) {
	op := s.ops.WithOperation(ctx, "delete_assessment")
	defer func() { op.LogResult(key, "assessment", err) }()

	if err = s.catalog.Delete(ctx, key); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.NewAssessmentChangedEvent(events.EventAssessmentDeleted, key, ""))
	return nil
}

// publish sends an event without failing the caller; delivery problems are
// logged only.
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.SessionEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishSessionEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}
