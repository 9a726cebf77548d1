package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/document"
	"docvault-api/internal/infrastructure/mq"
)

// ErrStoreRead marks a failed object-store read on the retrieval path.
var ErrStoreRead = errors.New("error reading document from storage")

type DocumentService struct {
	store       ports.ObjectStore
	repo        document.Repository
	coordinator *UploadCoordinator
	events      ports.EventPublisher
	logger      *zap.Logger
	mCounter    *prometheus.CounterVec
}

func NewDocumentService(
	store ports.ObjectStore,
	repo document.Repository,
	coordinator *UploadCoordinator,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.DocumentService {
	return &DocumentService{
		store:       store,
		repo:        repo,
		coordinator: coordinator,
		events:      events,
		logger:      logger,
		mCounter:    mCounter,
	}
}

// UploadDocument returns a *document.ValidationError without touching any
// store when the request is rejected. Every other outcome is in the result.
func (ds *DocumentService) UploadDocument(ctx context.Context, req document.UploadRequest) (*document.UploadResult, error) {
	if err := document.Validate(req); err != nil {
		ds.count("document_upload_rejected_total")
		return nil, err
	}

	res := ds.coordinator.Run(ctx, req)
	if res.Outcome == document.OutcomeValidationFailed {
		return nil, res.Err
	}

	ds.publish(req, res)
	if res.Outcome.Succeeded() {
		ds.count("document_uploaded_total")
	}

	return res, nil
}

func (ds *DocumentService) GetDocumentInfo(ctx context.Context, id document.ID) (*document.Document, error) {
	doc, err := ds.repo.FetchDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, document.ErrDocumentNotFound
	}

	return doc, nil
}

// OpenDocumentContent returns document.ErrDocumentNotFound for an unknown
// document, an empty side or a missing object. The caller closes the body.
func (ds *DocumentService) OpenDocumentContent(ctx context.Context, id document.ID, side document.Side) (*ports.Object, error) {
	doc, err := ds.GetDocumentInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	key := doc.FileReference.Key(side)
	if key == nil {
		return nil, document.ErrDocumentNotFound
	}

	obj, err := ds.store.Get(ctx, *key)
	if err != nil {
		if errors.Is(err, ports.ErrObjectNotFound) {
			ds.logger.Warn("document references a missing object",
				zap.Uint64("document_id", uint64(id)),
				zap.String("side", string(side)),
				zap.String("key", *key),
			)
			return nil, document.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	return obj, nil
}

func (ds *DocumentService) publish(req document.UploadRequest, res *document.UploadResult) {
	if ds.events == nil {
		return
	}

	action := mq.ActionDocumentCompleted
	switch {
	case res.Outcome == document.OutcomeCompletedWithStaleAssets:
		action = mq.ActionDocumentStaleAssets
	case res.Outcome.Uncompensated():
		action = mq.ActionDocumentOrphanedAssets
	case !res.Outcome.Succeeded():
		action = mq.ActionDocumentFailed
	}

	payload := mq.DocumentPayload{
		DocumentType: uint8(req.Category),
		Outcome:      string(res.Outcome),
		FailedStep:   res.FailedStep,
		OrphanedKeys: res.OrphanedKeys,
		StaleKeys:    res.StaleKeys,
	}
	if res.Document != nil {
		payload.DocumentID = uint64(res.Document.ID)
	}

	// the upload outcome is final; a full publisher buffer drops the event
	select {
	case ds.events.GetInputChan() <- mq.NewEvent(action, uint64(req.UserID), payload):
	default:
		ds.logger.Warn("event buffer full, dropping document event",
			zap.String("action", action),
			zap.Uint64("user_id", uint64(req.UserID)),
		)
		ds.count("document_event_dropped_total")
	}
}

func (ds *DocumentService) count(label string) {
	if ds.mCounter != nil {
		ds.mCounter.WithLabelValues(label).Inc()
	}
}
