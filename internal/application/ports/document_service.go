package ports

import (
	"context"

	"docvault-api/internal/domain/document"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, req document.UploadRequest) (*document.UploadResult, error)
	GetDocumentInfo(ctx context.Context, id document.ID) (*document.Document, error)
	OpenDocumentContent(ctx context.Context, id document.ID, side document.Side) (*Object, error)
}
