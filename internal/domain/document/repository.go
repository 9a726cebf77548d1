package document

import (
	"context"
	"errors"

	"docvault-api/internal/domain/user"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists for user and document type")
)

type Repository interface {
	FetchDocumentByID(ctx context.Context, id ID) (*Document, error)
	FetchByUserAndCategory(ctx context.Context, userID user.ID, category Category) (*Document, error)
	CreateDocument(ctx context.Context, req *Document) (*Document, error)
	UpdateFileReference(ctx context.Context, id ID, ref FileReference) (int64, error)
}
