package document

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"docvault-api/internal/domain/document"
	"docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) document.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchDocumentByID(ctx context.Context, id document.ID) (*document.Document, error) {
	return r.fetchOne(ctx, SelectDocumentByID, uint64(id))
}

// FetchByUserAndCategory returns nil, nil when the user has no document of the category.
func (r *Repository) FetchByUserAndCategory(
	ctx context.Context,
	userID user.ID,
	category document.Category,
) (*document.Document, error) {
	return r.fetchOne(ctx, SelectDocumentByUserAndType, uint64(userID), int16(category))
}

func (r *Repository) CreateDocument(ctx context.Context, req *document.Document) (*document.Document, error) {
	ref, err := toFileReference(req.FileReference)
	if err != nil {
		return nil, err
	}

	d := new(Document)
	err = r.db.QueryRow(
		ctx,
		InsertDocument,
		uint64(req.UserID), int16(req.Category), req.DocumentNumber, req.IssueDate, req.ExpiryDate, ref,
	).Scan(
		&d.ID,
		&d.UserID,
		&d.DocumentType,
		&d.DocumentNumber,
		&d.IssueDate,
		&d.ExpiryDate,
		&d.FileReference,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, document.ErrDocumentExists
		}
		return nil, err
	}

	return fromDBModel(d)
}

// UpdateFileReference replaces the whole reference and reports the affected rows.
func (r *Repository) UpdateFileReference(ctx context.Context, id document.ID, ref document.FileReference) (int64, error) {
	b, err := toFileReference(ref)
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, UpdateFileReferenceByID, b, uint64(id))
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*document.Document, error) {
	d := new(Document)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&d.ID,
		&d.UserID,
		&d.DocumentType,
		&d.DocumentNumber,
		&d.IssueDate,
		&d.ExpiryDate,
		&d.FileReference,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(d)
}
