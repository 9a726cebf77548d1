package document

import (
	"encoding/json"
	"fmt"

	domain "docvault-api/internal/domain/document"
	"docvault-api/internal/domain/user"
)

func fromDBModel(model *Document) (*domain.Document, error) {
	d := &domain.Document{
		ID:             domain.ID(model.ID),
		UserID:         user.ID(model.UserID),
		Category:       domain.Category(model.DocumentType),
		DocumentNumber: model.DocumentNumber,
		IssueDate:      model.IssueDate,
		ExpiryDate:     model.ExpiryDate,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if len(model.FileReference) > 0 {
		if err := json.Unmarshal(model.FileReference, &d.FileReference); err != nil {
			return nil, fmt.Errorf("decoding file_reference of document %d: %w", model.ID, err)
		}
	}

	return d, nil
}

// toFileReference always emits both sides, null included.
func toFileReference(ref domain.FileReference) ([]byte, error) {
	return json.Marshal(ref)
}
