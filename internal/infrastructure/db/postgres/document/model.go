package document

import "time"

type (
	Document struct {
		ID             uint64
		UserID         uint64
		DocumentType   int16
		DocumentNumber *string
		IssueDate      *time.Time
		ExpiryDate     *time.Time
		// FileReference is the raw jsonb column.
		FileReference []byte

		CreatedAt time.Time
		UpdatedAt *time.Time
	}
)
