package document

import (
	"time"

	"docvault-api/internal/domain/user"
)

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

type (
	ID   uint64
	Side string

	// FileReference maps each side of a document to its object-store key.
	// A nil side has no stored image.
	FileReference struct {
		Front *string `json:"front"`
		Back  *string `json:"back"`
	}

	Document struct {
		ID             ID
		UserID         user.ID
		Category       Category
		DocumentNumber *string
		IssueDate      *time.Time
		ExpiryDate     *time.Time
		FileReference  FileReference

		CreatedAt time.Time
		UpdatedAt *time.Time
	}

	// FileAsset is one uploaded side, alive only for the duration of a request.
	FileAsset struct {
		Side        Side
		Data        []byte
		ContentType string
		Key         string
	}

	UploadRequest struct {
		UserID   user.ID
		Category Category
		Front    *FileAsset
		Back     *FileAsset
	}
)

func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case SideFront, SideBack:
		return Side(s), true
	}
	return "", false
}

func (r FileReference) Key(side Side) *string {
	switch side {
	case SideFront:
		return r.Front
	case SideBack:
		return r.Back
	}
	return nil
}

// Keys returns the non-null keys, front first.
func (r FileReference) Keys() []string {
	keys := make([]string, 0, 2)
	if r.Front != nil {
		keys = append(keys, *r.Front)
	}
	if r.Back != nil {
		keys = append(keys, *r.Back)
	}
	return keys
}
