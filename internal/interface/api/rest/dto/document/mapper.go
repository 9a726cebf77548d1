package document

import (
	"net/http"
	"time"

	"docvault-api/internal/domain/document"
)

const dateLayout = "2006-01-02"

func ToResponseDocument(dDomain document.Document) Document {
	return Document{
		ID:             uint64(dDomain.ID),
		UserID:         uint64(dDomain.UserID),
		DocumentType:   uint8(dDomain.Category),
		IssueDate:      formatDate(dDomain.IssueDate),
		ExpiryDate:     formatDate(dDomain.ExpiryDate),
		DocumentNumber: dDomain.DocumentNumber,
	}
}

func ToUploadResponse(res *document.UploadResult) UploadResponse {
	out := UploadResponse{
		Code:       http.StatusOK,
		Message:    res.Message(),
		Outcome:    string(res.Outcome),
		FailedStep: res.FailedStep,
	}
	if !res.Outcome.Succeeded() {
		out.Code = http.StatusInternalServerError
	}
	if res.Document != nil {
		out.DocumentID = uint64(res.Document.ID)
	}

	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
