package document

type (
	// Document is the metadata view of a record. The file reference is never exposed.
	Document struct {
		ID             uint64  `json:"id"`
		UserID         uint64  `json:"user_id"`
		DocumentType   uint8   `json:"document_type"`
		IssueDate      *string `json:"issue_date"`
		ExpiryDate     *string `json:"expiry_date"`
		DocumentNumber *string `json:"document_number"`
	}

	ResponseData struct {
		Code    int       `json:"code"`
		Message string    `json:"message"`
		Data    *Document `json:"data,omitempty"`
	}

	UploadResponse struct {
		Code       int    `json:"code"`
		Message    string `json:"message"`
		Outcome    string `json:"outcome"`
		FailedStep string `json:"failed_step,omitempty"`
		DocumentID uint64 `json:"document_id,omitempty"`
	}
)
