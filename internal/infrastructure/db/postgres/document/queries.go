package document

const (
	SelectDocumentByID = `
		SELECT id, user_id, document_type, document_number, issue_date, expiry_date, file_reference, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	SelectDocumentByUserAndType = `
		SELECT id, user_id, document_type, document_number, issue_date, expiry_date, file_reference, created_at, updated_at
		FROM documents
		WHERE user_id = $1 AND document_type = $2
	`
	InsertDocument = `
		INSERT INTO documents (user_id, document_type, document_number, issue_date, expiry_date, file_reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, user_id, document_type, document_number, issue_date, expiry_date, file_reference, created_at, updated_at
	`
	UpdateFileReferenceByID = `
		UPDATE documents
		SET file_reference = $1,
		    updated_at = now()
		WHERE id = $2
	`
)
