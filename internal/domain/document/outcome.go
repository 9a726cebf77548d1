package document

import (
	"fmt"
	"strings"
)

const (
	OutcomeCompleted                           Outcome = "completed"
	OutcomeCompletedWithStaleAssets            Outcome = "completed_with_stale_assets"
	OutcomeValidationFailed                    Outcome = "validation_failed"
	OutcomeStoreWriteFailed                    Outcome = "store_write_failed"
	OutcomeStoreWriteFailedUncompensated       Outcome = "store_write_failed_uncompensated"
	OutcomeStoreReadFailed                     Outcome = "store_read_failed"
	OutcomePersistenceReadFailed               Outcome = "persistence_read_failed"
	OutcomePersistenceReadFailedUncompensated  Outcome = "persistence_read_failed_uncompensated"
	OutcomePersistenceWriteFailed              Outcome = "persistence_write_failed"
	OutcomePersistenceWriteFailedUncompensated Outcome = "persistence_write_failed_uncompensated"
)

const (
	StepUploadFront     = "upload_front"
	StepUploadBack      = "upload_back"
	StepLookupExisting  = "lookup_existing"
	StepPersistWrite    = "persist_write"
	StepRetireOldAssets = "retire_old_assets"
)

var stepLabels = map[string]string{
	StepUploadFront:     "uploading document front",
	StepUploadBack:      "uploading document back",
	StepLookupExisting:  "reading document from database",
	StepPersistWrite:    "writing document to database",
	StepRetireOldAssets: "deleting previous document files",
}

type (
	Outcome string

	// UploadResult is the single terminal outcome of one upload request.
	UploadResult struct {
		Outcome  Outcome
		Document *Document

		FailedStep      string
		Err             error
		CompensationErr error

		// OrphanedKeys were written by this request and could not be removed.
		OrphanedKeys []string
		// StaleKeys belong to the replaced reference and could not be removed.
		StaleKeys []string
	}
)

func (o Outcome) Succeeded() bool {
	return o == OutcomeCompleted || o == OutcomeCompletedWithStaleAssets
}

func (o Outcome) Uncompensated() bool {
	return strings.HasSuffix(string(o), "_uncompensated")
}

func (r *UploadResult) Message() string {
	switch r.Outcome {
	case OutcomeCompleted:
		return "success"
	case OutcomeCompletedWithStaleAssets:
		return fmt.Sprintf("document saved but error deleting previous files. %v", r.Err)
	}

	msg := "error " + stepLabels[r.FailedStep]
	if r.Err != nil {
		msg = fmt.Sprintf("%s. %v", msg, r.Err)
	}
	if r.Outcome.Uncompensated() {
		msg = fmt.Sprintf("%s; error deleting uploaded files. %v", msg, r.CompensationErr)
	}
	return msg
}
