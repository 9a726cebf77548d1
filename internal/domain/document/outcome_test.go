package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_Classification(t *testing.T) {
	tests := []struct {
		outcome         Outcome
		wantSucceeded   bool
		wantUncompensat bool
	}{
		{OutcomeCompleted, true, false},
		{OutcomeCompletedWithStaleAssets, true, false},
		{OutcomeValidationFailed, false, false},
		{OutcomeStoreWriteFailed, false, false},
		{OutcomeStoreWriteFailedUncompensated, false, true},
		{OutcomePersistenceReadFailed, false, false},
		{OutcomePersistenceReadFailedUncompensated, false, true},
		{OutcomePersistenceWriteFailed, false, false},
		{OutcomePersistenceWriteFailedUncompensated, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.wantSucceeded, tt.outcome.Succeeded())
			assert.Equal(t, tt.wantUncompensat, tt.outcome.Uncompensated())
		})
	}
}

func TestUploadResult_Message(t *testing.T) {
	tests := []struct {
		name string
		res  UploadResult
		want string
	}{
		{
			name: "completed",
			res:  UploadResult{Outcome: OutcomeCompleted},
			want: "success",
		},
		{
			name: "stale",
			res:  UploadResult{Outcome: OutcomeCompletedWithStaleAssets, Err: errors.New("denied")},
			want: "document saved but error deleting previous files. denied",
		},
		{
			name: "compensated store failure",
			res:  UploadResult{Outcome: OutcomeStoreWriteFailed, FailedStep: StepUploadBack, Err: errors.New("timeout")},
			want: "error uploading document back. timeout",
		},
		{
			name: "uncompensated persistence failure",
			res: UploadResult{
				Outcome:         OutcomePersistenceWriteFailedUncompensated,
				FailedStep:      StepPersistWrite,
				Err:             errors.New("conn reset"),
				CompensationErr: errors.New("denied"),
			},
			want: "error writing document to database. conn reset; error deleting uploaded files. denied",
		},
		{
			name: "lookup failure",
			res:  UploadResult{Outcome: OutcomePersistenceReadFailed, FailedStep: StepLookupExisting, Err: errors.New("db down")},
			want: "error reading document from database. db down",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Message())
		})
	}
}

func TestFileReference_JSONShape(t *testing.T) {
	front := "a.png"

	b, err := json.Marshal(FileReference{Front: &front})
	require.NoError(t, err)
	assert.JSONEq(t, `{"front":"a.png","back":null}`, string(b))

	var ref FileReference
	require.NoError(t, json.Unmarshal([]byte(`{"front":null,"back":"b.jpg"}`), &ref))
	assert.Nil(t, ref.Front)
	require.NotNil(t, ref.Back)
	assert.Equal(t, "b.jpg", *ref.Back)
	assert.Equal(t, []string{"b.jpg"}, ref.Keys())
	assert.Equal(t, ref.Back, ref.Key(SideBack))
	assert.Nil(t, ref.Key(Side("left")))
}
