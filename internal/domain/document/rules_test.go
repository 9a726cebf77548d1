package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	png  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpeg = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

func asset(side Side, data []byte, ct string) *FileAsset {
	return &FileAsset{Side: side, Data: data, ContentType: ct}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"1", CategoryPassport, false},
		{" 3 ", CategoryPRCard, false},
		{"5", CategoryOther, false},
		{"0", 0, true},
		{"6", 0, true},
		{"257", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "document_type", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_TwoSided(t *testing.T) {
	assert.False(t, CategoryPassport.TwoSided())
	assert.True(t, CategoryDriversLicense.TwoSided())
	assert.True(t, CategoryPRCard.TwoSided())
	assert.False(t, CategoryNationalID.TwoSided())
	assert.False(t, CategoryOther.TwoSided())
	assert.Equal(t, "unknown", Category(9).String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       UploadRequest
		wantField string
	}{
		{
			name: "single sided front only",
			req:  UploadRequest{Category: CategoryPassport, Front: asset(SideFront, png, "image/png")},
		},
		{
			name: "two sided both",
			req: UploadRequest{
				Category: CategoryDriversLicense,
				Front:    asset(SideFront, png, "image/png"),
				Back:     asset(SideBack, jpeg, "image/jpg"),
			},
		},
		{
			name:      "unknown category",
			req:       UploadRequest{Category: 8, Front: asset(SideFront, png, "image/png")},
			wantField: "document_type",
		},
		{
			name:      "missing front",
			req:       UploadRequest{Category: CategoryPassport},
			wantField: "front",
		},
		{
			name:      "two sided missing back",
			req:       UploadRequest{Category: CategoryPRCard, Front: asset(SideFront, png, "image/png")},
			wantField: "back",
		},
		{
			name: "single sided with back",
			req: UploadRequest{
				Category: CategoryNationalID,
				Front:    asset(SideFront, png, "image/png"),
				Back:     asset(SideBack, png, "image/png"),
			},
			wantField: "back",
		},
		{
			name:      "disallowed declared type",
			req:       UploadRequest{Category: CategoryPassport, Front: asset(SideFront, []byte("%PDF-1.4"), "application/pdf")},
			wantField: "front",
		},
		{
			name:      "declared png but bytes are jpeg",
			req:       UploadRequest{Category: CategoryPassport, Front: asset(SideFront, jpeg, "image/png")},
			wantField: "front",
		},
		{
			name:      "empty file",
			req:       UploadRequest{Category: CategoryPassport, Front: asset(SideFront, nil, "image/png")},
			wantField: "front",
		},
		{
			name: "content type parameters are ignored",
			req:  UploadRequest{Category: CategoryPassport, Front: asset(SideFront, png, "Image/PNG; charset=binary")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestExtensionFor(t *testing.T) {
	ext, ok := ExtensionFor("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, "jpeg", ext)

	ext, ok = ExtensionFor("image/jpg")
	assert.True(t, ok)
	assert.Equal(t, "jpg", ext)

	_, ok = ExtensionFor("image/gif")
	assert.False(t, ok)
}
