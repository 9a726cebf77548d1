package document

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	CategoryPassport       Category = 1
	CategoryDriversLicense Category = 2
	CategoryPRCard         Category = 3
	CategoryNationalID     Category = 4
	CategoryOther          Category = 5
)

type (
	Category uint8

	categoryRule struct {
		name     string
		twoSided bool
	}

	ValidationError struct {
		Field  string
		Reason string
	}
)

var (
	categoryRules = map[Category]categoryRule{
		CategoryPassport:       {name: "passport"},
		CategoryDriversLicense: {name: "drivers_license", twoSided: true},
		CategoryPRCard:         {name: "pr_card", twoSided: true},
		CategoryNationalID:     {name: "national_id"},
		CategoryOther:          {name: "other"},
	}

	// allowedContentTypes maps an accepted declared type to the extension used in object keys.
	allowedContentTypes = map[string]string{
		"image/jpeg": "jpeg",
		"image/jpg":  "jpg",
		"image/png":  "png",
	}
)

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func ParseCategory(s string) (Category, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: "document_type", Reason: "must be a number"}
	}
	if n <= 0 || n > 255 || !Category(n).Valid() {
		return 0, &ValidationError{Field: "document_type", Reason: fmt.Sprintf("unknown document type %d", n)}
	}
	return Category(n), nil
}

func (c Category) Valid() bool {
	_, ok := categoryRules[c]
	return ok
}

func (c Category) TwoSided() bool {
	return categoryRules[c].twoSided
}

func (c Category) String() string {
	if r, ok := categoryRules[c]; ok {
		return r.name
	}
	return "unknown"
}

// ExtensionFor returns the object key extension for an accepted content type.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := allowedContentTypes[normalizeContentType(contentType)]
	return ext, ok
}

// Validate runs before any store or repository call: front is always required,
// back is required for two-sided categories and rejected otherwise, and every
// present side must declare an allowed image type that its bytes agree with.
func Validate(req UploadRequest) error {
	if !req.Category.Valid() {
		return &ValidationError{Field: "document_type", Reason: fmt.Sprintf("unknown document type %d", req.Category)}
	}
	if req.Front == nil {
		return &ValidationError{
			Field:  string(SideFront),
			Reason: fmt.Sprintf("front is required for document type %d", req.Category),
		}
	}
	if req.Category.TwoSided() && req.Back == nil {
		return &ValidationError{
			Field:  string(SideBack),
			Reason: fmt.Sprintf("back is required for document type %d", req.Category),
		}
	}
	if !req.Category.TwoSided() && req.Back != nil {
		return &ValidationError{
			Field:  string(SideBack),
			Reason: fmt.Sprintf("only front is allowed for document type %d", req.Category),
		}
	}

	for _, fa := range []*FileAsset{req.Front, req.Back} {
		if fa == nil {
			continue
		}
		if err := validateAsset(fa); err != nil {
			return err
		}
	}

	return nil
}

func validateAsset(fa *FileAsset) error {
	if len(fa.Data) == 0 {
		return &ValidationError{Field: string(fa.Side), Reason: "file is empty"}
	}
	if _, ok := ExtensionFor(fa.ContentType); !ok {
		return &ValidationError{
			Field:  string(fa.Side),
			Reason: "invalid file type, only .jpg, .jpeg and .png are allowed",
		}
	}
	sniffed := normalizeContentType(http.DetectContentType(fa.Data))
	if !sameImageType(sniffed, normalizeContentType(fa.ContentType)) {
		return &ValidationError{
			Field:  string(fa.Side),
			Reason: fmt.Sprintf("declared %s but content is %s", fa.ContentType, sniffed),
		}
	}
	return nil
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func sameImageType(sniffed, declared string) bool {
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	return sniffed == declared
}
