package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/document"
	"docvault-api/internal/domain/transaction"
	"docvault-api/internal/domain/user"
)

const testSecret = "test-secret"

type FakeDocumentService struct {
	UploadDocumentFunc      func(ctx context.Context, req document.UploadRequest) (*document.UploadResult, error)
	GetDocumentInfoFunc     func(ctx context.Context, id document.ID) (*document.Document, error)
	OpenDocumentContentFunc func(ctx context.Context, id document.ID, side document.Side) (*ports.Object, error)
}

func (f *FakeDocumentService) UploadDocument(ctx context.Context, req document.UploadRequest) (*document.UploadResult, error) {
	if f.UploadDocumentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadDocumentFunc(ctx, req)
}
func (f *FakeDocumentService) GetDocumentInfo(ctx context.Context, id document.ID) (*document.Document, error) {
	if f.GetDocumentInfoFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetDocumentInfoFunc(ctx, id)
}
func (f *FakeDocumentService) OpenDocumentContent(ctx context.Context, id document.ID, side document.Side) (*ports.Object, error) {
	if f.OpenDocumentContentFunc == nil {
		return nil, errors.New("not used")
	}
	return f.OpenDocumentContentFunc(ctx, id, side)
}

type FakeUserService struct {
	FindUserByIDFunc          func(ctx context.Context, id user.ID) (*user.User, error)
	FindUserIDByCognitoIDFunc func(ctx context.Context, cognitoID string) (user.ID, error)
	FindVerificationFunc      func(ctx context.Context, id user.ID) (*user.Verification, error)
	SubmitUserInfoFunc        func(ctx context.Context, id user.ID, info user.Info) error
	CheckEmailExistsFunc      func(ctx context.Context, email string) (bool, error)
	FindHomeFunc              func(ctx context.Context, id user.ID) (*user.Home, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindUserIDByCognitoID(ctx context.Context, cognitoID string) (user.ID, error) {
	if f.FindUserIDByCognitoIDFunc == nil {
		return 0, errors.New("not used")
	}
	return f.FindUserIDByCognitoIDFunc(ctx, cognitoID)
}
func (f *FakeUserService) FindVerification(ctx context.Context, id user.ID) (*user.Verification, error) {
	if f.FindVerificationFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindVerificationFunc(ctx, id)
}
func (f *FakeUserService) SubmitUserInfo(ctx context.Context, id user.ID, info user.Info) error {
	if f.SubmitUserInfoFunc == nil {
		return errors.New("not used")
	}
	return f.SubmitUserInfoFunc(ctx, id, info)
}
func (f *FakeUserService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	if f.CheckEmailExistsFunc == nil {
		return false, errors.New("not used")
	}
	return f.CheckEmailExistsFunc(ctx, email)
}
func (f *FakeUserService) FindHome(ctx context.Context, id user.ID) (*user.Home, error) {
	if f.FindHomeFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindHomeFunc(ctx, id)
}

type FakeTransactionService struct {
	FindPageFunc  func(ctx context.Context, userID user.ID, page, limit int) (transaction.Transactions, error)
	FindRangeFunc func(ctx context.Context, userID user.ID, from, to time.Time) (transaction.Transactions, error)
}

func (f *FakeTransactionService) FindPage(ctx context.Context, userID user.ID, page, limit int) (transaction.Transactions, error) {
	if f.FindPageFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindPageFunc(ctx, userID, page, limit)
}
func (f *FakeTransactionService) FindRange(ctx context.Context, userID user.ID, from, to time.Time) (transaction.Transactions, error) {
	if f.FindRangeFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindRangeFunc(ctx, userID, from, to)
}

// SignJWT signs a token the way jwt.Service does, with a caller-chosen secret and issuer.
func SignJWT(secret, issuer string, userID uint64, exp time.Duration) (string, error) {
	type Claims struct {
		UserID uint64 `json:"user_id"`
		jwtv5.RegisteredClaims
	}
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(exp)),
		},
	}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func authHeader(t *testing.T, secret string) map[string]string {
	t.Helper()
	tok, err := SignJWT(secret, "docvaultapi", 7, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type filePart struct {
	field       string
	fileName    string
	contentType string
	content     []byte
}

func doMultipartReq(t *testing.T, r *gin.Engine, path string, fields map[string]string, files []filePart, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.fileName))
		h.Set("Content-Type", f.contentType)
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, _ = pw.Write(f.content)
	}

	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
