package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/document"
	"docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/jwt"
	dto "docvault-api/internal/interface/api/rest/dto/document"
	"docvault-api/internal/interface/api/rest/middleware"
	"docvault-api/internal/interface/api/rest/validator"
)

// multipartOverhead is the room left for form fields and part headers on top of the two files.
const multipartOverhead = int64(1 << 20)

type DocumentController struct {
	documentService ports.DocumentService
	logger          *zap.Logger
	maxFileBytes    int64
}

func NewDocumentController(
	r *gin.Engine,
	documentService ports.DocumentService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxFileBytes int64,
) *DocumentController {
	dc := &DocumentController{
		documentService: documentService,
		logger:          logger,
		maxFileBytes:    maxFileBytes,
	}

	r.POST(RouteUserDocuments, middleware.AuthMiddleware(jwtService), dc.UploadDocumentHandler)
	r.GET(RouteDocument, dc.GetDocumentInfoHandler)
	r.GET(RouteDocumentContent, dc.GetDocumentContentHandler)

	return dc
}

func (dc *DocumentController) UploadDocumentHandler(c *gin.Context) {
	userID, err := validator.ParseID(c.Param("user_id"))
	if err != nil {
		badRequest(c, "user_id "+err.Error())
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*dc.maxFileBytes+multipartOverhead)
	if _, err := c.MultipartForm(); err != nil {
		var mbErr *http.MaxBytesError
		if errors.As(err, &mbErr) {
			tooLarge(c)
			return
		}
		badRequest(c, "malformed multipart body")
		return
	}

	category, err := document.ParseCategory(c.PostForm("document_type"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	front, ok := dc.readFile(c, document.SideFront)
	if !ok {
		return
	}
	back, ok := dc.readFile(c, document.SideBack)
	if !ok {
		return
	}

	res, err := dc.documentService.UploadDocument(c.Request.Context(), document.UploadRequest{
		UserID:   user.ID(userID),
		Category: category,
		Front:    front,
		Back:     back,
	})
	if err != nil {
		var vErr *document.ValidationError
		if errors.As(err, &vErr) {
			badRequest(c, vErr.Error())
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"code": http.StatusInternalServerError, "message": "failed to upload document"},
		)
		dc.logger.Error("UploadDocument() error", zap.Error(err))
		return
	}

	resp := dto.ToUploadResponse(res)
	c.JSON(resp.Code, resp)
}

// readFile returns a nil asset for an absent part and writes the error
// response itself when it returns false.
func (dc *DocumentController) readFile(c *gin.Context, side document.Side) (*document.FileAsset, bool) {
	fh, err := c.FormFile(string(side))
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		badRequest(c, fmt.Sprintf("%s: malformed multipart body", side))
		return nil, false
	}
	if fh.Size > dc.maxFileBytes {
		tooLarge(c)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, fmt.Sprintf("%s: unreadable file", side))
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, dc.maxFileBytes+1))
	if err != nil {
		badRequest(c, fmt.Sprintf("%s: unreadable file", side))
		return nil, false
	}
	if int64(len(data)) > dc.maxFileBytes {
		tooLarge(c)
		return nil, false
	}

	return &document.FileAsset{
		Side:        side,
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, true
}

func (dc *DocumentController) GetDocumentInfoHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("document_id"))
	if err != nil {
		badRequest(c, "document_id "+err.Error())
		return
	}

	d, err := dc.documentService.GetDocumentInfo(c.Request.Context(), document.ID(id))
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			notFound(c, "Document not found")
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"code": http.StatusInternalServerError, "message": "failed to get document"},
		)
		dc.logger.Error("GetDocumentInfo() error", zap.Error(err))
		return
	}

	resp := dto.ToResponseDocument(*d)
	c.JSON(http.StatusOK, dto.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    &resp,
	})
}

func (dc *DocumentController) GetDocumentContentHandler(c *gin.Context) {
	id, err := validator.ParseID(c.Param("document_id"))
	if err != nil {
		badRequest(c, "document_id "+err.Error())
		return
	}
	side, ok := document.ParseSide(c.Query("side"))
	if !ok {
		badRequest(c, "side must be one of front, back")
		return
	}

	obj, err := dc.documentService.OpenDocumentContent(c.Request.Context(), document.ID(id), side)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			notFound(c, fmt.Sprintf("Document side %s not found", side))
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"code": http.StatusInternalServerError, "message": "error getting document"},
		)
		dc.logger.Error("OpenDocumentContent() error", zap.Error(err))
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(
		http.StatusBadRequest,
		gin.H{"code": http.StatusBadRequest, "message": "Invalid value. " + msg},
	)
}

func notFound(c *gin.Context, msg string) {
	c.JSON(
		http.StatusNotFound,
		gin.H{"code": http.StatusNotFound, "message": msg},
	)
}

func tooLarge(c *gin.Context) {
	c.JSON(
		http.StatusRequestEntityTooLarge,
		gin.H{"code": http.StatusRequestEntityTooLarge, "message": "file too large"},
	)
}
