package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/application/services"
	domain "docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/jwt"
	"docvault-api/internal/interface/api/rest/dto/user"
	"docvault-api/internal/interface/api/rest/middleware"
	"docvault-api/internal/interface/api/rest/validator"
)

const maxCognitoIDLen = 100

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
	now         func() time.Time
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
		now:         time.Now,
	}

	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUser, middleware.AuthMiddleware(jwtService), uc.SubmitUserInfoHandler)
	r.GET(RouteUserVerification, uc.GetVerificationHandler)
	r.GET(RouteUserHome, uc.GetHomeHandler)
	r.GET(RouteIdentityLookup, uc.LookupUserIDHandler)
	r.POST(RouteIdentityCheckEmail, uc.CheckEmailHandler)

	return uc
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c, "User not found")
			return
		}
		internalError(c, "failed to get user")
		uc.logger.Error("FindUserByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    user.ToResponseUser(*u),
	})
}

func (uc *UserController) GetVerificationHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	v, err := uc.userService.FindVerification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c, "User verification record not found")
			return
		}
		internalError(c, "failed to get user verification")
		uc.logger.Error("FindVerification() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    user.ToResponseVerification(*v),
	})
}

func (uc *UserController) SubmitUserInfoHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	var req user.InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateUserInfo(req, uc.now()); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "invalid request body",
			"details": errs,
		})
		return
	}

	info, err := user.ToDomainInfo(req)
	if err != nil {
		badRequest(c, "date_of_birth must be in YYYY-MM-DD format")
		return
	}

	err = uc.userService.SubmitUserInfo(c.Request.Context(), id, info)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, user.ResponseData{Code: http.StatusOK, Message: "success"})
	case errors.Is(err, services.ErrVerificationLocked):
		c.JSON(
			http.StatusBadRequest,
			gin.H{"code": http.StatusBadRequest, "message": "user is already verified or has pending verification"},
		)
	default:
		internalError(c, "error submitting user information")
		uc.logger.Error("SubmitUserInfo() error", zap.Error(err))
	}
}

func (uc *UserController) GetHomeHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	h, err := uc.userService.FindHome(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c, "User does not exist")
			return
		}
		internalError(c, "error fetching home info")
		uc.logger.Error("FindHome() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    user.ToResponseHome(*h),
	})
}

func (uc *UserController) LookupUserIDHandler(c *gin.Context) {
	cognitoID := strings.TrimSpace(c.Query("cognito_id"))
	if cognitoID == "" || len(cognitoID) > maxCognitoIDLen {
		badRequest(c, "cognito_id is required and must be at most 100 characters")
		return
	}

	id, err := uc.userService.FindUserIDByCognitoID(c.Request.Context(), cognitoID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c, "User not found")
			return
		}
		internalError(c, "failed to look up user")
		uc.logger.Error("FindUserIDByCognitoID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    user.Lookup{ID: uint64(id)},
	})
}

func (uc *UserController) CheckEmailHandler(c *gin.Context) {
	var req user.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		badRequest(c, err.Error())
		return
	}

	exists, err := uc.userService.CheckEmailExists(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, "error checking email")
		uc.logger.Error("CheckEmailExists() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    user.EmailExists{Exists: exists},
	})
}

func userIDParam(c *gin.Context) (domain.ID, bool) {
	id, err := validator.ParseID(c.Param("user_id"))
	if err != nil {
		badRequest(c, "user_id "+err.Error())
		return 0, false
	}
	return domain.ID(id), true
}

func internalError(c *gin.Context, msg string) {
	c.JSON(
		http.StatusInternalServerError,
		gin.H{"code": http.StatusInternalServerError, "message": msg},
	)
}
