package handlers

import (
	"fmt"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/services/dto"
	"rtw_backend/internal/validator"
	"rtw_backend/pkg/apperrors"
	"rtw_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB returns the request-scoped *gorm.DB (connection pool in production,
// a transaction under the integration tests). DBMiddleware always sets it, so
// a miss means the router is miswired and panicking is correct.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "db key not found in context", "key", dbKey)
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "db in context is not *gorm.DB",
			"key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("db in context has incorrect type")
	}

	return db
}

// GetPrincipal returns the identity the auth middleware resolved, or renders
// NOT_AUTHENTICATED and returns false.
func (h *BaseHandler) GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	val, exists := c.Get(string(contextkeys.PrincipalContextKey))
	if !exists {
		logger.CtxWarn(c.Request.Context(), "unauthenticated access",
			"path", c.Request.URL.Path, "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
		return nil, false
	}

	principal, ok := val.(*auth.Principal)
	if !ok || principal == nil {
		logger.CtxWarn(c.Request.Context(), "invalid principal in context", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
		return nil, false
	}

	return principal, true
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	return h.runValidation(c, obj)
}

func (h *BaseHandler) runValidation(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "service error",
			"error", appErr.Message,
			"code", appErr.Code,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ParsePagination reads page and page_size from the query string with the
// shared defaults and cap applied.
func ParsePagination(c *gin.Context) dto.Pagination {
	p := dto.Pagination{}
	_ = c.ShouldBindQuery(&p)
	p.Normalize()
	return p
}
