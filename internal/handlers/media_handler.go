package handlers

import (
	"net/http"

	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"
	"rtw_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	media := rg.Group("/media")
	media.Use(authMW)
	{
		media.POST("", h.Upload)
		media.GET("/:id", h.Get)
		media.DELETE("/:id", h.Delete)
	}
}

// Upload accepts a multipart form with the file under "file" and an optional
// "alt" text.
func (h *MediaHandler) Upload(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("A file is required under the 'file' form field"))
		return
	}

	media, err := h.mediaService.Upload(c.Request.Context(), h.GetDB(c), principal, file, c.PostForm("alt"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media": media})
}

func (h *MediaHandler) Get(c *gin.Context) {
	media, err := h.mediaService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": media})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), h.GetDB(c), principal, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Media deleted"})
}
