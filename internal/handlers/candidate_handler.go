package handlers

import (
	"net/http"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	statsService     services.StatsService
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, statsService services.StatsService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		statsService:     statsService,
	}
}

func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	candidates := rg.Group("/candidates")
	candidates.Use(authMW, middleware.RequireKind(models.AccountKindCandidate))
	{
		candidates.GET("/me", h.GetProfile)
		candidates.PATCH("/me", h.UpdateProfile)
		candidates.GET("/me/stats", h.DashboardStats)
	}
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.candidateService.GetProfile(c.Request.Context(), h.GetDB(c), principal.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": profile})
}

func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.candidateService.UpdateProfile(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidate": profile})
}

func (h *CandidateHandler) DashboardStats(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	stats, err := h.statsService.CandidateDashboard(c.Request.Context(), h.GetDB(c), principal.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
