package handlers

import (
	"net/http"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	*BaseHandler
	employerService services.EmployerService
	statsService    services.StatsService
}

func NewEmployerHandler(base *BaseHandler, employerService services.EmployerService, statsService services.StatsService) *EmployerHandler {
	return &EmployerHandler{
		BaseHandler:     base,
		employerService: employerService,
		statsService:    statsService,
	}
}

func (h *EmployerHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	employers := rg.Group("/employers")
	employers.Use(authMW, middleware.RequireKind(models.AccountKindEmployer))
	{
		employers.GET("/me", h.GetProfile)
		employers.PATCH("/me", h.UpdateProfile)
		employers.GET("/me/stats", h.DashboardStats)
	}
}

func (h *EmployerHandler) GetProfile(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.employerService.GetProfile(c.Request.Context(), h.GetDB(c), principal.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employer": profile})
}

func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.employerService.UpdateProfile(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employer": profile})
}

func (h *EmployerHandler) DashboardStats(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	stats, err := h.statsService.EmployerDashboard(c.Request.Context(), h.GetDB(c), principal.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
