package handlers

import (
	"net/http"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	*BaseHandler
	engagementService services.EngagementService
}

func NewEngagementHandler(base *BaseHandler, engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		BaseHandler:       base,
		engagementService: engagementService,
	}
}

func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	employerSide := rg.Group("/engagement")
	employerSide.Use(authMW, middleware.RequireKind(models.AccountKindEmployer))
	{
		employerSide.POST("/invitations", h.InviteToInterview)
		employerSide.GET("/invitations/sent", h.ListSentInvitations)
		employerSide.POST("/unlocks", h.UnlockContact)
	}

	candidateSide := rg.Group("/engagement")
	candidateSide.Use(authMW, middleware.RequireKind(models.AccountKindCandidate))
	{
		candidateSide.GET("/invitations/received", h.ListReceivedInvitations)
		candidateSide.POST("/invitations/:id/respond", h.RespondToInvitation)
	}
}

func (h *EngagementHandler) InviteToInterview(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.InviteToInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.engagementService.InviteToInterview(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EngagementHandler) ListSentInvitations(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.engagementService.ListEmployerInvitations(c.Request.Context(), h.GetDB(c), principal.ID, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) ListReceivedInvitations(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.engagementService.ListCandidateInvitations(c.Request.Context(), h.GetDB(c), principal.ID, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) RespondToInvitation(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.RespondToInvitationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	invitation, err := h.engagementService.RespondToInvitation(c.Request.Context(), h.GetDB(c), principal.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitation": invitation})
}

func (h *EngagementHandler) UnlockContact(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UnlockContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.engagementService.UnlockContact(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
