package handlers

import (
	"net/http"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	*BaseHandler
	billingService services.BillingService
}

func NewBillingHandler(base *BaseHandler, billingService services.BillingService) *BillingHandler {
	return &BillingHandler{
		BaseHandler:    base,
		billingService: billingService,
	}
}

func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Plan catalog is public; checkout is employer-only.
	rg.GET("/plans", h.ListPlans)

	billing := rg.Group("/billing")
	billing.Use(authMW, middleware.RequireKind(models.AccountKindEmployer))
	{
		billing.POST("/purchases", h.CreatePurchase)
		billing.POST("/purchases/confirm", h.ConfirmPurchase)
		billing.GET("/purchases", h.ListPurchases)
		billing.GET("/wallet", h.GetWallet)
	}
}

func (h *BillingHandler) GetWallet(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	wallet, err := h.billingService.GetWallet(c.Request.Context(), h.GetDB(c), principal.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.billingService.ListPlans(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *BillingHandler) CreatePurchase(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	purchase, err := h.billingService.CreatePurchase(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"purchase": purchase})
}

func (h *BillingHandler) ConfirmPurchase(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ConfirmPurchaseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.billingService.ConfirmPurchase(c.Request.Context(), h.GetDB(c), principal.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) ListPurchases(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.billingService.ListPurchases(c.Request.Context(), h.GetDB(c), principal.ID, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
