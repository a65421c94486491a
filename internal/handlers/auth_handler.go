package handlers

import (
	"net/http"

	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/services"
	"rtw_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	// secureCookies is on in production so the session cookie is HTTPS-only.
	secureCookies bool
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   base,
		authService:   authService,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register/candidate", h.RegisterCandidate)
		authGroup.POST("/register/employer", h.RegisterEmployer)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/verify-email", h.VerifyEmail)
		authGroup.POST("/resend-verification", h.ResendVerification)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
	}

	account := rg.Group("/auth")
	account.Use(authMW)
	{
		account.GET("/me", h.Me)
		account.POST("/change-password", h.ChangePassword)
		account.DELETE("/account", h.DeleteAccount)
	}
}

func (h *AuthHandler) RegisterCandidate(c *gin.Context) {
	var req dto.RegisterCandidateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterCandidate(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) RegisterEmployer(c *gin.Context) {
	var req dto.RegisterEmployerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RegisterEmployer(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login issues the session both ways at once: an HTTP-only cookie for the
// browser and the same token in the body for API clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	maxAge := int(h.authService.SessionTTL(req.RememberMe).Seconds())
	h.setSessionCookie(c, resp.Token, maxAge)

	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. The token itself simply ages out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out"})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var q dto.VerifyEmailQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), &q); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Email verified"})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "If the account exists and is unverified, a new verification email has been sent",
	})
}

// ForgotPassword always reports success so the endpoint cannot be used to
// enumerate which addresses are registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "If an account with that email exists, a password reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password has been reset"})
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var account dto.AccountDTO
	switch principal.Kind {
	case models.AccountKindUser:
		account = dto.AccountDTOFromUser(principal.User)
	case models.AccountKindCandidate:
		account = dto.AccountDTOFromCandidate(principal.Candidate)
	case models.AccountKindEmployer:
		account = dto.AccountDTOFromEmployer(principal.Employer)
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), h.GetDB(c), principal, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password changed"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), h.GetDB(c), principal, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Account deleted"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
}
