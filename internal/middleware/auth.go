package middleware

import (
	"strings"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/pkg/apperrors"
	"rtw_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "rtw_token"

// AuthMiddleware verifies the session token and resolves the account behind
// it exactly once per request. Handlers downstream read the finished
// Principal; nothing re-fetches the account.
func AuthMiddleware(
	jwtService *auth.JWTService,
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
	employerRepo repositories.EmployerRepository,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthenticated(c, "missing session token")
			return
		}

		claims, err := jwtService.ParseToken(token)
		if err != nil {
			abortUnauthenticated(c, "invalid session token")
			return
		}

		db := dbFromContext(c)
		if db == nil {
			abortUnauthenticated(c, "no database in context")
			return
		}

		principal, err := resolvePrincipal(db, claims, userRepo, candidateRepo, employerRepo)
		if err != nil {
			// Token was valid but the account is gone; the session dies with it.
			abortUnauthenticated(c, "account no longer exists")
			return
		}

		c.Set(string(contextkeys.PrincipalContextKey), principal)

		ctx := logger.WithAccountID(c.Request.Context(), principal.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// resolvePrincipal loads the account from the collection named by the token's
// kind. An ID is never looked up outside its own collection.
func resolvePrincipal(
	db *gorm.DB,
	claims *auth.Claims,
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
	employerRepo repositories.EmployerRepository,
) (*auth.Principal, error) {
	switch claims.Kind {
	case models.AccountKindUser:
		user, err := userRepo.FindByID(db, claims.AccountID)
		if err != nil {
			return nil, err
		}
		return auth.NewUserPrincipal(user), nil
	case models.AccountKindCandidate:
		candidate, err := candidateRepo.FindByID(db, claims.AccountID)
		if err != nil {
			return nil, err
		}
		return auth.NewCandidatePrincipal(candidate), nil
	case models.AccountKindEmployer:
		employer, err := employerRepo.FindByID(db, claims.AccountID)
		if err != nil {
			return nil, err
		}
		return auth.NewEmployerPrincipal(employer), nil
	default:
		return nil, auth.ErrInvalidSessionToken
	}
}

// RequireKind guards a route group so only the given account kinds pass.
// Runs after AuthMiddleware.
func RequireKind(kinds ...models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := principalFromContext(c)
		if principal == nil {
			abortUnauthenticated(c, "no principal in context")
			return
		}

		for _, kind := range kinds {
			if principal.Kind == kind {
				c.Next()
				return
			}
		}

		apperrors.HandleError(c, apperrors.NewForbiddenError("This operation is not available for your account type"))
		c.Abort()
	}
}

// RequireAdmin restricts a route group to administrative users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := principalFromContext(c)
		if principal == nil {
			abortUnauthenticated(c, "no principal in context")
			return
		}

		if !principal.IsAdmin() {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Administrator access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func dbFromContext(c *gin.Context) *gorm.DB {
	val, ok := c.Get(string(contextkeys.DBContextKey))
	if !ok {
		return nil
	}
	db, _ := val.(*gorm.DB)
	return db
}

func principalFromContext(c *gin.Context) *auth.Principal {
	val, ok := c.Get(string(contextkeys.PrincipalContextKey))
	if !ok {
		return nil
	}
	principal, _ := val.(*auth.Principal)
	return principal
}

func abortUnauthenticated(c *gin.Context, reason string) {
	logger.CtxDebug(c.Request.Context(), "authentication failed",
		"reason", reason, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
	c.Abort()
}
