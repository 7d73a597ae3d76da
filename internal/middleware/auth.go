package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-api/internal/auth"
	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClaims   = "claims"
)

func AuthMiddleware(tokens *auth.TokenManager, blacklist auth.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token não fornecido.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Formato do token inválido.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]), auth.TokenAccess)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
			c.Abort()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		if revoked {
			httperr.Unauthorized(c, "token_revoked", "Token revogado. Faça login novamente.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireRoles deve vir depois de AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, httperr.CodeForbidden, "Acesso negado para este perfil.")
		c.Abort()
	}
}

// Actor devolve o usuário autenticado da requisição.
func Actor(c *gin.Context) domain.Actor {
	id, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextUserRole)

	a := domain.Actor{}
	a.ID, _ = id.(uint)
	a.Role, _ = role.(models.Role)
	return a
}

func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
