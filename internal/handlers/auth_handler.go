package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/auth"
	"github.com/BruksfildServices01/agendamento-api/internal/dto"
	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	"github.com/BruksfildServices01/agendamento-api/internal/middleware"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/validators"
)

type AuthHandler struct {
	db        *gorm.DB
	tokens    *auth.TokenManager
	blacklist auth.Blacklist
	log       *zap.Logger
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager, blacklist auth.Blacklist, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, blacklist: blacklist, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		httperr.BadRequest(c, httperr.CodeMissingField, "Email e senha são obrigatórios.")
		return
	}
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Formato de email inválido.")
		return
	}

	var user models.Person
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		dbError(c, err, "Usuário não encontrado.")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "Senha inválida.")
		return
	}

	access, err := h.tokens.IssueAccess(&user)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	refresh, err := h.tokens.IssueRefresh(&user)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).
		Update("refresh_token", refresh).Error; err != nil {
		dbError(c, err, "Usuário não encontrado.")
		return
	}

	h.log.Info("user logged in", zap.Uint("user_id", user.ID))

	httpresp.OK(c, dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.NewPersonSummary(&user),
	})
}

// Logout revoga o access token até sua expiração e invalida o refresh token salvo.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		httperr.Unauthorized(c, "invalid_token", "Token inválido ou expirado.")
		return
	}

	ctx := c.Request.Context()
	if err := h.blacklist.Revoke(ctx, claims.ID, claims.Remaining(time.Now())); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(ctx).
		Model(&models.Person{}).
		Where("id = ?", claims.UserID).
		Update("refresh_token", "").Error; err != nil {
		h.log.Warn("logout: clearing refresh token failed", zap.Uint("user_id", claims.UserID), zap.Error(err))
	}

	httpresp.Message(c, "Logout realizado com sucesso")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	raw := strings.TrimSpace(req.RefreshToken)
	if raw == "" {
		httperr.BadRequest(c, httperr.CodeMissingField, "Refresh token é obrigatório.")
		return
	}

	claims, err := h.tokens.Parse(raw, auth.TokenRefresh)
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Refresh token inválido ou expirado.")
		return
	}

	var user models.Person
	err = h.db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.RefreshToken != raw) {
		httperr.Unauthorized(c, "invalid_token", "Refresh token inválido ou expirado.")
		return
	}
	if err != nil {
		dbError(c, err, "Usuário não encontrado.")
		return
	}

	access, err := h.tokens.IssueAccess(&user)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.RefreshResponse{AccessToken: access})
}
