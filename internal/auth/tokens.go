package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/agendamento-api/internal/models"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenRevoked   = errors.New("token revoked")
)

// Claims é a visão tipada do payload do JWT.
type Claims struct {
	UserID    uint
	Email     string
	Role      models.Role
	ID        string
	Type      string
	ExpiresAt time.Time
}

// Remaining devolve o tempo de vida restante do token.
func (c Claims) Remaining(now time.Time) time.Duration {
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// --------- Emissão ---------

func (m *TokenManager) IssueAccess(p *models.Person) (string, error) {
	return m.sign(jwt.MapClaims{
		"sub":   p.ID,
		"email": p.Email,
		"role":  string(p.Role),
		"typ":   TokenAccess,
	}, m.accessTTL)
}

func (m *TokenManager) IssueRefresh(p *models.Person) (string, error) {
	return m.sign(jwt.MapClaims{
		"sub": p.ID,
		"typ": TokenRefresh,
	}, m.refreshTTL)
}

func (m *TokenManager) sign(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := m.now()
	claims["jti"] = uuid.NewString()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// --------- Validação ---------

func (m *TokenManager) Parse(tokenString, typ string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if t, _ := mc["typ"].(string); t != typ {
		return nil, ErrWrongTokenType
	}

	sub, ok := mc["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, ErrInvalidToken
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	c := &Claims{
		UserID:    uint(sub),
		Type:      typ,
		ExpiresAt: exp.Time,
	}
	c.ID, _ = mc["jti"].(string)
	c.Email, _ = mc["email"].(string)
	if role, ok := mc["role"].(string); ok {
		c.Role = models.Role(role)
	}

	return c, nil
}
