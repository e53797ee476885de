package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/expensefront/domain"
)

// JWTInspector implements domain.TokenInspector. The client never verifies
// signatures: it holds no secret, and the backend re-validates every request.
// Claims are only peeked to short-circuit hydration of locally dead tokens.
type JWTInspector struct{}

// NewJWTInspector creates a token inspector
func NewJWTInspector() *JWTInspector {
	return &JWTInspector{}
}

// Inspect implements domain.TokenInspector
func (j *JWTInspector) Inspect(tokenString string) (*domain.TokenInfo, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	info := &domain.TokenInfo{}

	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = int64(exp)
	}
	if iat, ok := claims["iat"].(float64); ok {
		info.IssuedAt = int64(iat)
	}
	if role, ok := claims["role"].(string); ok {
		if parsed, err := domain.ParseRole(role); err == nil {
			info.Role = parsed
		}
	}

	if info.ExpiresAt != 0 && time.Unix(info.ExpiresAt, 0).Before(time.Now()) {
		return info, domain.ErrTokenExpired
	}

	return info, nil
}

var _ domain.TokenInspector = (*JWTInspector)(nil)
