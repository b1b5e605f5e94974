package jwt

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/SwiftWareCo/GolfSync-sub005/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the fields the club SSO places in its tokens. This service never
// issues tokens; it only validates what the SSO signed.
type Claims struct {
	MemberID string `json:"member_id"`
	Role     string `json:"role"` // member | staff
	Name     string `json:"name,omitempty"`
	jwtv5.RegisteredClaims
}

// Roles the SSO assigns.
const (
	RoleMember = "member"
	RoleStaff  = "staff"
)

// Manager validates SSO-issued tokens with the shared signing secret.
type Manager struct {
	secret []byte
	issuer string
}

// NewManager builds the validator from auth configuration.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
	}
}

// ParseToken validates the signature, expiry, and issuer, and returns the
// claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
