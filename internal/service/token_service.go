package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService emite y valida los bearer tokens que protegen la API de analisis.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	revoked RevocationList
}

// Claims identifica al cliente que pide analisis; Subject se usa como clave de rate limit.
type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		issuer:  "persona-insight",
		revoked: NewMemoryRevocationList(),
	}
}

func NewTokenServiceWithRevocations(secret string, ttl time.Duration, revoked RevocationList) *TokenService {
	svc := NewTokenService(secret, ttl)
	if revoked != nil {
		svc.revoked = revoked
	}
	return svc
}

// Issue firma un access token para subject.
func (s *TokenService) Issue(subject string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(subject) == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := Claims{
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   strings.TrimSpace(subject),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma, expiracion, emisor y tipo del token.
func (s *TokenService) Parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if claims.TokenType != "access" || strings.TrimSpace(claims.Subject) == "" || claims.Issuer != s.issuer {
		return Claims{}, ErrTokenInvalid
	}
	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(claims.ID)
		if err != nil || revoked {
			return Claims{}, ErrTokenInvalid
		}
	}
	return claims, nil
}

// Revoke invalida un token valido hasta su expiracion.
func (s *TokenService) Revoke(tokenString string) error {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return err
	}
	if claims.ID == "" || s.revoked == nil {
		return ErrTokenInvalid
	}
	ttl := s.ttl
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.revoked.Revoke(claims.ID, ttl)
}
