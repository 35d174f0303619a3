package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSessionTTL = 5 * 24 * time.Hour
	DefaultGoogleTTL  = 2 * 24 * time.Hour
)

// JWTService emite y valida los tokens de sesion.
type JWTService struct {
	secret    []byte
	ttl       time.Duration
	googleTTL time.Duration
	now       func() time.Time
}

// Claims admite las dos formas de payload que emite el servicio: {id} para
// signup/signin y {email} para el login con Google.
type Claims struct {
	UserID string `json:"id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, ttl, googleTTL time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if googleTTL <= 0 {
		googleTTL = DefaultGoogleTTL
	}
	return &JWTService{
		secret:    []byte(secret),
		ttl:       ttl,
		googleTTL: googleTTL,
		now:       time.Now,
	}
}

// IssueForUser firma un token {id} con la duracion de sesion local.
func (s *JWTService) IssueForUser(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrJWTInvalid
	}
	return s.sign(Claims{UserID: userID}, s.ttl)
}

// IssueForEmail firma un token {email} con la duracion del login con Google.
func (s *JWTService) IssueForEmail(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrJWTInvalid
	}
	return s.sign(Claims{Email: email}, s.googleTTL)
}

func (s *JWTService) sign(claims Claims, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrJWTInvalid
	}
	now := s.now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma y expiracion y exige id o email en el payload.
func (s *JWTService) Parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrJWTInvalid
	}
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(claims.UserID) == "" && strings.TrimSpace(claims.Email) == "" {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}
