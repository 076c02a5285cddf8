// Package token encapsula el token de recuperación de contraseña detrás de
// una capacidad mínima: Issue emite un JWT firmado con {email, exp} e
// Verify lo valida y devuelve el email embebido. La verificación es pura y
// sin efectos secundarios; el token sigue siendo válido hasta su expiración
// aunque ya se haya canjeado (no hay marca de un solo uso).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired el token venció su TTL.
	ErrExpired = errors.New("token expirado")
	// ErrInvalid firma incorrecta o token malformado.
	ErrInvalid = errors.New("token inválido")
)

// Claims son los claims estándar más el email de la cuenta a recuperar.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issue emite un token de recuperación firmado HS256 con vencimiento now+ttl.
func Issue(secret, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// Verify valida firma y expiración y devuelve el email embebido.
// Retorna ErrExpired si venció el TTL y ErrInvalid ante cualquier otro problema.
func Verify(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Email == "" {
		return "", ErrInvalid
	}
	return claims.Email, nil
}
