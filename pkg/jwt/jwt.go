// Package jwt firma y valida los tokens de acceso de la API (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrEmptySecret sin secreto no se firma ni se valida nada.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrInvalidToken token mal formado, expirado, con otra firma o sin usuario.
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Claims claims estándar más la identidad del actor. Role y CompanyID viajan en
// el token para resolver la visibilidad sin consultar la base.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"` // solo CLIENTE
	Role      string `json:"role"`                 // ADMIN | TECNICO | CLIENTE
}

// Generate firma un token para userID. expMinutes negativo produce un token ya
// expirado (útil en tests).
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve userID, companyID y role.
// Solo acepta HS256 y exige exp.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", ErrEmptySecret
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return "", "", "", fmt.Errorf("%w: sin usuario", ErrInvalidToken)
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}
