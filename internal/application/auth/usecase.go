// Package auth emite tokens de desarrollo para usuarios existentes. El login y la
// recuperación de contraseña viven fuera de esta API; aquí solo se firma la
// identidad que el middleware luego valida.
package auth

import (
	"fmt"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenIssuer firma tokens con user_id, company_id y role.
type TokenIssuer struct {
	jwtCfg JWTConfig
}

// NewTokenIssuer construye el emisor.
func NewTokenIssuer(jwtCfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{jwtCfg: jwtCfg}
}

// Issue genera el token de un usuario. Usuarios inactivos no reciben token.
func (ti *TokenIssuer) Issue(user *entity.User) (string, error) {
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if !user.Active {
		return "", domain.ErrForbidden
	}
	role, ok := entity.NormalizeRole(string(user.Role))
	if !ok {
		return "", fmt.Errorf("rol %q: %w", user.Role, domain.ErrUnauthorized)
	}
	return jwt.Generate(ti.jwtCfg.Secret, user.ID, user.CompanyID, string(role), ti.jwtCfg.Issuer, ti.jwtCfg.ExpMinutes)
}
