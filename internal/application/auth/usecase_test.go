package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/internal/domain"
	"github.com/jhoicas/MantenPro-api/internal/domain/entity"
	"github.com/jhoicas/MantenPro-api/pkg/jwt"
)

const secret = "test-secret"

func TestIssue_TokenConIdentidad(t *testing.T) {
	ti := NewTokenIssuer(JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
	token, err := ti.Issue(&entity.User{ID: "cli-a", CompanyID: "C1", Role: entity.RoleCliente, Active: true})
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "cli-a", userID)
	assert.Equal(t, "C1", companyID)
	assert.Equal(t, "CLIENTE", role)
}

func TestIssue_Rechazos(t *testing.T) {
	ti := NewTokenIssuer(JWTConfig{Secret: secret, ExpMinutes: 5})

	_, err := ti.Issue(&entity.User{ID: "off", Role: entity.RoleTecnico, Active: false})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = ti.Issue(&entity.User{ID: "x", Role: "SUPER", Active: true})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = ti.Issue(nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	sinSecreto := NewTokenIssuer(JWTConfig{})
	_, err = sinSecreto.Issue(&entity.User{ID: "a", Role: entity.RoleAdmin, Active: true})
	assert.Error(t, err)
}
