package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MantenPro-api/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func TestGenerateParse(t *testing.T) {
	tok, err := jwt.Generate(secret, "u-1", "C1", "CLIENTE", "mantenpro-test", 5)
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "C1", companyID)
	assert.Equal(t, "CLIENTE", role)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "", "ADMIN", "x", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, _, _, err = jwt.Parse("", "a.b.c")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestParse_Rechazos(t *testing.T) {
	expirado, err := jwt.Generate(secret, "u-1", "", "ADMIN", "x", -1)
	require.NoError(t, err)

	sinExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{UserID: "u-1", Role: "ADMIN"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	otroAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{UserID: "u-1"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	sinUsuario, err := jwt.Generate(secret, "", "", "ADMIN", "x", 5)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expirado":    expirado,
		"sin exp":     sinExp,
		"HS512":       otroAlg,
		"sin usuario": sinUsuario,
		"basura":      "no-es-un-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := jwt.Parse(secret, tok)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}
