package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/depcatalog-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testIssuer    = "depcatalog-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

func TestIssuer_IssueYParse(t *testing.T) {
	iss, err := pkgjwt.NewIssuer(testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	tok, exp, err := iss.Issue(testUserID, testCompanyID, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssuer_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewIssuer("", testIssuer, time.Hour)
	assert.Error(t, err)
}

func TestIssuer_TokenExpirado(t *testing.T) {
	iss, err := pkgjwt.NewIssuer(testSecret, testIssuer, time.Millisecond)
	require.NoError(t, err)
	tok, _, err := iss.Issue(testUserID, testCompanyID, "member")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // NumericDate tiene resolución de segundos
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_SecretOIssuerDistinto(t *testing.T) {
	iss, _ := pkgjwt.NewIssuer(testSecret, testIssuer, time.Hour)
	tok, _, err := iss.Issue(testUserID, testCompanyID, "member")
	require.NoError(t, err)

	otroSecret, _ := pkgjwt.NewIssuer("otro-secret-completamente-distinto", testIssuer, time.Hour)
	_, err = otroSecret.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)

	otroIssuer, _ := pkgjwt.NewIssuer(testSecret, "otro-issuer", time.Hour)
	_, err = otroIssuer.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_SinCompanyID(t *testing.T) {
	iss, _ := pkgjwt.NewIssuer(testSecret, testIssuer, time.Hour)
	tok, _, err := iss.Issue(testUserID, "", "member")
	require.NoError(t, err)
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestIssuer_Basura(t *testing.T) {
	iss, _ := pkgjwt.NewIssuer(testSecret, testIssuer, time.Hour)
	_, err := iss.Parse("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}
