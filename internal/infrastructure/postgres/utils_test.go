package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("otro")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%react%", likePattern("react"))
	assert.Equal(t, `%a\_b\%c%`, likePattern("a_b%c"))
}

func TestSchema_TieneIndicesUnicos(t *testing.T) {
	s := Schema()
	for _, want := range []string{"packages_company_name_key", "budgets_company_id_key", "allocated_cents"} {
		assert.True(t, strings.Contains(s, want), want)
	}
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isInvalidText(errors.New("22P02")))
}

func TestSchema_ImportedByEsTexto(t *testing.T) {
	assert.Contains(t, Schema(), "imported_by  TEXT        NULL")
}

func TestInsertPackages_ActorSinCastUUID(t *testing.T) {
	for _, q := range []string{insertPackageSQL, insertPackagesBatchSQL} {
		assert.Contains(t, q, "imported_by")
		assert.NotContains(t, q, "'')::uuid")
	}
}
