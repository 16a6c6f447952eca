package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depcatalog-api/internal/application/catalog"
	"github.com/jhoicas/depcatalog-api/internal/domain"
	"github.com/jhoicas/depcatalog-api/internal/domain/lockfile"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newImport(repo *memPackages, limits catalog.Limits) *catalog.ImportUseCase {
	return catalog.NewImportUseCase(repo, knownCompanies{companyA: true, companyB: true}, lockfile.DefaultRegistry(), limits, logger.Nop())
}

func TestImportNames_Buckets(t *testing.T) {
	repo := newMemPackages()
	repo.seed(companyA, "lodash")
	uc := newImport(repo, catalog.Limits{})

	out, err := uc.ImportNames(context.Background(), companyA, actorID,
		[]string{"react", "lodash", "UPPERCASE", "react", "@types/node", "has spaces", ""})
	require.NoError(t, err)

	assert.Equal(t, []string{"react", "@types/node"}, out.Imported)
	assert.Equal(t, []string{"lodash"}, out.Skipped)
	assert.Equal(t, []string{"UPPERCASE", "has spaces", ""}, out.Invalid)
	assert.Equal(t, 2, out.ImportedCount)
	assert.Equal(t, 1, out.SkippedCount)
	assert.Equal(t, 3, out.InvalidCount)
	assert.Equal(t, []string{"@types/node", "lodash", "react"}, repo.names(companyA))
}

func TestImportNames_CadaNombreDistintoEnUnSoloBucket(t *testing.T) {
	repo := newMemPackages()
	repo.seed(companyA, "b")
	uc := newImport(repo, catalog.Limits{})

	input := []string{"a", "b", "a", "Bad", " c", "c", "d", "Bad", "b"}
	out, err := uc.ImportNames(context.Background(), companyA, actorID, input)
	require.NoError(t, err)

	distinct := map[string]struct{}{}
	for _, n := range input {
		distinct[n] = struct{}{}
	}
	assert.Equal(t, len(distinct), out.ImportedCount+out.SkippedCount+out.InvalidCount)
	assert.Equal(t, []string{"a", "c", "d"}, out.Imported)
	// " c" se normaliza a "c"; la segunda forma cuenta como omitida.
	assert.Equal(t, []string{"b", "c"}, out.Skipped)
	assert.Equal(t, []string{"Bad"}, out.Invalid)
}

func TestImportNames_Idempotente(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})
	ctx := context.Background()
	names := []string{"express", "koa", "@nestjs/core"}

	first, err := uc.ImportNames(ctx, companyA, actorID, names)
	require.NoError(t, err)
	assert.Equal(t, 3, first.ImportedCount)

	second, err := uc.ImportNames(ctx, companyA, actorID, names)
	require.NoError(t, err)
	assert.Zero(t, second.ImportedCount)
	assert.Equal(t, names, second.Skipped)
}

func TestImportNames_AisladoPorEmpresa(t *testing.T) {
	repo := newMemPackages()
	repo.seed(companyB, "lodash")
	uc := newImport(repo, catalog.Limits{})

	out, err := uc.ImportNames(context.Background(), companyA, actorID, []string{"lodash"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lodash"}, out.Imported)
}

func TestImportNames_EntradaVacia(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	out, err := uc.ImportNames(context.Background(), companyA, actorID, nil)
	require.NoError(t, err)
	assert.Zero(t, out.ImportedCount+out.SkippedCount+out.InvalidCount)
	assert.Empty(t, out.Imported)
	assert.Zero(t, repo.calls)
}

func TestImportNames_UnaSolaConsultaDeExistencia(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	_, err := uc.ImportNames(context.Background(), companyA, actorID, []string{"a", "b", "c", "a"})
	require.NoError(t, err)
	require.Len(t, repo.findArgs, 1)
	assert.Equal(t, []string{"a", "b", "c"}, repo.findArgs[0])
}

func TestImportNames_ConflictoConcurrenteSeOmite(t *testing.T) {
	repo := newMemPackages()
	repo.raced["vite"] = struct{}{}
	uc := newImport(repo, catalog.Limits{})

	out, err := uc.ImportNames(context.Background(), companyA, actorID, []string{"vue", "vite", "pinia"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vue", "pinia"}, out.Imported)
	assert.Equal(t, []string{"vite"}, out.Skipped)
}

func TestImportNames_Errores(t *testing.T) {
	ctx := context.Background()

	uc := newImport(newMemPackages(), catalog.Limits{MaxNames: 2})
	_, err := uc.ImportNames(ctx, companyA, actorID, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ImportNames(ctx, "desconocida", actorID, []string{"a"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("db caída")
	repo := newMemPackages()
	repo.saveErr = boom
	_, err = newImport(repo, catalog.Limits{}).ImportNames(ctx, companyA, actorID, []string{"a"})
	assert.ErrorIs(t, err, boom)
}

func TestImportLockfile_Reporte(t *testing.T) {
	repo := newMemPackages()
	repo.seed(companyA, "b")
	uc := newImport(repo, catalog.Limits{})

	content := []byte(`{"dependencies":{"a":"^1.0.0","b":"^2.0.0"},"devDependencies":{"c":"^3.0.0","a":"^1.0.0"}}`)
	out, err := uc.ImportLockfile(context.Background(), companyA, actorID, content, "package.json")
	require.NoError(t, err)

	assert.Equal(t, "package-json", out.Dialect)
	assert.Equal(t, 3, out.TotalParsed)
	assert.Equal(t, 2, out.ImportedCount)
	assert.Equal(t, 1, out.SkippedCount)
	assert.Equal(t, []string{"a", "c"}, out.Imported)
	assert.Equal(t, []string{"b"}, out.Skipped)
}

func TestImportLockfile_Yarn(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	content := []byte("# yarn lockfile v1\n\nlodash@^4.17.21:\n  version \"4.17.21\"\n\n\"@babel/core@^7.0.0\", \"@babel/core@^7.1.0\":\n  version \"7.2.0\"\n")
	out, err := uc.ImportLockfile(context.Background(), companyA, actorID, content, "yarn.lock")
	require.NoError(t, err)
	assert.Equal(t, []string{"lodash", "@babel/core"}, out.Imported)
	assert.Equal(t, 2, out.TotalParsed)
}

func TestImportLockfile_FormatoNoSoportado(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	_, err := uc.ImportLockfile(context.Background(), companyA, actorID, []byte("a\nb\n"), "random.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Empty(t, repo.names(companyA))
	assert.Zero(t, repo.calls)
}

func TestImportLockfile_ContenidoIlegible(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	_, err := uc.ImportLockfile(context.Background(), companyA, actorID, []byte("{no es json"), "package-lock.json")
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Zero(t, repo.calls)
}

func TestImportLockfile_Limite(t *testing.T) {
	uc := newImport(newMemPackages(), catalog.Limits{MaxLockfileBytes: 4})

	_, err := uc.ImportLockfile(context.Background(), companyA, actorID, []byte(`{"dependencies":{}}`), "package.json")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportLockfile_Vacio(t *testing.T) {
	uc := newImport(newMemPackages(), catalog.Limits{})

	out, err := uc.ImportLockfile(context.Background(), companyA, actorID, nil, "yarn.lock")
	require.NoError(t, err)
	assert.Zero(t, out.TotalParsed)
	assert.Empty(t, out.Imported)
	assert.Empty(t, out.Skipped)
}

func TestImportNames_ActorQueNoEsUUID(t *testing.T) {
	repo := newMemPackages()
	uc := newImport(repo, catalog.Limits{})

	out, err := uc.ImportNames(context.Background(), companyA, "alice", []string{"lodash"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lodash"}, out.Imported)
	assert.Equal(t, "alice", repo.rows[companyA]["lodash"].ImportedBy())
}
