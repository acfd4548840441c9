package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"bedrot-sim/internal/wizard/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsPath = "../../../migrations/001_init_exports.sql"

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), migrationsPath))
	return repo
}

func sampleExport(id string) *models.Export {
	return &models.Export{
		ID:        id,
		SessionID: "session-1",
		FileName:  "bed-rot-sim-" + id + ".png",
		Path:      "/tmp/" + id + ".png",
		Stats:     models.Stats{Comfort: 100, Social: 30, Rot: 60, Rank: models.RankWeekendWarrior},
		Caption:   "caption " + id,
	}
}

func TestRecordAndGetExport(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.RecordExport(ctx, sampleExport("a")))

	got, err := repo.GetExport(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, "/tmp/a.png", got.Path)
	assert.Equal(t, models.RankWeekendWarrior, got.Stats.Rank)
	assert.Equal(t, 60, got.Stats.Rot)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestGetExportNotFound(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.GetExport(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordExportDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.RecordExport(ctx, sampleExport("a")))
	assert.Error(t, repo.RecordExport(ctx, sampleExport("a")))
}

func TestListExportsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.RecordExport(ctx, sampleExport(id)))
	}

	all, err := repo.ListExports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	limited, err := repo.ListExports(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestInitIsRepeatable(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.Init(context.Background(), migrationsPath))
}

func TestInitMissingMigration(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	err = New(db).Init(context.Background(), "does/not/exist.sql")
	assert.ErrorContains(t, err, "read migration")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, clampLimit(0))
	assert.Equal(t, DefaultListLimit, clampLimit(-5))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxListLimit, clampLimit(MaxListLimit))
	assert.Equal(t, MaxListLimit, clampLimit(100000000))
}

func TestListExportsCapsLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < MaxListLimit+5; i++ {
		require.NoError(t, repo.RecordExport(ctx, sampleExport(fmt.Sprintf("e%03d", i))))
	}

	got, err := repo.ListExports(ctx, 100000000)
	require.NoError(t, err)
	assert.Len(t, got, MaxListLimit)
}
