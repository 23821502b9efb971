package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/config"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func sample() *models.Dataset {
	return &models.Dataset{
		Owners:     []models.Owner{{ID: "o1", Name: "John"}, {ID: "o2", Name: "Mary"}},
		Categories: []models.Category{{ID: "c1", Name: models.CategoryCash, Type: models.Asset, Color: "#10b981"}, {ID: "c2", Name: models.CategoryLiability, Type: models.Liability}},
		Accounts: []models.Account{
			{ID: "a1", Name: "Chase Checking", Currency: models.USD, CategoryID: "c1", OwnerID: "o1"},
			{ID: "a2", Name: "Car Loan", Currency: models.EUR, CategoryID: "c2", OwnerID: "o2"},
		},
		Records: []models.Record{
			{ID: "r2", Date: models.MustParseDate("2024-01-15"), AccountID: "a1", Amount: decimal.RequireFromString("8000.25"), Timestamp: 5},
			{ID: "r1", Date: models.MustParseDate("2024-01-15"), AccountID: "a1", Amount: decimal.RequireFromString("8100"), Note: "corrected", Timestamp: 5},
			{ID: "r3", Date: models.MustParseDate("2024-01-20"), AccountID: "a2", Amount: decimal.NewFromInt(18000), Timestamp: 7},
		},
	}
}

func assertSameDataset(t *testing.T, want, got *models.Dataset) {
	t.Helper()
	assert.Equal(t, want.Owners, got.Owners)
	assert.Equal(t, want.Categories, got.Categories)
	assert.Equal(t, want.Accounts, got.Accounts)
	require.Len(t, got.Records, len(want.Records))
	for i := range want.Records {
		w, g := want.Records[i], got.Records[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Date, g.Date)
		assert.Equal(t, w.AccountID, g.AccountID)
		assert.True(t, w.Amount.Equal(g.Amount), "record %s amount: want %s got %s", w.ID, w.Amount, g.Amount)
		assert.Equal(t, w.Note, g.Note)
		assert.Equal(t, w.Timestamp, g.Timestamp)
	}
}

func TestFileStore_MissingFileLoadsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data.json"), logging.NewMockLogger(), fixedNow)
	require.NoError(t, err)

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
	assert.NotNil(t, ds.Records)
}

func TestFileStore_RoundTrip(t *testing.T) {
	for _, name := range []string{"data.json", "data.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			s, err := NewFileStore(path, logging.NewMockLogger(), fixedNow)
			require.NoError(t, err)

			require.NoError(t, s.Save(context.Background(), sample()))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(models.PermissionDataFile), info.Mode().Perm())

			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assertSameDataset(t, sample(), got)
		})
	}
}

func TestFileStore_WritesBackupDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewFileStore(path, nil, fixedNow)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sample()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version": "2.0"`)
	assert.Contains(t, string(raw), `"exportDate": "2024-06-01T12:00:00Z"`)
	assert.Contains(t, string(raw), `"amount": "8000.25"`)
}

func TestFileStore_EmptyAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0600))
	s, err := NewFileStore(empty, nil, nil)
	require.NoError(t, err)
	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0600))
	s, err = NewFileStore(corrupt, nil, nil)
	require.NoError(t, err)
	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_WarnsOnPermissiveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records":[]}`), 0644))
	require.NoError(t, os.Chmod(path, 0644))

	logger := logging.NewMockLogger()
	s, err := NewFileStore(path, logger, nil)
	require.NoError(t, err)
	_, err = s.Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, logger.GetEntriesByLevel("WARN"))
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("", nil, nil)
	assert.Error(t, err)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "data.db")
	s, err := NewSQLiteStore(path, logging.NewMockLogger())
	require.NoError(t, err)
	defer s.Close()

	ds, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())

	require.NoError(t, s.Save(context.Background(), sample()))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assertSameDataset(t, sample(), got)

	// second save replaces, not appends
	smaller := sample()
	smaller.Records = smaller.Records[:1]
	require.NoError(t, s.Save(context.Background(), smaller))
	got, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")
	s, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sample()))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assertSameDataset(t, sample(), got)
}

func TestSave_RefusesDuplicateIDsOnEveryBackend(t *testing.T) {
	dir := t.TempDir()
	file, err := NewFileStore(filepath.Join(dir, "data.json"), nil, fixedNow)
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(dir, "data.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	for name, s := range map[string]Store{"file": file, "sqlite": db} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, sample()))

			dup := sample()
			dup.Records = append(dup.Records, dup.Records[0])
			err := s.Save(ctx, dup)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, "record", verr.Entity)

			kept, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Len(t, kept.Records, 3)
		})
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Data.Backend = config.BackendFile
	cfg.Data.Path = filepath.Join(dir, "data.json")
	s, err := New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	cfg.Data.Backend = config.BackendSQLite
	cfg.Data.Path = filepath.Join(dir, "data.db")
	s, err = New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	cfg.Data.Backend = "postgres"
	_, err = New(cfg, nil, nil)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore(sample())

	ds, err := m.Load(context.Background())
	require.NoError(t, err)
	ds.Records = nil

	again, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, again.Records, 3)

	require.NoError(t, m.Save(context.Background(), models.NewDataset()))
	assert.Equal(t, 1, m.Saves)

	m.LoadError = errors.New("boom")
	_, err = m.Load(context.Background())
	assert.EqualError(t, err, "boom")

	m.SaveError = errors.New("disk full")
	assert.Error(t, m.Save(context.Background(), nil))
}
