package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/dirloader/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(runID string) (*models.LoadResult, []models.Document) {
	result := &models.LoadResult{
		RunID:      runID,
		Root:       "/docs",
		Pattern:    "**/[!.]*.docx",
		Candidates: 3,
		Loaded:     2,
		Skipped: []models.SkippedFile{
			{Path: "/docs/c.docx", Error: "failed to extract /docs/c.docx (docx): zip: not a valid zip file"},
		},
		Units:     3,
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC),
		Duration:  1500 * time.Millisecond,
	}
	docs := []models.Document{
		models.NewDocument("alpha", map[string]any{"source": "/docs/a.docx", "title": "A"}),
		models.NewDocument("beta one", map[string]any{"source": "/docs/sub/b.docx"}),
		models.NewDocument("beta two", map[string]any{"source": "/docs/sub/b.docx", "page": 2}),
	}
	return result, docs
}

func TestNewStore_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "dirloader.db")

	s, err := NewStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, dbPath, s.Path())
	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should be created along with its parent directories")
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	versions, err := s.GetAppliedVersions(ctx)
	require.NoError(t, err)
	require.Len(t, versions, len(migrations))
	for i, v := range versions {
		assert.Equal(t, migrations[i].Version, v.Version)
		assert.False(t, v.AppliedAt.IsZero())
	}

	latest, err := s.GetLatestVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, latest)
}

func TestApplyMigrations_Idempotency(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	require.NoError(t, s.ApplyMigrations(ctx))
	require.NoError(t, s.ApplyMigrations(ctx))

	versions, err := s.GetAppliedVersions(ctx)
	require.NoError(t, err)
	assert.Len(t, versions, len(migrations))
}

func TestApplyMigrations_Reopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	first, err := NewStore(dbPath)
	require.NoError(t, err)
	result, docs := sampleRun("run-1")
	require.NoError(t, first.SaveRun(ctx, result, docs))
	require.NoError(t, first.Close())

	second, err := NewStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	versions, err := second.GetAppliedVersions(ctx)
	require.NoError(t, err)
	assert.Len(t, versions, len(migrations))

	got, err := second.ListDocuments(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSaveRun_GetRun(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, docs := sampleRun("run-1")
	require.NoError(t, s.SaveRun(ctx, result, docs))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, result.RunID, got.RunID)
	assert.Equal(t, result.Root, got.Root)
	assert.Equal(t, result.Pattern, got.Pattern)
	assert.Equal(t, result.Candidates, got.Candidates)
	assert.Equal(t, result.Loaded, got.Loaded)
	assert.Equal(t, result.Units, got.Units)
	assert.True(t, result.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, result.Duration, got.Duration)
	assert.Equal(t, result.Skipped, got.Skipped)
}

func TestSaveRun_NoSkipped(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, docs := sampleRun("clean")
	result.Skipped = nil
	require.NoError(t, s.SaveRun(ctx, result, docs))

	got, err := s.GetRun(ctx, "clean")
	require.NoError(t, err)
	assert.NotNil(t, got.Skipped)
	assert.Empty(t, got.Skipped)
}

func TestSaveRun_Validation(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	assert.Error(t, s.SaveRun(ctx, nil, nil))
	assert.Error(t, s.SaveRun(ctx, &models.LoadResult{}, nil))
}

func TestSaveRun_DuplicateRunIDRollsBack(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, docs := sampleRun("dup")
	require.NoError(t, s.SaveRun(ctx, result, docs))

	extra := []models.Document{models.NewDocument("extra", map[string]any{"source": "/docs/x.docx"})}
	err := s.SaveRun(ctx, result, extra)
	require.Error(t, err)

	got, err := s.ListDocuments(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, got, 3, "failed save must not leave partial documents behind")
}

func TestListDocuments_Order(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, docs := sampleRun("ordered")
	require.NoError(t, s.SaveRun(ctx, result, docs))

	got, err := s.ListDocuments(ctx, "ordered")
	require.NoError(t, err)
	require.Len(t, got, 3)

	contents := []string{got[0].Content, got[1].Content, got[2].Content}
	assert.Equal(t, []string{"alpha", "beta one", "beta two"}, contents)
	assert.Equal(t, "/docs/a.docx", got[0].Source())
	assert.Equal(t, "A", got[0].Metadata["title"])
	assert.Equal(t, "/docs/sub/b.docx", got[2].Source())
	assert.Equal(t, float64(2), got[2].Metadata["page"])
}

func TestListDocuments_UnknownRun(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.ListDocuments(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListDocuments_EmptyMetadata(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, _ := sampleRun("bare")
	docs := []models.Document{{Content: "no metadata"}}
	require.NoError(t, s.SaveRun(ctx, result, docs))

	got, err := s.ListDocuments(ctx, "bare")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Metadata)
	assert.Empty(t, got[0].Metadata)
}

func TestGetRun_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	for _, id := range []string{"first", "second", "third"} {
		result, docs := sampleRun(id)
		require.NoError(t, s.SaveRun(ctx, result, docs))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all runs newest first", limit: 0, want: []string{"third", "second", "first"}},
		{name: "limited", limit: 2, want: []string{"third", "second"}},
		{name: "limit above count", limit: 10, want: []string{"third", "second", "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.ListRuns(ctx, tt.limit)
			require.NoError(t, err)

			ids := make([]string, 0, len(runs))
			for _, r := range runs {
				ids = append(ids, r.RunID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	result, docs := sampleRun("gone")
	require.NoError(t, s.SaveRun(ctx, result, docs))

	require.NoError(t, s.DeleteRun(ctx, "gone"))

	_, err := s.GetRun(ctx, "gone")
	assert.ErrorIs(t, err, ErrRunNotFound)

	got, err := s.ListDocuments(ctx, "gone")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, s.DeleteRun(ctx, "gone"), ErrRunNotFound)
}

func TestSaveRun_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "concurrent.db")

	const writers = 4
	stores := make([]*Store, writers)
	for i := range stores {
		s, err := NewStore(dbPath)
		require.NoError(t, err)
		defer s.Close()
		stores[i] = s
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i, s := range stores {
		wg.Add(1)
		go func(i int, s *Store) {
			defer wg.Done()
			result, docs := sampleRun(string(rune('a' + i)))
			errs <- s.SaveRun(ctx, result, docs)
		}(i, s)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	runs, err := stores[0].ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, writers)
}
