package storage

import (
	"context"
	"path/filepath"
	"testing"

	"hiremind-go/internal/config"
	"hiremind-go/internal/storage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewSQLite(&config.SQLiteConfig{
		Path:          filepath.Join(t.TempDir(), "test.db"),
		LogLevel:      1,
		BusyTimeoutMS: 1000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertCandidateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &models.Candidate{
		UID:        "fingerprint-1",
		Name:       "alice",
		Skills:     "python, sql",
		MatchScore: 70.5,
		Resume:     "alice.pdf",
		JD:         "python sql",
		Excerpt:    "excerpt v1",
		Overlap:    50,
	}
	require.NoError(t, db.UpsertCandidate(ctx, first))

	// 同一指纹重复写入：覆盖派生字段而不是新增行
	second := &models.Candidate{
		UID:           "fingerprint-1",
		Name:          "alice",
		Skills:        "python",
		MatchScore:    88.25,
		Resume:        "alice.pdf",
		JD:            "python only",
		Excerpt:       "excerpt v2",
		Overlap:       100,
		OverlapTokens: "python",
	}
	require.NoError(t, db.UpsertCandidate(ctx, second))

	all, err := db.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fingerprint-1", all[0].UID)
	assert.Equal(t, 88.25, all[0].MatchScore)
	assert.Equal(t, "python only", all[0].JD)
	assert.Equal(t, "excerpt v2", all[0].Excerpt)
}

func TestGetCandidateNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCandidate(context.Background(), "no-such-uid")
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}

func TestListCandidatesOrdering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{UID: "low", MatchScore: 10}))
	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{UID: "tie-first", MatchScore: 50}))
	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{UID: "high", MatchScore: 90}))
	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{UID: "tie-second", MatchScore: 50}))

	all, err := db.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	// 匹配分降序，同分按插入顺序
	assert.Equal(t, "high", all[0].UID)
	assert.Equal(t, "tie-first", all[1].UID)
	assert.Equal(t, "tie-second", all[2].UID)
	assert.Equal(t, "low", all[3].UID)
}

func TestUpdateCandidateDerived(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{
		UID:        "uid-1",
		Name:       "bob",
		Resume:     "bob.docx",
		JD:         "original jd",
		MatchScore: 10,
	}))

	require.NoError(t, db.UpdateCandidateDerived(ctx, "uid-1", "new excerpt", 33.33, "go, sql", 42.5))

	got, err := db.GetCandidate(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "new excerpt", got.Excerpt)
	assert.Equal(t, 33.33, got.Overlap)
	assert.Equal(t, "go, sql", got.OverlapTokens)
	assert.Equal(t, 42.5, got.MatchScore)
	// 指纹、文件名、岗位描述不被触碰
	assert.Equal(t, "bob.docx", got.Resume)
	assert.Equal(t, "original jd", got.JD)
}

func TestDeleteCandidate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.UpsertCandidate(ctx, &models.Candidate{UID: "uid-1"}))
	require.NoError(t, db.DeleteCandidate(ctx, "uid-1"))

	_, err := db.GetCandidate(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	// 删除不存在的指纹是空操作
	assert.NoError(t, db.DeleteCandidate(ctx, "never-existed"))
}

func TestMigrationIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.SQLiteConfig{Path: filepath.Join(dir, "migrate.db"), LogLevel: 1, BusyTimeoutMS: 1000}

	db1, err := NewSQLite(cfg)
	require.NoError(t, err)
	require.NoError(t, db1.UpsertCandidate(context.Background(), &models.Candidate{UID: "keep", JD: "jd text"}))
	require.NoError(t, db1.Close())

	// 重新打开同一个库：补列步骤不应报错，数据保持完好
	db2, err := NewSQLite(cfg)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.GetCandidate(context.Background(), "keep")
	require.NoError(t, err)
	assert.Equal(t, "jd text", got.JD)
}
