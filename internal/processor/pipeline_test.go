package processor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"hiremind-go/internal/config"
	"hiremind-go/internal/extractor"
	"hiremind-go/internal/matcher"
	"hiremind-go/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPipeline 构建使用临时目录的完整管线
func newTestPipeline(t *testing.T) (*Pipeline, *storage.Storage) {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.NewSQLite(&config.SQLiteConfig{
		Path:          filepath.Join(dir, "test.db"),
		LogLevel:      1,
		BusyTimeoutMS: 5000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	files, err := storage.NewLocalFileStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	st := &storage.Storage{DB: db, Files: files}
	p, err := NewPipeline(&Components{
		Extractor: extractor.NewTextExtractor(nil),
		Tagger:    matcher.NewSkillTagger(nil),
		Scorer:    matcher.NewTFIDFScorer(0),
		Storage:   st,
	}, nil)
	require.NoError(t, err)
	return p, st
}

func TestNewPipelineValidation(t *testing.T) {
	_, err := NewPipeline(nil, nil)
	assert.Error(t, err)

	_, err = NewPipeline(&Components{}, nil)
	assert.Error(t, err)
}

func TestProcessUploadEmptyData(t *testing.T) {
	p, _ := newTestPipeline(t)
	_, err := p.ProcessUpload(context.Background(), nil, "a.txt", "jd")
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestProcessUploadBasic(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	data := []byte("Experienced Python and Flask developer with SQL skills.")
	c, err := p.ProcessUpload(ctx, data, "alice_resume.txt", "python flask developer")
	require.NoError(t, err)

	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), c.UID)
	assert.Equal(t, "alice_resume", c.Name)
	assert.Equal(t, "alice_resume.txt", c.Resume)
	assert.Equal(t, "python, flask, sql", c.Skills)
	assert.Equal(t, "python flask developer", c.JD)
	assert.Greater(t, c.MatchScore, 0.0)
	assert.Equal(t, string(data), c.Excerpt)

	// 原件已保存
	got, err := p.GetResumeFile(ctx, "alice_resume.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestProcessUploadIdempotent(t *testing.T) {
	p, st := newTestPipeline(t)
	ctx := context.Background()

	data := []byte("go developer with sql background")
	first, err := p.ProcessUpload(ctx, data, "bob.txt", "sql developer")
	require.NoError(t, err)

	// 相同字节、不同岗位描述：同一条记录被覆盖
	second, err := p.ProcessUpload(ctx, data, "bob.txt", "completely different role")
	require.NoError(t, err)
	assert.Equal(t, first.UID, second.UID)

	all, err := st.DB.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "completely different role", all[0].JD)
}

func TestProcessUploadNoSkills(t *testing.T) {
	p, _ := newTestPipeline(t)

	c, err := p.ProcessUpload(context.Background(),
		[]byte("experienced carpenter and woodworker"), "carl.txt", "carpenter wanted")
	require.NoError(t, err)
	assert.Equal(t, "—", c.Skills)
}

func TestProcessUploadExcerptTruncation(t *testing.T) {
	p, _ := newTestPipeline(t)

	long := make([]byte, 0, 5000)
	for len(long) < 5000 {
		long = append(long, []byte("python developer ")...)
	}
	c, err := p.ProcessUpload(context.Background(), long, "long.txt", "python")
	require.NoError(t, err)
	assert.Len(t, []rune(c.Excerpt), 2000)
}

func TestReprocessAll(t *testing.T) {
	p, st := newTestPipeline(t)
	ctx := context.Background()

	dataA := []byte("python flask engineer")
	_, err := p.ProcessUpload(ctx, dataA, "a.txt", "python engineer")
	require.NoError(t, err)

	dataB := []byte("react node frontend")
	cb, err := p.ProcessUpload(ctx, dataB, "b.txt", "react developer")
	require.NoError(t, err)

	// 删除 b 的原件，模拟文件缺失
	local, ok := st.Files.(*storage.LocalFileStore)
	require.True(t, ok)
	require.NoError(t, os.Remove(filepath.Join(local.Dir(), "b.txt")))

	report, err := p.ReprocessAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report.BatchID)
	assert.Len(t, report.Updated, 1)
	assert.Equal(t, []string{cb.UID}, report.Missing)

	// 缺失记录原值保留，未被清空
	after, err := st.DB.GetCandidate(ctx, cb.UID)
	require.NoError(t, err)
	assert.Equal(t, "react developer", after.JD)
	assert.Equal(t, "b.txt", after.Resume)
}

func TestReprocessPreservesUIDAndJD(t *testing.T) {
	p, st := newTestPipeline(t)
	ctx := context.Background()

	data := []byte("sql and postgres administrator")
	c, err := p.ProcessUpload(ctx, data, "dba.txt", "postgres dba")
	require.NoError(t, err)

	report, err := p.ReprocessAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{c.UID}, report.Updated)

	after, err := st.DB.GetCandidate(ctx, c.UID)
	require.NoError(t, err)
	assert.Equal(t, c.UID, after.UID)
	assert.Equal(t, "postgres dba", after.JD)
	assert.InDelta(t, c.MatchScore, after.MatchScore, 0.01)
}

func TestExportSnapshot(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.ProcessUpload(ctx, []byte("python flask sql developer"), "x.txt", "python flask sql developer")
	require.NoError(t, err)
	_, err = p.ProcessUpload(ctx, []byte("unrelated plumber"), "y.txt", "python flask sql developer")
	require.NoError(t, err)

	rows, err := p.ExportSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"uid", "name", "skills", "match_score",
		"resume", "jd", "excerpt", "overlap", "overlap_tokens",
	}, rows[0])

	// 匹配分降序：完全匹配的记录排在前面
	assert.Equal(t, "x", rows[1][1])
	assert.Equal(t, "100.00", rows[1][3])
	assert.Equal(t, "y", rows[2][1])

	for _, row := range rows[1:] {
		assert.Len(t, row, len(rows[0]))
	}
}

func TestDeleteCandidate(t *testing.T) {
	p, st := newTestPipeline(t)
	ctx := context.Background()

	c, err := p.ProcessUpload(ctx, []byte("ml engineer"), "m.txt", "ml")
	require.NoError(t, err)

	require.NoError(t, p.DeleteCandidate(ctx, c.UID))
	_, err = st.DB.GetCandidate(ctx, c.UID)
	assert.ErrorIs(t, err, storage.ErrCandidateNotFound)

	// 重复删除为空操作
	assert.NoError(t, p.DeleteCandidate(ctx, c.UID))
}
