package corpus

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *Builder {
	return NewBuilder(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "2024/01/01.json", `{"answers":{"across":["ERA","ORE"],"down":["era"," "]}}`)
	writeFile(t, root, "2024/01/02.json", `{"answers":{"across":["ERA"],"down":null}}`)
	writeFile(t, root, "2024/02/01.json", `{"size":{"rows":1,"cols":1},"grid":["A"]}`)
	writeFile(t, root, "2024/02/02.json", `{not json`)
	writeFile(t, root, "README.md", `# not a puzzle`)

	db, stats, err := testBuilder().Build(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, Stats{Files: 4, Parsed: 2, Empty: 1, Failed: 1, Answers: 4}, stats)
	assert.Equal(t, map[string]int64{"ERA": 3, "ORE": 1}, db.Counts())
}

func TestBuild_BlankAnswersNotCounted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.json", `{"answers":{"across":["ERA","",""],"down":["  "]}}`)
	writeFile(t, root, "b.json", `{"answers":{"across":[" "],"down":[""]}}`)

	db, stats, err := testBuilder().Build(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, Stats{Files: 2, Parsed: 1, Empty: 1, Answers: 1}, stats)
	assert.Equal(t, map[string]int64{"ERA": 1}, db.Counts())
}

func TestBuild_MissingRoot(t *testing.T) {
	t.Parallel()

	_, _, err := testBuilder().Build(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.json", `{"answers":{"across":["ERA"]}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := testBuilder().Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
