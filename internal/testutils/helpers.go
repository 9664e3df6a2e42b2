package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// Versioning is disabled so tests write plain files. It returns the absolute
// path to the temp dir and the repository, failing the test on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	opts = append([]loam.Option{loam.WithVersioning(false)}, opts...)
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteDocs writes hand-authored documents (frontmatter included) under dir,
// keyed by path relative to dir, the way a content author would.
func WriteDocs(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Failed to create dir for %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}
}

// SeedPathways upserts nodes in order and returns them with their assigned ids.
func SeedPathways(t *testing.T, repo ports.PathwayRepository, nodes ...domain.PathwayNode) []domain.PathwayNode {
	t.Helper()
	ctx := context.Background()
	out := make([]domain.PathwayNode, 0, len(nodes))
	for _, n := range nodes {
		saved, err := repo.Upsert(ctx, n)
		require.NoError(t, err, "Failed to upsert %q", n.Title)
		out = append(out, saved)
	}
	return out
}
