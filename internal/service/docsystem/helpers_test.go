package docsystem

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"branchwrite/internal/repository/filestore"
)

type testStore struct {
	*Services
	config *filestore.RepositoryConfig
	repos  *filestore.Repositories
}

// newTestStore wires the services over a fresh temp-dir root
func newTestStore(t *testing.T) *testStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg, err := filestore.NewRepositoryConfig(t.TempDir(), logger)
	require.NoError(t, err)

	repos := filestore.NewRepositories(cfg)
	return &testStore{
		Services: SetupServices(repos.Projects, repos.Books, repos.Documents, repos.TxManager, logger),
		config:   cfg,
		repos:    repos,
	}
}
