package services_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"autocorrect/internal/repositories"
	"autocorrect/internal/services"

	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) services.ModelCatalog {
	t.Helper()
	catalog, err := services.NewModelCatalog()
	require.NoError(t, err)
	return catalog
}

func newConfigRepo(t *testing.T) repositories.ConfigRepository {
	t.Helper()
	return repositories.NewConfigRepository(filepath.Join(t.TempDir(), "gemini.json"), quietLogger())
}

func writeConfigFile(t *testing.T, repo repositories.ConfigRepository, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(repo.Path(), []byte(body), 0o600))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
