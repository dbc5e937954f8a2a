package operations

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"idpflow/internal/config"
)

// newTestEnv builds an environment rooted in a temp dir with separate
// input and output directories.
func newTestEnv(t *testing.T, mutate func(*config.Config)) (*Env, *config.Config, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		DataDir:   dir,
		InputDir:  filepath.Join(dir, "in"),
		OutputDir: filepath.Join(dir, "out"),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, os.MkdirAll(cfg.Paths.InputDir, 0755))

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	env, err := NewEnv(&cfg, logger)
	require.NoError(t, err)
	return env, &cfg, logs
}

func writeInput(t *testing.T, env *Env, name, content string) string {
	t.Helper()
	path := env.Paths.GetInputPath(name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeOutputFixture(t *testing.T, env *Env, name, content string) string {
	t.Helper()
	path := env.Paths.GetOutputPath(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
