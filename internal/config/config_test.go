package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/commitgate/internal/gate"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// isolate points the global config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("COMMITGATE_CONFIG_HOME", dir)
	return dir
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, gate.DefaultCategories(), cfg.Categories)
	require.NotNil(t, cfg.Tests)
	assert.Equal(t, gate.DefaultTests(), *cfg.Tests)
	assert.False(t, cfg.StrictTools)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.Source)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), RepoYAMLFile, `
strict_tools: true
timeout: 45s
env_file: .env.tools
categories:
  - name: go
    suffixes: [".go"]
    checkers:
      - name: gofmt
        command: ["gofmt", "-l", "{file}"]
        marker: ".go"
      - name: vet
        command: ["go", "vet", "{file}"]
        fail_exit_codes: [1]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.StrictTools)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, ".env.tools", cfg.EnvFile)
	assert.Equal(t, path, cfg.Source)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, "go", cfg.Categories[0].Name)
	assert.Equal(t, []int{1}, cfg.Categories[0].Checkers[1].FailExitCodes)
	assert.Equal(t, gate.DefaultTests(), *cfg.Tests, "unset tests keep the default")
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), RepoTOMLFile, `
timeout = "2m"

[tests]
name = "pytest"
command = ["pytest", "-q"]
marker = "FAILED"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, gate.DefaultCategories(), cfg.Categories, "unset categories keep the defaults")
	assert.Equal(t, &gate.CheckerSpec{Name: "pytest", Command: []string{"pytest", "-q"}, Marker: "FAILED"}, cfg.Tests)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown yaml key", "a.yaml", "strict: true\n", "field strict not found"},
		{"unknown toml key", "a.toml", "strict = true\n", "unknown keys"},
		{"bad duration", "b.yaml", "timeout: soon\n", "parsing config"},
		{"negative timeout", "c.yaml", "timeout: -1s\n", "must not be negative"},
		{"checker without rule", "d.yaml", "categories:\n  - name: js\n    suffixes: [.js]\n    checkers:\n      - name: jshint\n        command: [jshint]\n", "needs a marker"},
		{"invalid tests", "e.toml", "[tests]\nname = \"unit\"\n", "tests: checker \"unit\": command is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			cfg, err := Load(path)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind_Order(t *testing.T) {
	global := isolate(t)
	root := t.TempDir()

	path, err := Find(root)
	require.NoError(t, err)
	assert.Empty(t, path)

	globalPath := writeFile(t, global, GlobalFileName, "strict_tools: true\n")
	path, err = Find(root)
	require.NoError(t, err)
	assert.Equal(t, globalPath, path)

	tomlPath := writeFile(t, root, RepoTOMLFile, "")
	path, err = Find(root)
	require.NoError(t, err)
	assert.Equal(t, tomlPath, path)

	yamlPath := writeFile(t, root, RepoYAMLFile, "")
	path, err = Find(root)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, path)
}

func TestResolve_ExplicitWins(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeFile(t, root, RepoYAMLFile, "strict_tools: true\n")
	explicit := writeFile(t, t.TempDir(), "other.yaml", "timeout: 1s\n")

	cfg, err := Resolve(root, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, cfg.Source)
	assert.False(t, cfg.StrictTools)

	cfg, err = Resolve(root, "")
	require.NoError(t, err)
	assert.True(t, cfg.StrictTools)
}

func TestEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env.tools", "PHPCS_STANDARD=PSR12\n")

	env, err := (&Config{}).Env(root)
	require.NoError(t, err)
	assert.Nil(t, env)

	env, err = (&Config{EnvFile: ".env.tools"}).Env(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"PHPCS_STANDARD=PSR12"}, env)

	_, err = (&Config{EnvFile: "missing.env"}).Env(root)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type stubGit struct{ files []string }

func (stubGit) HasCommit(context.Context, string) bool { return true }
func (s stubGit) StagedFiles(context.Context, string) ([]string, error) {
	return s.files, nil
}

type envRecorder struct{ env [][]string }

func (e *envRecorder) Execute(_ context.Context, _ []string, env []string) (gate.Execution, error) {
	e.env = append(e.env, env)
	return gate.Execution{}, nil
}

func TestRunner_PassesEnvToEveryChecker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".env", "A=1\n")
	cfg := Default()
	cfg.EnvFile = ".env"

	executor := &envRecorder{}
	runner, err := cfg.Runner(root, stubGit{files: []string{"a.js"}}, executor)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Passed())
	assert.Equal(t, [][]string{{"A=1"}, {"A=1"}}, executor.env, "jshint and the test step")
}
