// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, SemanticScholarAPIKey, "  sk_xyz789  \n")
				return dir
			},
			want: Secrets{SemanticScholarAPIKey: "sk_xyz789"},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, SemanticScholarAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Secrets{SemanticScholarAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, SemanticScholarAPIKey, "sk_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{SemanticScholarAPIKey: "sk_real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain-file", "x")

	_, err := Load(filepath.Join(dir, "plain-file"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secrets directory")
}

func TestLoadUnreadableFileIsLogged(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}
	dir := t.TempDir()
	writeFile(t, dir, SemanticScholarAPIKey, "sk")
	require.NoError(t, os.Chmod(filepath.Join(dir, SemanticScholarAPIKey), 0o000))

	var buf bytes.Buffer
	got, err := Load(dir, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "could not read secret")
}

func TestFallback(t *testing.T) {
	s := Secrets{SemanticScholarAPIKey: "from-file"}

	assert.Equal(t, "from-config", s.Fallback(SemanticScholarAPIKey, "from-config"))
	assert.Equal(t, "from-file", s.Fallback(SemanticScholarAPIKey, ""))
	assert.Equal(t, "", Secrets{}.Fallback(SemanticScholarAPIKey, ""))
}

func TestKeys(t *testing.T) {
	s := Secrets{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
