package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "simple key-value",
			content:  "GRID_URL=http://grid:4444",
			expected: map[string]string{"GRID_URL": "http://grid:4444"},
		},
		{
			name:     "export prefix",
			content:  "export BROWSER=firefox",
			expected: map[string]string{"BROWSER": "firefox"},
		},
		{
			name:     "quoted values",
			content:  "A=\"with spaces\"\nB='single'",
			expected: map[string]string{"A": "with spaces", "B": "single"},
		},
		{
			name:     "comments and blank lines",
			content:  "# grid\n\nGRID_URL=http://grid\n",
			expected: map[string]string{"GRID_URL": "http://grid"},
		},
		{
			name:     "value with equals sign",
			content:  "BASE_URL=http://shop.local/?lang=en",
			expected: map[string]string{"BASE_URL": "http://shop.local/?lang=en"},
		},
		{
			name:     "lines without key skipped",
			content:  "=value\nnot a pair",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envFile := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(envFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			result, err := LoadDotEnv(envFile)
			if err != nil {
				t.Fatalf("LoadDotEnv() error = %v", err)
			}
			if len(result) != len(tt.expected) {
				t.Errorf("LoadDotEnv() returned %d keys, want %d", len(result), len(tt.expected))
			}
			for k, v := range tt.expected {
				if got := result[k]; got != v {
					t.Errorf("LoadDotEnv()[%q] = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestLoadDotEnvFileNotFound(t *testing.T) {
	if _, err := LoadDotEnv("/nonexistent/path/.env"); err == nil {
		t.Error("LoadDotEnv() expected error for non-existent file")
	}
}

func TestLoadDotEnvFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\nB=2"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte("B=local"), 0644); err != nil {
		t.Fatal(err)
	}

	vars, err := LoadDotEnvFiles(dir)
	if err != nil {
		t.Fatalf("LoadDotEnvFiles() error = %v", err)
	}
	if vars["A"] != "1" || vars["B"] != "local" {
		t.Errorf("LoadDotEnvFiles() = %v", vars)
	}

	empty, err := LoadDotEnvFiles(t.TempDir())
	if err != nil || len(empty) != 0 {
		t.Errorf("LoadDotEnvFiles() on empty dir = %v, %v", empty, err)
	}
}
