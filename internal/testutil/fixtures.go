package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// SiteFs creates an in-memory filesystem populated with the given files,
// keyed by rooted path ("/index.html").
func SiteFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if dir := filepath.Dir(path); dir != "/" && dir != "." {
			if err := fsys.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", dir, err)
			}
		}
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file %s: %v", path, err)
		}
	}
	return fsys
}

// AssertFileExists checks if a file exists in the filesystem
func AssertFileExists(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		t.Fatalf("Failed to check file %s: %v", path, err)
	}
	if !exists {
		t.Errorf("File %s does not exist", path)
	}
}
