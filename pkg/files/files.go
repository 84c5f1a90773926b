// Package files holds the filesystem handle and path helpers shared by varsub.
package files

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Fs is the global filesystem abstraction used throughout varsub.
var Fs = initFs(afero.NewOsFs)

func initFs(fsCreator func() afero.Fs) afero.Fs {
	return fsCreator()
}

// NormalizeFilepath cleans and normalizes a file path to use forward slashes.
func NormalizeFilepath(file string) string {
	return filepath.ToSlash(filepath.Clean(path.Join(file)))
}

// Exists checks if a path exists
func Exists(p string) (bool, error) {
	return afero.Exists(Fs, p)
}

// IsDir reports whether p is an existing directory. A missing path returns the stat error.
func IsDir(p string) (bool, error) {
	return afero.IsDir(Fs, p)
}

// IsFile reports whether p exists and is a regular file. A missing path is not an error.
func IsFile(p string) (bool, error) {
	info, err := Fs.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// HasTrailingSeparator reports whether p ends with a forward or back slash.
func HasTrailingSeparator(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`)
}

// ReadFile reads the whole file at p.
func ReadFile(p string) ([]byte, error) {
	return afero.ReadFile(Fs, p)
}

// WriteFile writes content to p, creating or truncating it.
func WriteFile(p string, content []byte) error {
	return afero.WriteFile(Fs, p, content, 0o644)
}

// EnsureDir creates dir and any missing parents. Calling it for an existing directory is a no-op.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return Fs.MkdirAll(dir, 0o755)
}

// Abs returns an absolute form of p without touching the filesystem.
func Abs(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(p)
}
