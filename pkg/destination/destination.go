// Package destination decides where each matched source file is written.
package destination

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adam-huganir/varsub/pkg/files"
	"github.com/adam-huganir/varsub/pkg/types"
)

// Resolver maps matched files to output paths for one configured destination.
//
// The destination's kind is looked up on every call: it may not exist when the run starts
// and be created by an earlier write.
type Resolver struct {
	Dest         string
	PatternCount int
}

// New creates a Resolver for dest with the number of configured source patterns.
func New(dest string, patternCount int) *Resolver {
	return &Resolver{Dest: dest, PatternCount: patternCount}
}

// Resolve returns the output path for matched, which was produced by pattern.
//
//   - dest is an existing file: every match is written to dest.
//   - dest is an existing directory, several patterns are configured, pattern has wildcards
//     or dest ends in a separator: dest is a directory root and matched keeps its path
//     relative to the literal prefix of pattern.
//   - otherwise dest is the literal output file.
func (r *Resolver) Resolve(pattern, matched string) (string, error) {
	info, err := files.Fs.Stat(r.Dest)
	if err != nil && !os.IsNotExist(err) {
		return "", &types.FileAccessError{Op: "stat", Path: r.Dest, Err: err}
	}
	exists := err == nil

	if exists && info.Mode().IsRegular() {
		return r.Dest, nil
	}
	if (exists && info.IsDir()) || r.PatternCount > 1 || files.HasMagic(pattern) || files.HasTrailingSeparator(r.Dest) {
		return r.underRoot(pattern, matched)
	}
	return r.Dest, nil
}

func (r *Resolver) underRoot(pattern, matched string) (string, error) {
	base, err := BasePath(pattern)
	if err != nil {
		return "", err
	}
	absBase, err := files.Abs(base)
	if err != nil {
		return "", &types.FileAccessError{Op: "resolve", Path: base, Err: err}
	}
	absMatched, err := files.Abs(matched)
	if err != nil {
		return "", &types.FileAccessError{Op: "resolve", Path: matched, Err: err}
	}
	rel, err := filepath.Rel(absBase, absMatched)
	if err != nil {
		return "", &types.FileAccessError{Op: "resolve", Path: matched, Err: err}
	}
	return filepath.Join(r.Dest, rel), nil
}

// BasePath strips trailing components from pattern until what remains has no wildcards and
// is not an existing regular file. The result is the literal directory prefix the matched
// paths are made relative to; it is "" when nothing literal is left.
func BasePath(pattern string) (string, error) {
	base := pattern
	for base != "" {
		if !files.HasMagic(base) {
			isFile, err := files.IsFile(base)
			if err != nil {
				return "", &types.FileAccessError{Op: "stat", Path: base, Err: err}
			}
			if !isFile {
				break
			}
		}
		idx := strings.LastIndexAny(base, `/\`)
		switch idx {
		case -1:
			base = ""
		case 0:
			// keep the root of an absolute pattern
			base = base[:1]
		default:
			base = base[:idx]
		}
	}
	return base, nil
}

// EnsureParent creates the parent directory of p if it is missing.
func EnsureParent(p string) error {
	dir := filepath.Dir(p)
	if err := files.EnsureDir(dir); err != nil {
		return &types.FileAccessError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}
