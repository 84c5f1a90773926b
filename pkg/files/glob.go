package files

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Match is a path produced by expanding a source pattern, along with the pattern itself.
type Match struct {
	Path    string
	Pattern string
}

// HasMagic reports whether the pattern contains glob wildcard characters.
func HasMagic(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Expand resolves a glob pattern against Fs. Results keep the pattern's own prefix (relative
// patterns give relative paths) and come back in the order doublestar walks the tree, which
// is lexical per directory.
func Expand(pattern string, logger *zerolog.Logger) ([]Match, error) {
	slashed := filepath.ToSlash(pattern)
	base, rest := doublestar.SplitPattern(slashed)
	if !doublestar.ValidatePattern(rest) {
		return nil, fmt.Errorf("bad source path %s: %w", pattern, doublestar.ErrBadPattern)
	}

	absBase, err := Abs(filepath.FromSlash(base))
	if err != nil {
		return nil, fmt.Errorf("bad source path %s: %w", pattern, err)
	}
	if logger != nil {
		logger.Trace().Msgf("globbing %s under %s", rest, absBase)
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(Fs, absBase))
	found, err := doublestar.Glob(fsys, rest)
	if err != nil {
		return nil, fmt.Errorf("bad source path %s: %w", pattern, err)
	}

	matches := make([]Match, 0, len(found))
	for _, f := range found {
		matches = append(matches, Match{
			Path:    filepath.FromSlash(path.Join(base, f)),
			Pattern: pattern,
		})
	}
	return matches, nil
}
