package tagger

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// fileFilter evaluates include/exclude glob patterns (supporting **, *
// and ?) against repo-relative file paths. Exclude patterns are
// evaluated first and take precedence over include patterns.
type fileFilter struct {
	include *ignore.GitIgnore
	exclude *ignore.GitIgnore
}

func newFileFilter(include, exclude []string) *fileFilter {
	f := &fileFilter{}
	if len(include) > 0 {
		f.include = ignore.CompileIgnoreLines(include...)
	}
	if len(exclude) > 0 {
		f.exclude = ignore.CompileIgnoreLines(exclude...)
	}
	return f
}

// admits reports whether a file may be processed. An empty include list
// admits every file not excluded.
func (f *fileFilter) admits(path string) bool {
	path = filepath.ToSlash(path)
	if f.exclude != nil && f.exclude.MatchesPath(path) {
		return false
	}
	if f.include != nil {
		return f.include.MatchesPath(path)
	}
	return true
}
