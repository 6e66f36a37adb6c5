package md2doc

import (
	"path/filepath"
	"sync"

	"github.com/alnah/go-md2doc/internal/fileutil"
)

// Staged file names inside a call's staging directory.
const (
	stagedMarkdown = "source.md"
	stagedHTML     = "source.html"
)

// staging is the per-call scratch space handed to external tools.
// The directory is created on first use, so renderers that never
// invoke a tool never touch the temporary directory.
type staging struct {
	prefix  string
	once    sync.Once
	dir     string
	cleanup func()
	err     error
}

func newStaging(id string) *staging {
	return &staging{prefix: "md2doc-" + id + "-"}
}

// ensure creates the staging directory once.
func (s *staging) ensure() error {
	s.once.Do(func() {
		s.dir, s.cleanup, s.err = fileutil.MakeStagingDir(s.prefix)
	})
	return s.err
}

// write stores content under name and returns its path.
func (s *staging) write(name, content string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	return fileutil.WriteStagingFile(s.dir, name, content)
}

// path returns where a tool should write name inside the staging directory.
func (s *staging) path(name string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	if err := fileutil.ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// close removes the directory and everything in it.
func (s *staging) close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}
