package adapter

import (
	"context"
	"io/fs"
	"strings"
)

// Sandbox is the capability-scoped adapter: it sees only the subtree
// the host granted as an fs.FS handle and has no way to reach outside
// it. Browser-style directory-handle grants map onto this directly.
type Sandbox struct {
	fsys fs.FS
}

func NewSandbox(fsys fs.FS) *Sandbox {
	return &Sandbox{fsys: fsys}
}

func fsPath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "."
	}
	return path
}

func (s *Sandbox) ReadFile(ctx context.Context, path string) (string, bool) {
	data, err := fs.ReadFile(s.fsys, fsPath(path))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *Sandbox) ListDir(ctx context.Context, path string) []string {
	entries, err := fs.ReadDir(s.fsys, fsPath(path))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func (s *Sandbox) Exists(ctx context.Context, path string) bool {
	_, err := fs.Stat(s.fsys, fsPath(path))
	return err == nil
}

func (s *Sandbox) IsRepo(ctx context.Context) bool {
	info, err := fs.Stat(s.fsys, RepoMarker)
	return err == nil && info.IsDir()
}

func (s *Sandbox) HasTrackingMarker(ctx context.Context) bool {
	_, err := fs.Stat(s.fsys, TrackingMarker)
	return err == nil
}

func (s *Sandbox) DocumentCount(ctx context.Context) int {
	count := 0
	_ = fs.WalkDir(s.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		name := entry.Name()
		if path != "." && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.IsDir() && IsDocument(name) {
			count++
		}
		return nil
	})
	return count
}
