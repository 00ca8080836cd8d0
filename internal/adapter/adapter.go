package adapter

import "context"

// Adapter is the engine's only I/O boundary: six operations over a
// rooted tree, each failing to a benign default instead of propagating
// errors. "Document absent" and "document unreadable" are deliberately
// indistinguishable.
type Adapter interface {
	// ReadFile returns the text at a root-relative path. ok is false
	// when the file is absent or unreadable.
	ReadFile(ctx context.Context, path string) (text string, ok bool)
	// ListDir returns the entry names of a directory ("" = root),
	// without recursing. Dotfile filtering is the caller's job.
	ListDir(ctx context.Context, path string) []string
	// Exists reports whether a path is present.
	Exists(ctx context.Context, path string) bool
	// IsRepo reports whether the root carries a version-control marker.
	IsRepo(ctx context.Context) bool
	// HasTrackingMarker reports whether the root carries the
	// auto-tracking marker the health report looks for.
	HasTrackingMarker(ctx context.Context) bool
	// DocumentCount returns the number of documents under the root.
	DocumentCount(ctx context.Context) int
}

// Operation names, as reported by Validate.
var operationNames = []string{
	"read_file",
	"list_dir",
	"exists",
	"is_repo",
	"has_tracking_marker",
	"document_count",
}

// Funcs is an adapter assembled from plain function fields. A nil
// field behaves as the benign default for that operation, so hosts can
// hand over partial capability records; Validate reports the gaps.
type Funcs struct {
	ReadFileFunc          func(ctx context.Context, path string) (string, bool)
	ListDirFunc           func(ctx context.Context, path string) []string
	ExistsFunc            func(ctx context.Context, path string) bool
	IsRepoFunc            func(ctx context.Context) bool
	HasTrackingMarkerFunc func(ctx context.Context) bool
	DocumentCountFunc     func(ctx context.Context) int
}

func (f Funcs) ReadFile(ctx context.Context, path string) (string, bool) {
	if f.ReadFileFunc == nil {
		return "", false
	}
	return f.ReadFileFunc(ctx, path)
}

func (f Funcs) ListDir(ctx context.Context, path string) []string {
	if f.ListDirFunc == nil {
		return nil
	}
	return f.ListDirFunc(ctx, path)
}

func (f Funcs) Exists(ctx context.Context, path string) bool {
	return f.ExistsFunc != nil && f.ExistsFunc(ctx, path)
}

func (f Funcs) IsRepo(ctx context.Context) bool {
	return f.IsRepoFunc != nil && f.IsRepoFunc(ctx)
}

func (f Funcs) HasTrackingMarker(ctx context.Context) bool {
	return f.HasTrackingMarkerFunc != nil && f.HasTrackingMarkerFunc(ctx)
}

func (f Funcs) DocumentCount(ctx context.Context) int {
	if f.DocumentCountFunc == nil {
		return 0
	}
	return f.DocumentCountFunc(ctx)
}

func (f Funcs) missing() []string {
	present := []bool{
		f.ReadFileFunc != nil,
		f.ListDirFunc != nil,
		f.ExistsFunc != nil,
		f.IsRepoFunc != nil,
		f.HasTrackingMarkerFunc != nil,
		f.DocumentCountFunc != nil,
	}
	var out []string
	for i, ok := range present {
		if !ok {
			out = append(out, operationNames[i])
		}
	}
	return out
}

// Validate reports which operations a candidate adapter is missing so
// hosts can fail cleanly instead of crashing mid-pipeline. A nil
// adapter is missing everything; a Funcs record is missing its nil
// fields; any other implementation satisfies the full contract by
// construction.
func Validate(a Adapter) []string {
	if a == nil {
		return append([]string(nil), operationNames...)
	}
	if funcs, ok := a.(Funcs); ok {
		return funcs.missing()
	}
	if funcs, ok := a.(*Funcs); ok {
		return funcs.missing()
	}
	return nil
}

// Stub returns all benign defaults. Tests use it for the empty
// collection.
type Stub struct{}

func (Stub) ReadFile(context.Context, string) (string, bool) { return "", false }
func (Stub) ListDir(context.Context, string) []string        { return nil }
func (Stub) Exists(context.Context, string) bool             { return false }
func (Stub) IsRepo(context.Context) bool                     { return false }
func (Stub) HasTrackingMarker(context.Context) bool          { return false }
func (Stub) DocumentCount(context.Context) int               { return 0 }
