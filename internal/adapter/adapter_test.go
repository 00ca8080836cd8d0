package adapter

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"testing/fstest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestNativeAdapter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "skill-a.md"), "---\nname: a\n---\nbody")
	writeFile(t, filepath.Join(root, "sub", "skill-b.md"), "plain")
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "not a document")
	writeFile(t, filepath.Join(root, ".hidden", "skill-c.md"), "hidden")

	ctx := context.Background()
	a := NewNative(root)

	if text, ok := a.ReadFile(ctx, "skill-a.md"); !ok || text != "---\nname: a\n---\nbody" {
		t.Fatalf("unexpected read result %q %t", text, ok)
	}
	if _, ok := a.ReadFile(ctx, "absent.md"); ok {
		t.Fatalf("absent file must read as the benign default")
	}
	if _, ok := a.ReadFile(ctx, "../outside.md"); ok {
		t.Fatalf("paths escaping the root must not resolve")
	}

	entries := a.ListDir(ctx, "")
	sort.Strings(entries)
	if !reflect.DeepEqual(entries, []string{".hidden", "skill-a.md", "sub"}) {
		t.Fatalf("unexpected root listing %v", entries)
	}
	if got := a.ListDir(ctx, "skill-a.md"); len(got) != 0 {
		t.Fatalf("listing a file must return the benign default, got %v", got)
	}

	if !a.Exists(ctx, "sub/notes.txt") || a.Exists(ctx, "nope") {
		t.Fatalf("unexpected exists verdicts")
	}

	if a.IsRepo(ctx) {
		t.Fatalf("no repo marker yet")
	}
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if !a.IsRepo(ctx) {
		t.Fatalf("expected repo marker to be detected")
	}

	if a.HasTrackingMarker(ctx) {
		t.Fatalf("no tracking marker yet")
	}
	writeFile(t, filepath.Join(root, ".skillgraph", ".autocommit"), "")
	if !a.HasTrackingMarker(ctx) {
		t.Fatalf("expected tracking marker to be detected")
	}

	// Hidden directories do not contribute documents.
	if count := a.DocumentCount(ctx); count != 2 {
		t.Fatalf("expected 2 documents, got %d", count)
	}
}

func TestSandboxAdapter(t *testing.T) {
	fsys := fstest.MapFS{
		"skill-a.md":               {Data: []byte("a")},
		"nested/skill-b.md":        {Data: []byte("b")},
		".git/HEAD":                {Data: []byte("ref")},
		".skillgraph/.autocommit":  {Data: []byte("")},
		".skillgraph/graph.json":   {Data: []byte("{}")},
		"nested/.hidden/ignore.md": {Data: []byte("hidden")},
	}
	ctx := context.Background()
	a := NewSandbox(fsys)

	if text, ok := a.ReadFile(ctx, "nested/skill-b.md"); !ok || text != "b" {
		t.Fatalf("unexpected read result %q %t", text, ok)
	}
	entries := a.ListDir(ctx, "")
	sort.Strings(entries)
	if !reflect.DeepEqual(entries, []string{".git", ".skillgraph", "nested", "skill-a.md"}) {
		t.Fatalf("unexpected listing %v", entries)
	}
	if !a.Exists(ctx, "nested") || a.Exists(ctx, "missing") {
		t.Fatalf("unexpected exists verdicts")
	}
	if !a.IsRepo(ctx) {
		t.Fatalf("expected repo marker")
	}
	if !a.HasTrackingMarker(ctx) {
		t.Fatalf("expected tracking marker")
	}
	if count := a.DocumentCount(ctx); count != 2 {
		t.Fatalf("expected 2 documents, got %d", count)
	}
}

func TestStubDefaults(t *testing.T) {
	ctx := context.Background()
	a := Stub{}
	if _, ok := a.ReadFile(ctx, "x"); ok {
		t.Fatalf("stub must fail reads")
	}
	if len(a.ListDir(ctx, "")) != 0 || a.Exists(ctx, "x") || a.IsRepo(ctx) || a.HasTrackingMarker(ctx) || a.DocumentCount(ctx) != 0 {
		t.Fatalf("stub must return all benign defaults")
	}
}

func TestValidateReportsMissingOperations(t *testing.T) {
	if missing := Validate(nil); len(missing) != 6 {
		t.Fatalf("nil adapter must be missing all operations, got %v", missing)
	}
	if missing := Validate(Stub{}); len(missing) != 0 {
		t.Fatalf("full implementations have no gaps, got %v", missing)
	}

	partial := Funcs{
		ReadFileFunc: func(ctx context.Context, path string) (string, bool) { return "", false },
		IsRepoFunc:   func(ctx context.Context) bool { return true },
	}
	missing := Validate(partial)
	want := []string{"list_dir", "exists", "has_tracking_marker", "document_count"}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("unexpected missing set %v", missing)
	}

	// The partial record still behaves, falling back per operation.
	ctx := context.Background()
	if !partial.IsRepo(ctx) {
		t.Fatalf("present operation must be used")
	}
	if partial.DocumentCount(ctx) != 0 || partial.Exists(ctx, "x") {
		t.Fatalf("missing operations must fall back to benign defaults")
	}
}

type countingAdapter struct {
	Stub
	reads map[string]int
	lists map[string]int
}

func (c *countingAdapter) ReadFile(ctx context.Context, path string) (string, bool) {
	c.reads[path]++
	return "content of " + path, true
}

func (c *countingAdapter) ListDir(ctx context.Context, path string) []string {
	c.lists[path]++
	return []string{"one.md", "two.md"}
}

func TestMemoCachesRepeatedReads(t *testing.T) {
	ctx := context.Background()
	inner := &countingAdapter{reads: map[string]int{}, lists: map[string]int{}}
	memo := NewMemo(inner, 16)

	for i := 0; i < 3; i++ {
		if text, ok := memo.ReadFile(ctx, "a.md"); !ok || text != "content of a.md" {
			t.Fatalf("unexpected memoized read %q %t", text, ok)
		}
		if entries := memo.ListDir(ctx, "dir"); len(entries) != 2 {
			t.Fatalf("unexpected memoized listing %v", entries)
		}
	}
	if inner.reads["a.md"] != 1 {
		t.Fatalf("expected one underlying read, got %d", inner.reads["a.md"])
	}
	if inner.lists["dir"] != 1 {
		t.Fatalf("expected one underlying listing, got %d", inner.lists["dir"])
	}
}

func TestMemoForKeyedByInstance(t *testing.T) {
	first := &countingAdapter{reads: map[string]int{}, lists: map[string]int{}}
	second := &countingAdapter{reads: map[string]int{}, lists: map[string]int{}}

	if MemoFor(first) != MemoFor(first) {
		t.Fatalf("same instance must share one memo")
	}
	if MemoFor(first) == MemoFor(second) {
		t.Fatalf("distinct instances must not share caches")
	}
}
