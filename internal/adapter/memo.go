package adapter

import (
	"context"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize bounds each memoized operation's cache.
const DefaultMemoSize = 512

type readResult struct {
	text string
	ok   bool
}

// Memo decorates an adapter with LRU caches for the two repeated-read
// operations. Consumers that re-read the same paths within one adapter
// lifetime (the change-history browser re-reading git object bundles,
// repeated health runs over one grant) go through here; the pipeline
// itself reads each path once and does not need it.
type Memo struct {
	inner Adapter
	reads *lru.Cache[string, readResult]
	lists *lru.Cache[string, []string]
}

func NewMemo(inner Adapter, size int) *Memo {
	if inner == nil {
		inner = Stub{}
	}
	if size <= 0 {
		size = DefaultMemoSize
	}
	reads, _ := lru.New[string, readResult](size)
	lists, _ := lru.New[string, []string](size)
	return &Memo{inner: inner, reads: reads, lists: lists}
}

func (m *Memo) ReadFile(ctx context.Context, path string) (string, bool) {
	if cached, ok := m.reads.Get(path); ok {
		return cached.text, cached.ok
	}
	text, ok := m.inner.ReadFile(ctx, path)
	m.reads.Add(path, readResult{text: text, ok: ok})
	return text, ok
}

func (m *Memo) ListDir(ctx context.Context, path string) []string {
	if cached, ok := m.lists.Get(path); ok {
		return cached
	}
	entries := m.inner.ListDir(ctx, path)
	m.lists.Add(path, entries)
	return entries
}

func (m *Memo) Exists(ctx context.Context, path string) bool {
	return m.inner.Exists(ctx, path)
}

func (m *Memo) IsRepo(ctx context.Context) bool {
	return m.inner.IsRepo(ctx)
}

func (m *Memo) HasTrackingMarker(ctx context.Context) bool {
	return m.inner.HasTrackingMarker(ctx)
}

func (m *Memo) DocumentCount(ctx context.Context) int {
	return m.inner.DocumentCount(ctx)
}

var (
	memoMu       sync.Mutex
	memoRegistry = map[Adapter]*Memo{}
)

// MemoFor returns the process-wide memoized decorator for an adapter
// instance, creating it on first use. The cache is keyed by the
// adapter value itself, so two grants over the same directory stay
// independent.
func MemoFor(inner Adapter) *Memo {
	if inner == nil || !reflect.TypeOf(inner).Comparable() {
		return NewMemo(inner, DefaultMemoSize)
	}
	memoMu.Lock()
	defer memoMu.Unlock()
	if memo, ok := memoRegistry[inner]; ok {
		return memo
	}
	memo := NewMemo(inner, DefaultMemoSize)
	memoRegistry[inner] = memo
	return memo
}
