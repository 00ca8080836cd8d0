package scan

import (
	"context"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/morozRed/skillgraph/internal/adapter"
)

// Document is one candidate file: its root-relative path and raw text.
type Document struct {
	Path string
	Text string
}

// Scan enumerates the root recursively and reads every document. The
// adapter has no is_dir operation; a non-document entry is probed with
// one extra ListDir call and recursed into when the listing is
// non-empty. Hidden entries (leading ".") are skipped. Output order is
// deterministic for a given adapter: paths sorted within each
// directory, depth-first. On cancellation the partial result collected
// so far is returned.
func Scan(ctx context.Context, a adapter.Adapter) []Document {
	paths := collect(ctx, a, "")

	docs := make([]*Document, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, docPath := range paths {
		i, docPath := i, docPath
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			if text, ok := a.ReadFile(groupCtx, docPath); ok {
				docs[i] = &Document{Path: docPath, Text: text}
			}
			return nil
		})
	}
	_ = group.Wait()

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			out = append(out, *doc)
		}
	}
	return out
}

func collect(ctx context.Context, a adapter.Adapter, root string) []string {
	if ctx.Err() != nil {
		return nil
	}
	return walk(ctx, a, root, a.ListDir(ctx, root))
}

func walk(ctx context.Context, a adapter.Adapter, dir string, listing []string) []string {
	entries := append([]string(nil), listing...)
	sort.Strings(entries)

	var paths []string
	for _, name := range entries {
		if strings.HasPrefix(name, ".") {
			continue
		}
		child := path.Join(dir, name)
		if adapter.IsDocument(name) {
			paths = append(paths, child)
			continue
		}
		if ctx.Err() != nil {
			break
		}
		if sub := a.ListDir(ctx, child); len(sub) > 0 {
			paths = append(paths, walk(ctx, a, child, sub)...)
		}
	}
	return paths
}
