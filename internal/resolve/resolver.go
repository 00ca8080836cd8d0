package resolve

import (
	"strings"

	"github.com/morozRed/skillgraph/internal/schema"
)

// Match tiers, in strict priority order.
const (
	MatchExact      = "exact"
	MatchNormalized = "normalized"
	MatchStem       = "filename-stem"
	MatchGhost      = "ghost"
)

// GhostPrefix marks placeholder ids for references that did not
// resolve to any known record.
const GhostPrefix = "unresolved:"

// Resolution is the verdict for one raw reference target.
type Resolution struct {
	Found       bool
	MatchedBy   string
	ID          string
	DisplayName string
}

// Resolver maps free-form reference names onto known records. It is
// constructed once per build and is pure: repeated calls with the same
// target return the same verdict.
type Resolver struct {
	exact      map[string]*schema.Record
	normalized map[string]*schema.Record
	stem       map[string]*schema.Record
}

// New indexes the given records. On key collisions the first inserted
// record wins, so resolver verdicts are stable for a fixed record
// order.
func New(records []schema.Record) *Resolver {
	r := &Resolver{
		exact:      make(map[string]*schema.Record, len(records)*2),
		normalized: make(map[string]*schema.Record, len(records)*3),
		stem:       make(map[string]*schema.Record, len(records)),
	}
	for i := range records {
		record := &records[i]
		if record.ID == "" {
			continue
		}
		r.index(r.exact, record.DisplayName, record)
		r.index(r.normalized, schema.NormalizeID(record.DisplayName), record)
		r.index(r.normalized, record.ID, record)
		for _, alias := range record.Aliases {
			r.index(r.exact, alias, record)
			r.index(r.normalized, schema.NormalizeID(alias), record)
		}
		r.index(r.stem, record.FileStem, record)
	}
	return r
}

func (r *Resolver) index(m map[string]*schema.Record, key string, record *schema.Record) {
	if key == "" {
		return
	}
	if _, taken := m[key]; taken {
		return
	}
	m[key] = record
}

// Resolve maps one raw target to a known record or a ghost
// placeholder. Match priority is exact > normalized > filename-stem.
func (r *Resolver) Resolve(target string) Resolution {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return Resolution{
			MatchedBy:   MatchGhost,
			ID:          GhostPrefix + "unknown",
			DisplayName: "unknown",
		}
	}
	if record, ok := r.exact[trimmed]; ok {
		return resolved(record, MatchExact)
	}
	slug := schema.NormalizeID(trimmed)
	if slug != "" {
		if record, ok := r.normalized[slug]; ok {
			return resolved(record, MatchNormalized)
		}
		if record, ok := r.stem[slug]; ok {
			return resolved(record, MatchStem)
		}
	}
	if slug == "" {
		slug = "unknown"
	}
	return Resolution{
		MatchedBy:   MatchGhost,
		ID:          GhostPrefix + slug,
		DisplayName: trimmed,
	}
}

func resolved(record *schema.Record, matchedBy string) Resolution {
	return Resolution{
		Found:       true,
		MatchedBy:   matchedBy,
		ID:          record.ID,
		DisplayName: record.DisplayName,
	}
}
