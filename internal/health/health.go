package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/morozRed/skillgraph/internal/adapter"
	"github.com/morozRed/skillgraph/internal/resolve"
	"github.com/morozRed/skillgraph/internal/scan"
	"github.com/morozRed/skillgraph/internal/schema"
)

// ReportVersion is the semantic version of the report schema.
const ReportVersion = "1.0.0"

// Rule statuses, ordered pass < warn < fail.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Rule ids, in report order.
const (
	RuleRepo          = "repo"
	RuleTracking      = "tracking"
	RuleDocumentCount = "document-count"
	RuleReferences    = "references"
	RuleStructure     = "structure"
	RuleHelpers       = "helpers"
)

// RuleResult is one rule's verdict.
type RuleResult struct {
	RuleID  string `json:"rule_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// BrokenReference is one unresolved wiki link, reported by the
// references rule.
type BrokenReference struct {
	File   string `json:"file"`
	Target string `json:"target"`
}

// HelperCounts tallies documents with and without a metadata header.
type HelperCounts struct {
	WithHeader    int `json:"with_header"`
	WithoutHeader int `json:"without_header"`
}

// Report aggregates the six rule verdicts.
type Report struct {
	ReportID   string       `json:"report_id"`
	Version    string       `json:"version"`
	Overall    string       `json:"overall"`
	Results    []RuleResult `json:"results"`
	CheckedAt  string       `json:"checked_at"`
	DurationMS int64        `json:"duration_ms"`
}

// Run executes the six health rules over an adapter. The first three
// are adapter-only and run concurrently; the last three share one scan
// of the collection. No rule ever throws: I/O failures surface as the
// adapter's benign defaults, and cancellation yields a partial but
// well-formed report.
func Run(ctx context.Context, a adapter.Adapter) *Report {
	start := time.Now()

	var repoResult, trackingResult, countResult RuleResult
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		repoResult = checkRepo(groupCtx, a)
		return nil
	})
	group.Go(func() error {
		trackingResult = checkTracking(groupCtx, a)
		return nil
	})
	group.Go(func() error {
		countResult = checkDocumentCount(groupCtx, a)
		return nil
	})
	_ = group.Wait()

	docs := scan.Scan(ctx, a)
	validated := validateAll(docs)
	results := []RuleResult{
		repoResult,
		trackingResult,
		countResult,
		checkReferences(validated),
		checkStructure(validated),
		checkHelpers(docs),
	}

	duration := time.Since(start).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	return &Report{
		ReportID:   uuid.NewString(),
		Version:    ReportVersion,
		Overall:    worst(results),
		Results:    results,
		CheckedAt:  start.UTC().Format(time.RFC3339),
		DurationMS: duration,
	}
}

// ValidateVersion reports schema-version mismatches as warnings, never
// errors.
func ValidateVersion(report *Report) []string {
	if report == nil || report.Version == ReportVersion {
		return nil
	}
	return []string{fmt.Sprintf("report schema version %q differs from expected %q", report.Version, ReportVersion)}
}

func checkRepo(ctx context.Context, a adapter.Adapter) RuleResult {
	if a.IsRepo(ctx) {
		return RuleResult{RuleID: RuleRepo, Status: StatusPass, Message: "repository marker present"}
	}
	return RuleResult{RuleID: RuleRepo, Status: StatusFail, Message: "repository marker absent"}
}

func checkTracking(ctx context.Context, a adapter.Adapter) RuleResult {
	if a.HasTrackingMarker(ctx) {
		return RuleResult{RuleID: RuleTracking, Status: StatusPass, Message: "tracking marker present"}
	}
	return RuleResult{RuleID: RuleTracking, Status: StatusWarn, Message: "tracking marker absent"}
}

func checkDocumentCount(ctx context.Context, a adapter.Adapter) RuleResult {
	count := a.DocumentCount(ctx)
	if count >= 1 {
		return RuleResult{
			RuleID:  RuleDocumentCount,
			Status:  StatusPass,
			Message: fmt.Sprintf("%d documents found", count),
		}
	}
	return RuleResult{RuleID: RuleDocumentCount, Status: StatusFail, Message: "no documents found"}
}

func checkReferences(results []schema.Result) RuleResult {
	records := make([]schema.Record, 0, len(results))
	for _, result := range results {
		records = append(records, result.Record)
	}
	resolver := resolve.New(records)

	var broken []BrokenReference
	linkCount := 0
	for _, result := range results {
		for _, link := range schema.ExtractWikiLinks(result.Record.Body) {
			linkCount++
			if !resolver.Resolve(link.Target).Found {
				broken = append(broken, BrokenReference{
					File:   result.Record.SourcePath,
					Target: strings.TrimSpace(link.Target),
				})
			}
		}
	}

	if linkCount == 0 {
		return RuleResult{RuleID: RuleReferences, Status: StatusPass, Message: "no wiki links to check"}
	}
	if len(broken) == 0 {
		return RuleResult{
			RuleID:  RuleReferences,
			Status:  StatusPass,
			Message: fmt.Sprintf("all %d wiki links resolve", linkCount),
		}
	}
	return RuleResult{
		RuleID:  RuleReferences,
		Status:  StatusWarn,
		Message: fmt.Sprintf("%d of %d wiki links are broken", len(broken), linkCount),
		Detail:  broken,
	}
}

func checkStructure(results []schema.Result) RuleResult {
	var missing []string
	withHeader := 0
	for _, result := range results {
		withHeader++
		if !schema.HasStructureHeading(result.Record.Body) {
			missing = append(missing, result.Record.SourcePath)
		}
	}

	if withHeader == 0 {
		return RuleResult{RuleID: RuleStructure, Status: StatusPass, Message: "nothing to check"}
	}
	if len(missing) == 0 {
		return RuleResult{
			RuleID:  RuleStructure,
			Status:  StatusPass,
			Message: fmt.Sprintf("all %d documents have a structure heading", withHeader),
		}
	}
	return RuleResult{
		RuleID:  RuleStructure,
		Status:  StatusWarn,
		Message: fmt.Sprintf("%d documents lack a structure heading", len(missing)),
		Detail:  missing,
	}
}

func checkHelpers(docs []scan.Document) RuleResult {
	counts := HelperCounts{}
	for _, doc := range docs {
		if _, _, ok := schema.ExtractHeader(doc.Text); ok {
			counts.WithHeader++
		} else {
			counts.WithoutHeader++
		}
	}
	return RuleResult{
		RuleID:  RuleHelpers,
		Status:  StatusPass,
		Message: fmt.Sprintf("%d documents with header, %d helper documents without", counts.WithHeader, counts.WithoutHeader),
		Detail:  counts,
	}
}

// validateAll runs the schema validator over the header-bearing subset
// of a scan.
func validateAll(docs []scan.Document) []schema.Result {
	out := make([]schema.Result, 0, len(docs))
	for _, doc := range docs {
		result := schema.Validate(doc.Path, doc.Text)
		if result.HasHeader {
			out = append(out, result)
		}
	}
	return out
}

func worst(results []RuleResult) string {
	rank := map[string]int{StatusPass: 0, StatusWarn: 1, StatusFail: 2}
	overall := StatusPass
	for _, result := range results {
		if rank[result.Status] > rank[overall] {
			overall = result.Status
		}
	}
	return overall
}
