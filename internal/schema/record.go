package schema

// Document kinds.
const (
	KindSkill    = "skill"
	KindSubagent = "subagent"
	KindHook     = "hook"
	KindCommand  = "command"
	KindMOC      = "moc"
	KindScript   = "script"
)

// Document statuses.
const (
	StatusStable       = "stable"
	StatusDraft        = "draft"
	StatusDeprecated   = "deprecated"
	StatusExperimental = "experimental"
	StatusArchived     = "archived"
)

var knownKinds = map[string]bool{
	KindSkill:    true,
	KindSubagent: true,
	KindHook:     true,
	KindCommand:  true,
	KindMOC:      true,
	KindScript:   true,
}

var knownStatuses = map[string]bool{
	StatusStable:       true,
	StatusDraft:        true,
	StatusDeprecated:   true,
	StatusExperimental: true,
	StatusArchived:     true,
}

// Record is the post-validation view of one document. Immutable once
// the validator returns it.
type Record struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Kind        string         `json:"kind"`
	Status      string         `json:"status,omitempty"`
	Category    string         `json:"category,omitempty"`
	Version     string         `json:"version,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Related     []string       `json:"related,omitempty"`
	WikiLinks   []string       `json:"wiki_links,omitempty"`
	Scripts     []string       `json:"scripts,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	FileStem    string         `json:"file_stem"`
	SourcePath  string         `json:"source_path"`
	Body        string         `json:"-"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Result is a validator verdict. The record is always populated, even
// when invalid, so front-ends can still display the document.
type Result struct {
	Record    Record   `json:"record"`
	HasHeader bool     `json:"has_header"`
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
