package cli

type IndexSummary struct {
	Mode       string   `json:"mode"`
	RootPath   string   `json:"root_path"`
	OutputPath string   `json:"output_path"`
	Nodes      int      `json:"nodes"`
	Edges      int      `json:"edges"`
	Cycles     int      `json:"cycles"`
	Condensed  bool     `json:"condensed"`
	Rewritten  bool     `json:"rewritten"`
	DurationMS int64    `json:"duration_ms"`
	Warnings   []string `json:"warnings,omitempty"`
}
