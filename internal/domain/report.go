package domain

// FileResult records the outcome of processing a single bill file.
type FileResult struct {
	File    string `json:"file"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Output  string `json:"output,omitempty"`
}

// BatchSummary provides high-level statistics of a batch run.
type BatchSummary struct {
	RunID      string `json:"run_id"`
	Directory  string `json:"directory"`
	Processed  int    `json:"processed"`
	Succeeded  int    `json:"succeeded"`
	Failed     int    `json:"failed"`
	DurationMS int64  `json:"duration_ms"`
}

// BatchReport is the top-level structure for the final batch JSON output.
type BatchReport struct {
	Summary BatchSummary `json:"summary"`
	Results []FileResult `json:"results"`
}
