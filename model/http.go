package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// TokenReport summarizes a token stream.
type TokenReport struct {
	BPM            int   `json:"bpm"`
	Timebase       int   `json:"timebase"`
	NumLines       int   `json:"num_lines"`
	NumNotes       int   `json:"num_notes"`
	NumOn          int   `json:"num_on"`
	NumOff         int   `json:"num_off"`
	TotalTicks     int64 `json:"total_ticks"`
	UnmatchedOffs  int   `json:"unmatched_offs"`
	MissingPrecise int   `json:"missing_precise"`
}
