package models

import "time"

// ReconcileStatus is the terminal state of a cleaning session.
type ReconcileStatus string

const (
	// StatusConverged means a scan reported zero locations.
	StatusConverged ReconcileStatus = "converged"
	// StatusExhausted means the round budget ran out with residual locations.
	StatusExhausted ReconcileStatus = "exhausted"
	// StatusAborted means the operator cancelled mid-session.
	StatusAborted ReconcileStatus = "aborted"
)

// ReconcileReport is the operator-facing result of one cleaning session.
// It is always produced, even when every individual item failed.
type ReconcileReport struct {
	EditorKey string          `json:"editor_key"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Duration  time.Duration   `json:"duration"`
	Status    ReconcileStatus `json:"status"`

	Rounds []*CleanRound `json:"rounds"`

	TotalFilesRemoved int `json:"total_files_removed"`
	TotalRowsRemoved  int `json:"total_rows_removed"`

	FullyClean bool             `json:"fully_clean"`
	Residual   map[Category]int `json:"residual,omitempty"`
}

// AddRound appends a completed round and folds its totals in.
func (r *ReconcileReport) AddRound(round *CleanRound) {
	r.Rounds = append(r.Rounds, round)
	r.TotalFilesRemoved += round.FilesRemoved()
	r.TotalRowsRemoved += round.RowsRemoved()
}

// Finalize derives the terminal fields from the last round's verification.
func (r *ReconcileReport) Finalize(status ReconcileStatus) {
	r.Status = status
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.FullyClean = status == StatusConverged

	last := r.lastScan()
	if last == nil || last.TotalCount() == 0 {
		return
	}
	r.Residual = make(map[Category]int)
	for cat, n := range last.CategoryCounts() {
		if n > 0 {
			r.Residual[cat] = n
		}
	}
}

// lastScan returns the most recent filesystem snapshot taken in the session.
func (r *ReconcileReport) lastScan() *ScanResult {
	if len(r.Rounds) == 0 {
		return nil
	}
	last := r.Rounds[len(r.Rounds)-1]
	if last.Verify != nil {
		return last.Verify
	}
	return last.Scan
}
