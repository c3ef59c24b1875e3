package models

// SkipReason explains why a deletion attempt did not touch the target.
type SkipReason string

const (
	SkipNotFound         SkipReason = "not_found"
	SkipDangerousPath    SkipReason = "dangerous_path"
	SkipPermissionDenied SkipReason = "permission_denied"
)

// DeletionOutcome records one attempted deletion. A failed attempt is never
// retried within the same round; a later round may try again via a fresh
// scan.
type DeletionOutcome struct {
	Path         string     `json:"path"`
	Category     Category   `json:"category"`
	Skipped      bool       `json:"skipped"`
	Reason       SkipReason `json:"reason,omitempty"`
	ItemsRemoved int        `json:"items_removed"`
	BytesRemoved int64      `json:"bytes_removed"`
	Error        string     `json:"error,omitempty"`
}

// PruneOutcome records row pruning for one embedded database.
type PruneOutcome struct {
	Path        string `json:"path"`
	RowsRemoved int    `json:"rows_removed"`
	Skipped     bool   `json:"skipped"`
	Error       string `json:"error,omitempty"`
}

// CleanRound is one scan→clean→verify cycle.
type CleanRound struct {
	Round    int               `json:"round"`
	Scan     *ScanResult       `json:"scan"`
	Outcomes []DeletionOutcome `json:"outcomes,omitempty"`
	Prunes   []PruneOutcome    `json:"prunes,omitempty"`
	Verify   *ScanResult       `json:"verify,omitempty"`
}

// FilesRemoved sums filesystem items removed in this round.
func (c *CleanRound) FilesRemoved() int {
	n := 0
	for _, o := range c.Outcomes {
		n += o.ItemsRemoved
	}
	return n
}

// RowsRemoved sums database rows removed in this round.
func (c *CleanRound) RowsRemoved() int {
	n := 0
	for _, p := range c.Prunes {
		n += p.RowsRemoved
	}
	return n
}
