package domain

import (
	"math"
	"time"
)

// Progress is the server-owned reading progress for one user and one
// material. The client reads it and requests mutations; it never computes
// the authoritative percentage for display.
type Progress struct {
	// MaterialID identifies the material this record tracks.
	MaterialID string `json:"material_id"`

	// UserID identifies the owning user.
	UserID string `json:"user_id"`

	// Percentage is the server-computed completion in [0,100].
	Percentage float64 `json:"progress_percentage"`

	// CompletedPages is the set of page numbers marked done.
	// Order is irrelevant.
	CompletedPages []int `json:"completed_pages"`

	// Completed is the terminal state set by an explicit
	// mark-complete action, never inferred from Percentage.
	Completed bool `json:"completed"`

	// LastUpdated is when the record last changed.
	LastUpdated time.Time `json:"last_updated"`
}

// PageDone reports whether the given page is in the completed set.
func (p *Progress) PageDone(page int) bool {
	if p == nil {
		return false
	}
	for _, n := range p.CompletedPages {
		if n == page {
			return true
		}
	}
	return false
}

// ProgressUpdate is the body of an implicit progress write. The client
// proposes a percentage derived from the visible page; the server stays
// authoritative for what is stored.
type ProgressUpdate struct {
	Percentage     float64 `json:"progress_percentage"`
	CompletedPages []int   `json:"completed_pages"`
}

// ProposedPercentage computes the percentage the client proposes on a
// page turn: round(page/total*100). A rounded 0 is a valid proposal for
// early pages of long documents. Returns 0 for an unknown total too, so
// callers gate on TotalPages before writing.
func ProposedPercentage(page, totalPages int) float64 {
	if totalPages <= 0 || page < 1 {
		return 0
	}
	return math.Round(float64(page) / float64(totalPages) * 100)
}
