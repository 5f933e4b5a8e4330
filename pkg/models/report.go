package models

import "time"

// ReportGroup holds the results of one network within one organization,
// in camera discovery order.
type ReportGroup struct {
	Organization Organization     `json:"organization"`
	Network      Network          `json:"network"`
	Results      []SnapshotResult `json:"results"`
}

// CollectionReport is the ordered outcome of a full collection run,
// grouped by organization then network. Groups follow API enumeration
// order so repeated runs produce reproducible output.
type CollectionReport struct {
	Groups      []ReportGroup `json:"groups"`
	GeneratedAt time.Time     `json:"generatedAt"`
	// RequestedAt is the historical instant snapshots were requested
	// for; nil means "current".
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
}

// AllResults flattens the report back into discovery order.
func (r *CollectionReport) AllResults() []SnapshotResult {
	var out []SnapshotResult
	for _, g := range r.Groups {
		out = append(out, g.Results...)
	}
	return out
}

// Counts tallies outcomes across all groups.
func (r *CollectionReport) Counts() (success, unavailable, failed int) {
	for _, g := range r.Groups {
		for _, res := range g.Results {
			switch res.Status {
			case StatusSuccess:
				success++
			case StatusUnavailable:
				unavailable++
			default:
				failed++
			}
		}
	}
	return success, unavailable, failed
}
