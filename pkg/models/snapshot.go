package models

// SnapshotLink is the response body of POST /devices/{serial}/camera/generateSnapshot.
// The URL becomes fetchable only once the dashboard has staged the image.
type SnapshotLink struct {
	URL    string `json:"url"`
	Expiry string `json:"expiry,omitempty"`
}

// SnapshotStatus classifies the outcome of one camera's collection attempt.
type SnapshotStatus string

const (
	StatusSuccess     SnapshotStatus = "success"
	StatusUnavailable SnapshotStatus = "unavailable"
	StatusError       SnapshotStatus = "error"
)

// SnapshotResult records the outcome for exactly one camera in a run.
type SnapshotResult struct {
	Organization Organization   `json:"organization"`
	Network      Network        `json:"network"`
	Camera       Camera         `json:"camera"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	Image        []byte         `json:"-"`
	Status       SnapshotStatus `json:"status"`
	Reason       string         `json:"reason,omitempty"`
}
