package models

// Organization represents a Meraki dashboard organization.
// GET /organizations returns a bare JSON array of these.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}
