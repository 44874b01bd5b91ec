package model

// Venue is one entry of the backend's venue listing.  Capacidade is a
// pointer because older backend deployments omit it.
type Venue struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Capacidade *int   `json:"capacidade,omitempty"`
}
