package models

// JoinResult is the backend reply to a join request. Only one of
// Competition and Team is set.
type JoinResult struct {
	Message     string `json:"message"`
	Competition ID     `json:"competition,omitempty"`
	Team        ID     `json:"team,omitempty"`
}

// Message is the plain acknowledgement returned by action endpoints.
type Message struct {
	Message string `json:"message"`
}
