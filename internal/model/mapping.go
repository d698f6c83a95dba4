package model

// UserMapping links a caller identifier (phone number) to a Last.fm username.
// The registry holds at most one mapping per identifier.
type UserMapping struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	LastChange string `json:"last_change"`
}
