package entity

import "math/rand"

// Player is one seated participant. ID is the opaque connection identity the
// transport hands us; Mark stays empty until the room assigns symbols.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Mark string `json:"mark,omitempty"`
}

// RandomMarks - returns X and O in a uniformly random order.
func RandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
