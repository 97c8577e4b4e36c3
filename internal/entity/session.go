package entity

// Session is a single-player game against the computer. It has no room; the
// whole state is serialized and stored per player identity.
type Session struct {
	PlayerID   string `json:"player_id"`
	Difficulty string `json:"difficulty"`
	Game       *Game  `json:"game"`
}
