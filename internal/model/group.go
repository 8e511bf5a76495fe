package model

// GroupPlayers is a group together with every player stored under it.
type GroupPlayers struct {
	Name    string   `json:"name" yaml:"name"`
	Players []Player `json:"players" yaml:"players"`
}
