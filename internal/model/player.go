package model

const (
	TeamA = "Time A"
	TeamB = "Time B"
)

func Teams() []string {
	return []string{TeamA, TeamB}
}

func ValidTeam(team string) bool {
	return team == TeamA || team == TeamB
}

type Player struct {
	Name string `json:"name" yaml:"name"`
	Team string `json:"team" yaml:"team"`
}
