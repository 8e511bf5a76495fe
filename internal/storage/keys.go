package storage

const (
	GroupCollection  = "groups"
	PlayerCollection = "players#"
)

func key4GroupPlayers(group string) string {
	return PlayerCollection + group
}
