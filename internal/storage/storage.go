package storage

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/s-min-sys/teamsplit/internal/kvstore"
	"github.com/s-min-sys/teamsplit/internal/model"
	"github.com/sgostarter/i/l"
	"golang.org/x/exp/slices"
)

type Storage interface {
	ListGroups() (groups []string, err error)
	CreateGroup(name string) error
	RemoveGroup(name string) error

	AddPlayer(player model.Player, group string) error
	GetPlayersByGroup(group string) (players []model.Player, err error)
	GetPlayersByGroupAndTeam(group, team string) (players []model.Player, err error)
	RemovePlayer(name, group string) error

	GetAllGroupPlayers() (groups []model.GroupPlayers, err error)
}

func NewStorage(kv kvstore.Storage, logger l.Wrapper) Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &storageImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "storageImpl")),
		kv:     kv,
	}
}

type storageImpl struct {
	logger l.Wrapper
	kv     kvstore.Storage

	// guards every read-modify-write sequence
	lock sync.Mutex
}

func (impl *storageImpl) readJSON(key string, v interface{}) (exists bool, err error) {
	d, exists, err := impl.kv.Get(key)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("read failed")

		return false, &StorageError{Op: "read", Key: key, Err: err}
	}

	if !exists {
		return
	}

	err = json.Unmarshal([]byte(d), v)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("unmarshal failed")

		return false, &StorageError{Op: "parse", Key: key, Err: err}
	}

	return
}

func (impl *storageImpl) writeJSON(key string, v interface{}) error {
	d, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "marshal", Key: key, Err: err}
	}

	err = impl.kv.Set(key, string(d))
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("write failed")

		return &StorageError{Op: "write", Key: key, Err: err}
	}

	return nil
}

func (impl *storageImpl) remove(key string) error {
	err := impl.kv.Remove(key)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("remove failed")

		return &StorageError{Op: "remove", Key: key, Err: err}
	}

	return nil
}

//
// groups
//

func (impl *storageImpl) ListGroups() (groups []string, err error) {
	_, err = impl.readJSON(GroupCollection, &groups)
	if err != nil {
		return nil, err
	}

	if groups == nil {
		groups = []string{}
	}

	return
}

func (impl *storageImpl) CreateGroup(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrGroupNameEmpty
	}

	impl.lock.Lock()
	defer impl.lock.Unlock()

	groups, err := impl.ListGroups()
	if err != nil {
		return err
	}

	if slices.Contains(groups, name) {
		return ErrGroupAlreadyExists
	}

	return impl.writeJSON(GroupCollection, append(groups, name))
}

// RemoveGroup drops name from the group list and then its player list. The two
// writes are independent: a failure of the second leaves the first applied.
func (impl *storageImpl) RemoveGroup(name string) error {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	groups, err := impl.ListGroups()
	if err != nil {
		return err
	}

	groups = slices.DeleteFunc(groups, func(group string) bool {
		return group == name
	})

	err = impl.writeJSON(GroupCollection, groups)
	if err != nil {
		return err
	}

	return impl.remove(key4GroupPlayers(name))
}

//
// players
//

func (impl *storageImpl) GetPlayersByGroup(group string) (players []model.Player, err error) {
	_, err = impl.readJSON(key4GroupPlayers(group), &players)
	if err != nil {
		return nil, err
	}

	if players == nil {
		players = []model.Player{}
	}

	return
}

func (impl *storageImpl) AddPlayer(player model.Player, group string) error {
	if strings.TrimSpace(player.Name) == "" {
		return ErrPlayerNameEmpty
	}

	if !model.ValidTeam(player.Team) {
		return ErrPlayerInvalidTeam
	}

	impl.lock.Lock()
	defer impl.lock.Unlock()

	players, err := impl.GetPlayersByGroup(group)
	if err != nil {
		return err
	}

	if slices.ContainsFunc(players, func(p model.Player) bool {
		return p.Name == player.Name
	}) {
		return ErrPlayerAlreadyExists
	}

	return impl.writeJSON(key4GroupPlayers(group), append(players, player))
}

func (impl *storageImpl) GetPlayersByGroupAndTeam(group, team string) (players []model.Player, err error) {
	all, err := impl.GetPlayersByGroup(group)
	if err != nil {
		return
	}

	players = make([]model.Player, 0, len(all))

	for _, player := range all {
		if player.Team == team {
			players = append(players, player)
		}
	}

	return
}

func (impl *storageImpl) RemovePlayer(name, group string) error {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	players, err := impl.GetPlayersByGroup(group)
	if err != nil {
		return err
	}

	players = slices.DeleteFunc(players, func(p model.Player) bool {
		return p.Name == name
	})

	return impl.writeJSON(key4GroupPlayers(group), players)
}

func (impl *storageImpl) GetAllGroupPlayers() (groups []model.GroupPlayers, err error) {
	names, err := impl.ListGroups()
	if err != nil {
		return
	}

	groups = make([]model.GroupPlayers, 0, len(names))

	for _, name := range names {
		var players []model.Player

		players, err = impl.GetPlayersByGroup(name)
		if err != nil {
			return nil, err
		}

		groups = append(groups, model.GroupPlayers{
			Name:    name,
			Players: players,
		})
	}

	return
}
