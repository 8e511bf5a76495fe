package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/s-min-sys/teamsplit/internal/config"
	"github.com/s-min-sys/teamsplit/internal/kvstore"
	"github.com/s-min-sys/teamsplit/internal/model"
	"github.com/s-min-sys/teamsplit/internal/storage"
	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type utBrokenKV struct{}

func (utBrokenKV) Get(string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (utBrokenKV) Set(string, string) error {
	return errors.New("disk gone")
}

func (utBrokenKV) Remove(string) error {
	return errors.New("disk gone")
}

type utResponse struct {
	Code    Code            `json:"code"`
	Message string          `json:"message"`
	Resp    json.RawMessage `json:"resp"`
}

func newUTServer(kv kvstore.Storage) *Server {
	gin.SetMode(gin.TestMode)

	logger := l.NewNopLoggerWrapper()

	return &Server{
		cfg:     &config.Config{Listen: ":0"},
		logger:  logger,
		kv:      kv,
		storage: storage.NewStorage(kv, logger),
	}
}

func utDo(t *testing.T, r http.Handler, method, path string, body interface{}) (resp utResponse) {
	var reader *bytes.Reader

	if body != nil {
		d, err := json.Marshal(body)
		require.Nil(t, err)

		reader = bytes.NewReader(d)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.EqualValues(t, http.StatusOK, w.Code)
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return
}

func utPlayersPath(group, team string) string {
	return "/groups/" + url.PathEscape(group) + "/players?team=" + url.QueryEscape(team)
}

func TestHealthy(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthy", nil))

	assert.EqualValues(t, http.StatusNoContent, w.Code)
}

func TestTeams(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	resp := utDo(t, r, http.MethodGet, "/teams", nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var teams TeamsResponse

	require.Nil(t, json.Unmarshal(resp.Resp, &teams))
	assert.EqualValues(t, []string{"Time A", "Time B"}, teams.Teams)
}

func TestGroupFlow(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	resp := utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Friends"})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Friends"})
	assert.EqualValues(t, CodeGroupNameExists, resp.Code)
	assert.EqualValues(t, "Já existe um grupo cadastrado com esse nome.", resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: " "})
	assert.EqualValues(t, CodeMissArgs, resp.Code)
	assert.EqualValues(t, "Informe o nome da turma.", resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Work"})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodGet, "/groups", nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var groups GroupsResponse

	require.Nil(t, json.Unmarshal(resp.Resp, &groups))
	assert.EqualValues(t, []string{"Friends", "Work"}, groups.Groups)

	resp = utDo(t, r, http.MethodDelete, "/groups/Friends", nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodGet, "/groups", nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &groups))
	assert.EqualValues(t, []string{"Work"}, groups.Groups)
}

func TestPlayerFlow(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Friends"})

	resp := utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Ana", Team: model.TeamA})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Bia", Team: model.TeamB})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Ana", Team: model.TeamB})
	assert.EqualValues(t, CodePlayerNameExists, resp.Code)
	assert.EqualValues(t, "Essa pessoa já está adicionada em um time aqui.", resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: ""})
	assert.EqualValues(t, CodeMissArgs, resp.Code)
	assert.EqualValues(t, "Informe o nome da pessoa para adicionar.", resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Caio", Team: "Time C"})
	assert.EqualValues(t, CodeInvalidArgs, resp.Code)

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", model.TeamA), nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var players PlayersResponse

	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.EqualValues(t, 1, players.Count)
	assert.EqualValues(t, []model.Player{{Name: "Ana", Team: "Time A"}}, players.Players)

	resp = utDo(t, r, http.MethodGet, "/groups/Friends/players", nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.EqualValues(t, model.TeamA, players.Team)

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", "Time C"), nil)
	assert.EqualValues(t, CodeInvalidArgs, resp.Code)

	resp = utDo(t, r, http.MethodDelete, "/groups/Friends/players/Ana", nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", model.TeamA), nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.EqualValues(t, 0, players.Count)
	assert.Empty(t, players.Players)

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", model.TeamB), nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.EqualValues(t, 1, players.Count)
}

func TestRemoveGroupDropsPlayers(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Friends"})
	utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Ana", Team: model.TeamA})

	resp := utDo(t, r, http.MethodDelete, "/groups/Friends", nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var players PlayersResponse

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", model.TeamA), nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.Empty(t, players.Players)
}

func TestGroupNameWithSlash(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	group := "Futsal/Quinta"
	escaped := url.PathEscape(group)

	resp := utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: group})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodPost, "/groups/"+escaped+"/players", PlayerNewRequest{Name: "Ana/Bia", Team: model.TeamA})
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var players PlayersResponse

	resp = utDo(t, r, http.MethodGet, utPlayersPath(group, model.TeamA), nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.EqualValues(t, group, players.Group)
	assert.EqualValues(t, []model.Player{{Name: "Ana/Bia", Team: model.TeamA}}, players.Players)

	resp = utDo(t, r, http.MethodDelete, "/groups/"+escaped+"/players/"+url.PathEscape("Ana/Bia"), nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	resp = utDo(t, r, http.MethodGet, utPlayersPath(group, model.TeamA), nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &players))
	assert.Empty(t, players.Players)

	resp = utDo(t, r, http.MethodDelete, "/groups/"+escaped, nil)
	assert.EqualValues(t, CodeSuccess, resp.Code)

	var groups GroupsResponse

	resp = utDo(t, r, http.MethodGet, "/groups", nil)
	require.Nil(t, json.Unmarshal(resp.Resp, &groups))
	assert.Empty(t, groups.Groups)
}

func TestStorageErrorToCode(t *testing.T) {
	s := newUTServer(kvstore.NewMemStorage("", nil))

	code, msg := s.storageErrorToCode(storage.ErrGroupAlreadyExists, CodeGroupNameExists, msgCreateGroupFailed)
	assert.EqualValues(t, CodeGroupNameExists, code)
	assert.EqualValues(t, storage.ErrGroupAlreadyExists.Message, msg)

	code, msg = s.storageErrorToCode(storage.ErrPlayerInvalidTeam, CodePlayerNameExists, msgAddPlayerFailed)
	assert.EqualValues(t, CodeInvalidArgs, code)
	assert.EqualValues(t, storage.ErrPlayerInvalidTeam.Message, msg)

	code, msg = s.storageErrorToCode(&storage.StorageError{Op: "read", Key: "groups", Err: errors.New("disk gone")},
		CodeInvalidArgs, msgLoadGroupsFailed)
	assert.EqualValues(t, CodeInternalError, code)
	assert.EqualValues(t, msgLoadGroupsFailed, msg)
}

func TestStorageFailureMessages(t *testing.T) {
	r := newUTServer(utBrokenKV{}).router()

	resp := utDo(t, r, http.MethodGet, "/groups", nil)
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgLoadGroupsFailed, resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups", GroupNewRequest{Name: "Friends"})
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgCreateGroupFailed, resp.Message)

	resp = utDo(t, r, http.MethodDelete, "/groups/Friends", nil)
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgRemoveGroupFailed, resp.Message)

	resp = utDo(t, r, http.MethodPost, "/groups/Friends/players", PlayerNewRequest{Name: "Ana", Team: model.TeamA})
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgAddPlayerFailed, resp.Message)

	resp = utDo(t, r, http.MethodGet, utPlayersPath("Friends", model.TeamA), nil)
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgLoadPlayersFailed, resp.Message)

	resp = utDo(t, r, http.MethodDelete, "/groups/Friends/players/Ana", nil)
	assert.EqualValues(t, CodeInternalError, resp.Code)
	assert.EqualValues(t, msgRemovePlayerFailed, resp.Message)
}

func TestProtocolError(t *testing.T) {
	r := newUTServer(kvstore.NewMemStorage("", nil)).router()

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utResponse

	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, CodeProtocol, resp.Code)
}

func TestCodeToMessage(t *testing.T) {
	assert.EqualValues(t, "Sucesso", CodeToMessage(CodeSuccess, ""))
	assert.EqualValues(t, "boom", CodeToMessage(CodeInternalError, "boom"))
	assert.EqualValues(t, "Erro desconhecido 42", Code(42).String())
}
