package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/s-min-sys/teamsplit/internal/model"
	"github.com/s-min-sys/teamsplit/internal/storage"
)

func (s *Server) handlePlayers(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	resp, code, msg := s.handlePlayersInner(c)
	if code == CodeSuccess {
		respWrapper.Resp = resp
	}

	respWrapper.Apply(code, msg)

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handlePlayersInner(c *gin.Context) (resp *PlayersResponse, code Code, msg string) {
	group := c.Param("group")

	team := c.DefaultQuery("team", model.TeamA)
	if !model.ValidTeam(team) {
		code = CodeInvalidArgs
		msg = storage.ErrPlayerInvalidTeam.Message

		return
	}

	players, err := s.storage.GetPlayersByGroupAndTeam(group, team)
	if err != nil {
		code, msg = s.storageErrorToCode(err, CodeInvalidArgs, msgLoadPlayersFailed)

		return
	}

	resp = &PlayersResponse{
		Group:   group,
		Team:    team,
		Count:   len(players),
		Players: players,
	}
	code = CodeSuccess

	return
}

func (s *Server) handlePlayerNew(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	respWrapper.Apply(s.handlePlayerNewInner(c))

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handlePlayerNewInner(c *gin.Context) (code Code, msg string) {
	group := c.Param("group")

	var req PlayerNewRequest

	err := c.BindJSON(&req)
	if err != nil {
		code = CodeProtocol
		msg = err.Error()

		return
	}

	if !req.Valid() {
		code = CodeMissArgs
		msg = storage.ErrPlayerNameEmpty.Message

		return
	}

	err = s.storage.AddPlayer(req.Player(), group)
	if err != nil {
		code, msg = s.storageErrorToCode(err, CodePlayerNameExists, msgAddPlayerFailed)

		return
	}

	code = CodeSuccess

	return
}

func (s *Server) handlePlayerRemove(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	respWrapper.Apply(s.handlePlayerRemoveInner(c))

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handlePlayerRemoveInner(c *gin.Context) (code Code, msg string) {
	group := c.Param("group")

	name := c.Param("name")
	if name == "" {
		code = CodeMissArgs

		return
	}

	err := s.storage.RemovePlayer(name, group)
	if err != nil {
		code, msg = s.storageErrorToCode(err, CodeInvalidArgs, msgRemovePlayerFailed)

		return
	}

	code = CodeSuccess

	return
}
