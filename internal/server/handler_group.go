package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/s-min-sys/teamsplit/internal/model"
	"github.com/s-min-sys/teamsplit/internal/storage"
)

func (s *Server) handleTeams(c *gin.Context) {
	respWrapper := &ResponseWrapper{
		Resp: TeamsResponse{
			Teams: model.Teams(),
		},
	}

	respWrapper.Apply(CodeSuccess, "")

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handleGroups(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	groups, err := s.storage.ListGroups()
	if err != nil {
		respWrapper.Apply(s.storageErrorToCode(err, CodeInvalidArgs, msgLoadGroupsFailed))
	} else {
		respWrapper.Resp = GroupsResponse{
			Groups: groups,
		}

		respWrapper.Apply(CodeSuccess, "")
	}

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handleGroupNew(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	name, code, msg := s.handleGroupNewInner(c)
	if code == CodeSuccess {
		respWrapper.Resp = GroupNewResponse{
			Name: name,
		}
	}

	respWrapper.Apply(code, msg)

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handleGroupNewInner(c *gin.Context) (name string, code Code, msg string) {
	var req GroupNewRequest

	err := c.BindJSON(&req)
	if err != nil {
		code = CodeProtocol
		msg = err.Error()

		return
	}

	if !req.Valid() {
		code = CodeMissArgs
		msg = storage.ErrGroupNameEmpty.Message

		return
	}

	err = s.storage.CreateGroup(req.Name)
	if err != nil {
		code, msg = s.storageErrorToCode(err, CodeGroupNameExists, msgCreateGroupFailed)

		return
	}

	name = req.Name
	code = CodeSuccess

	return
}

func (s *Server) handleGroupRemove(c *gin.Context) {
	respWrapper := &ResponseWrapper{}

	respWrapper.Apply(s.handleGroupRemoveInner(c))

	c.JSON(http.StatusOK, respWrapper)
}

func (s *Server) handleGroupRemoveInner(c *gin.Context) (code Code, msg string) {
	group := c.Param("group")
	if group == "" {
		code = CodeMissArgs

		return
	}

	err := s.storage.RemoveGroup(group)
	if err != nil {
		code, msg = s.storageErrorToCode(err, CodeInvalidArgs, msgRemoveGroupFailed)

		return
	}

	code = CodeSuccess

	return
}
