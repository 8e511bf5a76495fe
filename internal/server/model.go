package server

import (
	"strings"

	"github.com/s-min-sys/teamsplit/internal/model"
)

const (
	msgLoadGroupsFailed   = "Não foi possível carregar as turmas."
	msgCreateGroupFailed  = "Não foi possível criar um novo grupo."
	msgRemoveGroupFailed  = "Não foi possível remover o grupo"
	msgAddPlayerFailed    = "Não foi possível adicionar."
	msgLoadPlayersFailed  = "Não foi possível carregar as pessoas do time selecionado"
	msgRemovePlayerFailed = "Não foi possível remover essa pessoa."
)

type ResponseWrapper struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Resp    interface{} `json:"resp,omitempty"`
}

func (wr *ResponseWrapper) Apply(code Code, msg string) {
	wr.Code = code
	wr.Message = CodeToMessage(code, msg)
}

type TeamsResponse struct {
	Teams []string `json:"teams"`
}

type GroupsResponse struct {
	Groups []string `json:"groups"`
}

type GroupNewRequest struct {
	Name string `json:"name"`
}

func (req *GroupNewRequest) Valid() bool {
	return strings.TrimSpace(req.Name) != ""
}

type GroupNewResponse struct {
	Name string `json:"name"`
}

type PlayerNewRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

func (req *PlayerNewRequest) Valid() bool {
	return strings.TrimSpace(req.Name) != ""
}

func (req *PlayerNewRequest) Player() model.Player {
	team := req.Team
	if team == "" {
		team = model.TeamA
	}

	return model.Player{
		Name: req.Name,
		Team: team,
	}
}

type PlayersResponse struct {
	Group   string         `json:"group"`
	Team    string         `json:"team"`
	Count   int            `json:"count"`
	Players []model.Player `json:"players"`
}
