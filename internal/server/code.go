package server

import "fmt"

type Code int

const (
	CodeSuccess Code = iota
	CodeGroupNameExists
	CodePlayerNameExists
)

const (
	CodeErrorStart Code = iota + 100
	CodeProtocol
	CodeMissArgs
	CodeInvalidArgs
	CodeInternalError
)

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "Sucesso"
	case CodeGroupNameExists:
		return "Grupo já existe"
	case CodePlayerNameExists:
		return "Pessoa já existe"
	case CodeProtocol:
		return "Erro de comunicação"
	case CodeMissArgs:
		return "Faltam parâmetros"
	case CodeInvalidArgs:
		return "Parâmetros inválidos"
	case CodeInternalError:
		return "Erro interno"
	}

	return fmt.Sprintf("Erro desconhecido %d", c)
}

// CodeToMessage prefers msg, which is already meant for the user, and falls
// back to the code's own text.
func CodeToMessage(code Code, msg string) string {
	if msg != "" {
		return msg
	}

	return code.String()
}
