package server

import (
	"errors"

	"github.com/s-min-sys/teamsplit/internal/storage"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
)

// storageErrorToCode shows domain errors verbatim and hides everything else
// behind fallbackMsg, logging the raw error. existsCode is used for
// commerr.ErrAlreadyExists domain errors; paths that cannot produce one pass
// CodeInvalidArgs.
func (s *Server) storageErrorToCode(err error, existsCode Code, fallbackMsg string) (code Code, msg string) {
	if domainErr, ok := storage.AsDomainError(err); ok {
		code = CodeInvalidArgs
		if errors.Is(err, commerr.ErrAlreadyExists) {
			code = existsCode
		}

		msg = domainErr.Message

		return
	}

	s.logger.WithFields(l.ErrorField(err)).Error(fallbackMsg)

	code = CodeInternalError
	msg = fallbackMsg

	return
}
