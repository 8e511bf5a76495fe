package storage

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrGroupNameEmpty      = &DomainError{Message: "Informe o nome da turma.", Cause: commerr.ErrInvalidArgument}
	ErrGroupAlreadyExists  = &DomainError{Message: "Já existe um grupo cadastrado com esse nome.", Cause: commerr.ErrAlreadyExists}
	ErrPlayerNameEmpty     = &DomainError{Message: "Informe o nome da pessoa para adicionar.", Cause: commerr.ErrInvalidArgument}
	ErrPlayerInvalidTeam   = &DomainError{Message: "Selecione um time válido.", Cause: commerr.ErrInvalidArgument}
	ErrPlayerAlreadyExists = &DomainError{Message: "Essa pessoa já está adicionada em um time aqui.", Cause: commerr.ErrAlreadyExists}
)

// DomainError is a business-rule violation. Message is meant to be shown to
// the user as is.
type DomainError struct {
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// StorageError wraps a failure of the underlying kv store or of decoding the
// value stored under Key. It always matches commerr.ErrInternal.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == commerr.ErrInternal
}

func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError

	if errors.As(err, &domainErr) {
		return domainErr, true
	}

	return nil, false
}
