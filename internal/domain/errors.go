package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStorage
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage unavailable")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Error carries the taxonomy kind of a failure together with the operation that
// produced it. errors.Is matches it against the sentinel of its kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrStorage:
		return e.Kind == KindStorage
	case ErrUnauthenticated:
		return e.Kind == KindUnauthenticated
	}
	return false
}

func NewValidationError(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

func NewNotFoundError(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func NewStorageError(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

func NewUnauthenticatedError(op string, err error) error {
	return &Error{Kind: KindUnauthenticated, Op: op, Err: err}
}

// KindOf reports the taxonomy kind of err, or KindUnknown when err does not
// carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
