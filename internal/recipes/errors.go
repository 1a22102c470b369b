package recipes

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind string

const (
	// KindValidation marks malformed or missing input.
	KindValidation Kind = "validation"
	// KindNotFound marks an operation against a cookbook or recipe that does not exist.
	KindNotFound Kind = "not_found"
	// KindStorage marks a failure reported by the database itself.
	KindStorage Kind = "storage"
)

var (
	// ErrNotFound matches every not_found Error via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrInvalid matches every validation Error via errors.Is.
	ErrInvalid = errors.New("invalid input")
)

// ErrorClassifier allows errors to declare their classification.
type ErrorClassifier interface {
	ErrorKind() string
}

// Error is the classified error returned by Store operations.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorKind implements ErrorClassifier.
func (e *Error) ErrorKind() string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

// Is lets errors.Is match the ErrNotFound and ErrInvalid sentinels by kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalid:
		return e.Kind == KindValidation
	}
	return false
}

func invalidf(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(op, format string, args ...any) error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{Kind: KindStorage, Op: op, Message: "storage failure", Err: err}
}

// KindOf reports the classification of err. Unclassified errors are storage failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		switch Kind(classifier.ErrorKind()) {
		case KindValidation:
			return KindValidation
		case KindNotFound:
			return KindNotFound
		}
	}
	return KindStorage
}

// IsNotFound reports whether err is a not_found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return errors.Is(err, ErrInvalid) }
