package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/shayari-hub/backend/internal/repositories"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Failure is an expected, user-facing failure. Message is safe to show.
type Failure struct {
	Kind    error
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

func unauthorized(msg string) *Failure { return &Failure{Kind: ErrUnauthorized, Message: msg} }
func invalid(msg string) *Failure      { return &Failure{Kind: ErrInvalid, Message: msg} }
func notFound(msg string) *Failure     { return &Failure{Kind: ErrNotFound, Message: msg} }
func conflict(msg string) *Failure     { return &Failure{Kind: ErrConflict, Message: msg} }

// errNotSignedIn is returned by every mutation called without a session.
var errNotSignedIn = unauthorized("Unauthorized")

// storeError converts a repository error into a Failure where the cause is
// known, and wraps it with op otherwise.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &Failure{Kind: ErrNotFound, Message: "Not found", Err: err}
	case errors.Is(err, repositories.ErrDuplicate):
		return &Failure{Kind: ErrConflict, Message: "Already exists", Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
