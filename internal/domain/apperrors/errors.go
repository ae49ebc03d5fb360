// Package apperrors defines the error kinds every operation of the core
// may surface. Callers classify failures with errors.Is; repositories
// and services attach context with github.com/pkg/errors wrapping, which
// preserves the kind.
package apperrors

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidActor      = errors.New("actor role forbids this operation")
	ErrForbidden         = errors.New("actor does not own the target resource")
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrSystemStage       = errors.New("system stage cannot be modified")
	ErrCrossJob          = errors.New("stage belongs to a different job")
	ErrJobUnavailable    = errors.New("job is not accepting applications")
	ErrConflict          = errors.New("conflicting concurrent update")
)
