package apperror

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameConflict  = errors.New("game was changed concurrently, try again")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrInvalidStep   = errors.New("invalid history step")
	ErrUnknownAction = errors.New("unknown action")
)
