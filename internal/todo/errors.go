package todo

import "errors"

// Failure kinds. Callers match them with errors.Is; the returned errors wrap
// them with the offending name, index or path.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrDuplicateProject = errors.New("project already exists")
	ErrIndexOutOfRange  = errors.New("task index out of range")
	ErrFileRead         = errors.New("failed to read todo file")
	ErrFileWrite        = errors.New("failed to write todo file")
	ErrInvalidText      = errors.New("invalid text")
)
