package cli

import (
	"errors"

	"github.com/ambrogio-dev/ambrogio/internal/config"
	"github.com/ambrogio-dev/ambrogio/internal/todo"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Store errors
	ErrProjectNotFound  = "PROJECT_NOT_FOUND"
	ErrDuplicateProject = "DUPLICATE_PROJECT"
	ErrIndexOutOfRange  = "INDEX_OUT_OF_RANGE"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Configuration errors
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrTodosPathUnset = "TODOS_PATH_UNSET"
	ErrLLMUnavailable = "LLM_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal             = "INTERNAL_ERROR"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
)

// Warning codes for non-fatal issues.
const (
	WarnHookExecution = "HOOK_FAILED"
	WarnFocusNotSaved = "FOCUS_NOT_RECORDED"
)

// storeErrorCode maps a store error to its stable code.
func storeErrorCode(err error) string {
	switch {
	case errors.Is(err, todo.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, todo.ErrDuplicateProject):
		return ErrDuplicateProject
	case errors.Is(err, todo.ErrIndexOutOfRange):
		return ErrIndexOutOfRange
	case errors.Is(err, todo.ErrFileRead):
		return ErrFileReadError
	case errors.Is(err, todo.ErrFileWrite):
		return ErrFileWriteError
	case errors.Is(err, todo.ErrInvalidText):
		return ErrInvalidInput
	case errors.Is(err, config.ErrTodosPathUnset):
		return ErrTodosPathUnset
	}
	return ErrInternal
}

func storeErrorSuggestion(code string) string {
	switch code {
	case ErrProjectNotFound:
		return "Run 'ambrogio projects list' to see existing projects"
	case ErrIndexOutOfRange:
		return "Run 'ambrogio tasks list' to see current task numbers"
	case ErrTodosPathUnset:
		return "Set " + config.EnvTodosFile + " or organiser_file in the config"
	}
	return ""
}

// handleStoreError reports a store failure with its mapped code.
func handleStoreError(err error) error {
	code := storeErrorCode(err)
	return handleError(code, err, storeErrorSuggestion(code))
}

// commandError carries a stable code through helpers that run before output.
type commandError struct {
	code       string
	suggestion string
	err        error
}

func (e *commandError) Error() string { return e.err.Error() }

func (e *commandError) Unwrap() error { return e.err }

func newCommandError(code string, err error, suggestion string) error {
	return &commandError{code: code, err: err, suggestion: suggestion}
}

// reportError routes err to the matching code. An abandoned prompt is not an error.
func reportError(err error) error {
	if errors.Is(err, errNoSelection) {
		printf("Cancelled.\n")
		return nil
	}
	var ce *commandError
	if errors.As(err, &ce) {
		return handleError(ce.code, ce.err, ce.suggestion)
	}
	return handleStoreError(err)
}
