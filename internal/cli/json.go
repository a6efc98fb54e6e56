package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var jsonOutput bool

// stdout receives every envelope and every line of text output. Tests swap it.
var stdout io.Writer = os.Stdout

// Response is the one object a command prints under --json. Exactly one of
// Data and Error is set, matching OK.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo describes a failed command. Code is one of the Err* constants.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning is something that went wrong without failing the command, such as
// a hook exiting non-zero.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries counts for list results.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func isJSONOutput() bool {
	return jsonOutput
}

func writeEnvelope(resp Response) {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logger.Debug("write json envelope", "error", err)
	}
}

func outputSuccess(data interface{}, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeEnvelope(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// outputError prints a failure envelope. details is attached verbatim, for
// example a hook result.
func outputError(code, message string, details interface{}, suggestion string) {
	writeEnvelope(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

func outputErrorFromErr(code string, err error, suggestion string) {
	outputError(code, err.Error(), nil, suggestion)
}

// handleError reports err under code. With --json the failure is printed as
// an envelope and nil is returned, so the process exits 0 and callers read
// "ok" instead of the exit status. Otherwise err goes back to cobra.
func handleError(code string, err error, suggestion string) error {
	if !jsonOutput {
		return err
	}
	outputErrorFromErr(code, err, suggestion)
	return nil
}

// handleErrorMsg is handleError for failures that have no underlying error.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format, args...)
}
