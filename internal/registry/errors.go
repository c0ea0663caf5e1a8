package registry

import "fmt"

// Error codes distinguishing why a tool call was rejected.
// These map 1:1 to the {code, message} error objects returned to callers.
const (
	CodeUnknownTool         = "unknown_tool"
	CodeMissingArgument     = "missing_argument"
	CodeInvalidArgumentType = "invalid_argument_type"
)

// CallError is returned when a tool call is rejected before its handler runs.
// It is always local to a single call; the registry keeps serving.
type CallError struct {
	Code    string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newUnknownToolError(name string) *CallError {
	return &CallError{
		Code:    CodeUnknownTool,
		Message: fmt.Sprintf("tool %q is not registered", name),
	}
}

func newMissingArgumentError(param string) *CallError {
	return &CallError{
		Code:    CodeMissingArgument,
		Message: fmt.Sprintf("required argument %q is missing", param),
	}
}

func newInvalidArgumentTypeError(param, detail string) *CallError {
	return &CallError{
		Code:    CodeInvalidArgumentType,
		Message: fmt.Sprintf("argument %q is invalid: %s", param, detail),
	}
}
