package tools

import "fmt"

// DuplicateToolError is returned when a spec name is already registered.
type DuplicateToolError struct {
	Name string
}

func (e DuplicateToolError) Error() string {
	return fmt.Sprintf("tool already registered: %s", e.Name)
}

// UnknownToolError is returned when no tool carries the requested name.
type UnknownToolError struct {
	Name string
}

func (e UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ArgumentError names the first missing or mistyped argument field.
type ArgumentError struct {
	Tool   string
	Field  string
	Reason string
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: field %q %s", e.Tool, e.Field, e.Reason)
}
