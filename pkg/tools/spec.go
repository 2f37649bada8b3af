package tools

import (
	"context"

	"github.com/harunnryd/saku/pkg/llm"
)

// Parameter types a tool may declare.
const (
	TypeString = "string"
	TypeNumber = "number"
)

// Param describes one tool parameter.
type Param struct {
	Type        string
	Description string
	Enum        []string
}

// Spec is the declarative description of a tool: its name, what it does,
// and the parameters it accepts. Immutable once registered.
type Spec struct {
	Name        string
	Description string
	Params      map[string]Param
	Required    []string
}

// Args holds decoded, typed arguments keyed by parameter name: string
// params as string, number params as float64.
type Args map[string]any

// String returns the named argument as a string.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Number returns the named argument as a float64.
func (a Args) Number(name string) float64 {
	f, _ := a[name].(float64)
	return f
}

// Handler executes one tool call with validated arguments and returns the
// result text shown to the model.
type Handler func(ctx context.Context, args Args) (string, error)

// Schema renders the spec as a JSON-schema parameters object in the shape
// the chat endpoint expects.
func (s Spec) Schema() map[string]any {
	properties := make(map[string]any, len(s.Params))
	for name, p := range s.Params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[name] = prop
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// Tool converts the spec into the offer sent to the model.
func (s Spec) Tool() llm.Tool {
	return llm.Tool{
		Name:        s.Name,
		Description: s.Description,
		Schema:      s.Schema(),
	}
}
