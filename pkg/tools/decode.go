package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeArguments parses the raw JSON argument payload of one tool call
// and validates it against the spec: required parameters must be present,
// declared parameters are coerced to their declared type, enum values are
// checked. Undeclared extra fields are ignored, never rejected. The first
// offending field is reported: required parameters in declared order,
// then the remaining declared parameters in sorted order.
func DecodeArguments(spec Spec, raw string) (Args, error) {
	payload := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("parse arguments for %s: %w", spec.Name, err)
		}
	}

	args := make(Args, len(spec.Params))
	requiredSet := make(map[string]bool, len(spec.Required))

	for _, name := range spec.Required {
		requiredSet[name] = true
		v, ok := payload[name]
		if !ok || isAbsent(v) {
			return nil, ArgumentError{Tool: spec.Name, Field: name, Reason: "is required"}
		}
		typed, err := coerce(spec, name, v)
		if err != nil {
			return nil, err
		}
		args[name] = typed
	}

	optional := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		if !requiredSet[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	for _, name := range optional {
		v, ok := payload[name]
		if !ok || v == nil {
			continue
		}
		typed, err := coerce(spec, name, v)
		if err != nil {
			return nil, err
		}
		args[name] = typed
	}

	return args, nil
}

func coerce(spec Spec, field string, v any) (any, error) {
	p := spec.Params[field]
	switch p.Type {
	case TypeNumber:
		var out float64
		if err := weakDecode(v, &out); err != nil {
			return nil, ArgumentError{Tool: spec.Name, Field: field, Reason: "must be a number"}
		}
		return out, nil
	default:
		var out string
		if err := weakDecode(v, &out); err != nil {
			return nil, ArgumentError{Tool: spec.Name, Field: field, Reason: "must be a string"}
		}
		if len(p.Enum) > 0 && !contains(p.Enum, out) {
			return nil, ArgumentError{
				Tool:   spec.Name,
				Field:  field,
				Reason: "must be one of " + strings.Join(p.Enum, ", "),
			}
		}
		return out, nil
	}
}

func weakDecode(in, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
