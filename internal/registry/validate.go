package registry

import (
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/refpin/refpin/pkg/types"
)

// ParamKind identifies the type of a tool parameter.
type ParamKind string

const (
	KindString      ParamKind = "string"
	KindInteger     ParamKind = "integer"
	KindBoolean     ParamKind = "boolean"
	KindStringArray ParamKind = "string_array"
)

// ParamSpec is a tagged-variant validator for a single tool parameter.
// All tools are validated through the same ParamSpec evaluation.
type ParamSpec struct {
	Name        string
	Kind        ParamKind
	Description string

	// Required parameters fail the call when absent. Optional parameters
	// fall back to Default.
	Required bool
	Default  any

	// Min and Max bound integer parameters. Out-of-range values are clamped
	// to the nearest bound, never rejected.
	Min *int
	Max *int

	// MinItems and MaxItems bound array parameters. Arrays longer than
	// MaxItems are truncated; arrays shorter than MinItems are rejected.
	MinItems int
	MaxItems int
}

// ToolSpec describes a tool: its name, description and input parameters.
// ToolSpecs are defined at process start and never mutated.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// validateArgs checks args against the parameter specs and returns a new map
// containing only the declared parameters, coerced to their canonical Go
// types (string, int, bool, []string). Unknown extra arguments are ignored.
func validateArgs(specs []ParamSpec, args map[string]any) (map[string]any, error) {
	coerced := make(map[string]any, len(specs))
	for _, spec := range specs {
		raw, present := args[spec.Name]
		if !present || raw == nil {
			if spec.Required {
				return nil, newMissingArgumentError(spec.Name)
			}
			coerced[spec.Name] = spec.Default
			continue
		}

		val, err := spec.coerce(raw)
		if err != nil {
			return nil, err
		}
		coerced[spec.Name] = val
	}
	return coerced, nil
}

func (p ParamSpec) coerce(raw any) (any, error) {
	switch p.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("expected a string, got %T", raw))
		}
		return s, nil

	case KindInteger:
		n, err := p.coerceInt(raw)
		if err != nil {
			return nil, err
		}
		return p.clamp(n), nil

	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("expected a boolean, got %T", raw))
		}
		return b, nil

	case KindStringArray:
		items, err := p.coerceStringArray(raw)
		if err != nil {
			return nil, err
		}
		if len(items) < p.MinItems {
			return nil, newInvalidArgumentTypeError(
				p.Name, fmt.Sprintf("expected at least %d items, got %d", p.MinItems, len(items)),
			)
		}
		if p.MaxItems > 0 && len(items) > p.MaxItems {
			items = items[:p.MaxItems]
		}
		return items, nil

	default:
		return nil, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("unsupported parameter kind %q", p.Kind))
	}
}

// coerceInt accepts the numeric representations JSON decoding can produce.
// Floats are accepted only when they carry no fractional part.
func (p ParamSpec) coerceInt(raw any) (int, error) {
	switch n := raw.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("expected an integer, got %v", n))
		}
		return int(n), nil
	default:
		return 0, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("expected an integer, got %T", raw))
	}
}

func (p ParamSpec) coerceStringArray(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, newInvalidArgumentTypeError(
					p.Name, fmt.Sprintf("expected item %d to be a string, got %T", i, item),
				)
			}
			items = append(items, s)
		}
		return items, nil
	default:
		return nil, newInvalidArgumentTypeError(p.Name, fmt.Sprintf("expected an array of strings, got %T", raw))
	}
}

// clamp pins n to the declared [Min, Max] bounds.
func (p ParamSpec) clamp(n int) int {
	if p.Min != nil && n < *p.Min {
		return *p.Min
	}
	if p.Max != nil && n > *p.Max {
		return *p.Max
	}
	return n
}

// jsonSchema renders the parameter as a JSON schema property.
func (p ParamSpec) jsonSchema() map[string]any {
	prop := map[string]any{
		"description": p.Description,
	}
	switch p.Kind {
	case KindString:
		prop["type"] = "string"
	case KindInteger:
		prop["type"] = "integer"
		if p.Min != nil {
			prop["minimum"] = *p.Min
		}
		if p.Max != nil {
			prop["maximum"] = *p.Max
		}
	case KindBoolean:
		prop["type"] = "boolean"
	case KindStringArray:
		prop["type"] = "array"
		prop["items"] = map[string]any{"type": "string"}
		if p.MinItems > 0 {
			prop["minItems"] = p.MinItems
		}
		if p.MaxItems > 0 {
			prop["maxItems"] = p.MaxItems
		}
	}
	if p.Default != nil {
		prop["default"] = p.Default
	}
	return prop
}

func (s ToolSpec) properties() (map[string]any, []string) {
	props := make(map[string]any, len(s.Params))
	var required []string
	for _, p := range s.Params {
		props[p.Name] = p.jsonSchema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return props, required
}

func (s ToolSpec) toMCPTool() mcp.Tool {
	props, required := s.properties()
	return mcp.Tool{
		Name:        s.Name,
		Description: s.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

func (s ToolSpec) toAPITool() types.Tool {
	props, required := s.properties()
	return types.Tool{
		Name:        s.Name,
		Description: s.Description,
		InputSchema: types.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}
