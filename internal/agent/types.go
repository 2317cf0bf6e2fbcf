package agent

import "strings"

// Function is a structured-call declaration. Parameters is a JSON schema object.
type Function struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Function names.
const (
	FnCheckMemoryNecessity  = "check_memory_necessity"
	FnGenerateSearchQueries = "generate_search_queries"
)

// CheckMemoryNecessity asks whether older memories are needed.
var CheckMemoryNecessity = Function{
	Name:        FnCheckMemoryNecessity,
	Description: "Determine if memory search is needed",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"needs_memory": map[string]interface{}{"type": "boolean"},
			"reason":       map[string]interface{}{"type": "string"},
		},
		"required": []string{"needs_memory", "reason"},
	},
}

// GenerateSearchQueries asks for focused retrieval queries.
var GenerateSearchQueries = Function{
	Name:        FnGenerateSearchQueries,
	Description: "Generate focused search queries for memory retrieval",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"queries": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"queries"},
	},
}

// FunctionCall is either Present with arguments or Missing.
// Read arguments through the typed accessors, each of which forces the
// caller to pick a default with Field.Or.
type FunctionCall struct {
	present bool
	name    string
	args    map[string]interface{}
}

func Present(name string, args map[string]interface{}) FunctionCall {
	return FunctionCall{present: true, name: name, args: args}
}

func Missing() FunctionCall {
	return FunctionCall{}
}

func (c FunctionCall) IsPresent() bool { return c.present }
func (c FunctionCall) Name() string    { return c.name }

// Field is an argument that may be absent or of the wrong type.
type Field[T any] struct {
	value T
	ok    bool
}

func (f Field[T]) Get() (T, bool) { return f.value, f.ok }

// Or returns the value, or def when the field is missing.
func (f Field[T]) Or(def T) T {
	if !f.ok {
		return def
	}
	return f.value
}

func found[T any](v T) Field[T] { return Field[T]{value: v, ok: true} }

func (c FunctionCall) Bool(key string) Field[bool] {
	if v, ok := c.lookup(key).(bool); ok {
		return found(v)
	}
	return Field[bool]{}
}

func (c FunctionCall) String(key string) Field[string] {
	if v, ok := c.lookup(key).(string); ok {
		return found(v)
	}
	return Field[string]{}
}

// Strings reads a string array, trimming items and dropping blank ones.
// An array holding anything but strings, or with no usable item, is missing.
func (c FunctionCall) Strings(key string) Field[[]string] {
	var out []string
	switch v := c.lookup(key).(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Field[[]string]{}
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	default:
		return Field[[]string]{}
	}
	if len(out) == 0 {
		return Field[[]string]{}
	}
	return found(out)
}

func (c FunctionCall) lookup(key string) interface{} {
	if !c.present {
		return nil
	}
	return c.args[key]
}
