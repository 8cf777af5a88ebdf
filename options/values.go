package options

import (
	"fmt"
	"maps"
	"strconv"
)

// Kind is the value type of an option
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
	Path
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Path:
		return "path"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Zero returns the zero value stored for the kind
func (k Kind) Zero() any {
	switch k {
	case Int:
		return 0
	case Float:
		return 0.0
	case Bool:
		return false
	}
	return ""
}

// Check returns v converted to the kind's Go type, or an error if it does not fit.
// Integers are accepted for Float options.
func (k Kind) Check(v any) (any, error) {
	switch k {
	case Int:
		if i, ok := v.(int); ok {
			return i, nil
		}
	case Float:
		switch f := v.(type) {
		case float64:
			return f, nil
		case int:
			return float64(f), nil
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case String, Path:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", k, v)
}

// Parse decodes a textual value for the kind
func (k Kind) Parse(s string) (any, error) {
	switch k {
	case Int:
		return strconv.Atoi(s)
	case Float:
		return strconv.ParseFloat(s, 64)
	case Bool:
		return strconv.ParseBool(s)
	}
	return s, nil
}

// Values maps option names to typed values: int, float64, string or bool.
// A name is present only when its value was supplied.
type Values map[string]any

// Clone returns a shallow copy that can be extended without touching v
func (v Values) Clone() Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// Has reports whether name was supplied
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

func (v Values) Float(name string) float64 {
	switch f := v[name].(type) {
	case float64:
		return f
	case int:
		return float64(f)
	}
	return 0
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Format renders a value the way it is written on a command line
func Format(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
