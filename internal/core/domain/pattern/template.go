// Package pattern parses templated custom identifiers such as
// "role:{id}:{user}" and extracts parameter values from concrete strings.
//
// Matching is linear and greedy without backtracking: a parameter captures
// everything up to the last occurrence of the following literal. Templates
// whose literal separators can also appear inside captured values may
// therefore split incorrectly; callers that need unambiguous parsing should
// pick separators that cannot occur in the data.
package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyTemplate     = errors.New("template must not be empty")
	ErrUnclosedParameter = errors.New("unclosed parameter brace in template")
	ErrEmptyParameter    = errors.New("parameter name must not be empty")
	ErrAdjacentParams    = errors.New("parameters must be separated by a literal segment")
	ErrUnknownParamType  = errors.New("unknown parameter type")
)

type paramType int

const (
	paramAuto paramType = iota
	paramInt
	paramString
)

type segment struct {
	literal string
	name    string
	ptype   paramType
	param   bool
}

// Template is an immutable, parsed custom-id template. It is computed once
// at registration time and safe for concurrent use.
type Template struct {
	raw      string
	segments []segment
	params   int
}

// Parse compiles a template string into a Template. Parameters are declared
// as "{name}", optionally typed as "{name:int}" or "{name:str}". Two
// parameters without a separating literal are rejected.
func Parse(raw string) (*Template, error) {
	if raw == "" {
		return nil, ErrEmptyTemplate
	}

	t := &Template{raw: raw}
	rest := raw
	lastWasParam := false

	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open == -1 {
			t.segments = append(t.segments, segment{literal: rest})
			break
		}

		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
			lastWasParam = false
		}

		closing := strings.IndexByte(rest[open:], '}')
		if closing == -1 {
			return nil, ErrUnclosedParameter
		}

		if lastWasParam {
			return nil, ErrAdjacentParams
		}

		name := rest[open+1 : open+closing]
		ptype := paramAuto

		if colon := strings.IndexByte(name, ':'); colon != -1 {
			var err error
			ptype, err = parseParamType(name[colon+1:])
			if err != nil {
				return nil, err
			}
			name = name[:colon]
		}

		if name == "" {
			return nil, ErrEmptyParameter
		}

		t.segments = append(t.segments, segment{name: name, ptype: ptype, param: true})
		t.params++
		lastWasParam = true

		rest = rest[open+closing+1:]
	}

	return t, nil
}

func parseParamType(s string) (paramType, error) {
	switch s {
	case "int":
		return paramInt, nil
	case "str", "string":
		return paramString, nil
	default:
		return paramAuto, fmt.Errorf("%w: %q", ErrUnknownParamType, s)
	}
}

// Raw returns the template string the Template was parsed from.
func (t *Template) Raw() string {
	return t.raw
}

// Params returns the number of declared parameters.
func (t *Template) Params() int {
	return t.params
}

// Match extracts one value per declared parameter from s. Literal segments
// are stripped as required prefixes; a parameter captures greedily up to the
// last occurrence of the following literal, or the remainder of the string
// for the final parameter. Captured values are coerced to their declared
// type where possible; a failed coercion keeps the original string.
func (t *Template) Match(s string) (map[string]any, bool) {
	values := make(map[string]any, t.params)
	rest := s

	for i, seg := range t.segments {
		if !seg.param {
			if !strings.HasPrefix(rest, seg.literal) {
				return nil, false
			}
			rest = rest[len(seg.literal):]
			continue
		}

		if i == len(t.segments)-1 {
			values[seg.name] = coerce(rest, seg.ptype)
			rest = ""
			continue
		}

		next := t.segments[i+1].literal
		cut := strings.LastIndex(rest, next)
		if cut == -1 {
			return nil, false
		}

		values[seg.name] = coerce(rest[:cut], seg.ptype)
		rest = rest[cut:]
	}

	if rest != "" {
		return nil, false
	}

	if len(values) != t.params {
		return nil, false
	}

	return values, true
}

// Format substitutes values into the template, producing a concrete
// custom-id. Missing values render as empty strings.
func (t *Template) Format(values map[string]any) string {
	var b strings.Builder

	for _, seg := range t.segments {
		if !seg.param {
			b.WriteString(seg.literal)
			continue
		}
		if v, ok := values[seg.name]; ok {
			fmt.Fprintf(&b, "%v", v)
		}
	}

	return b.String()
}

// HasParams reports whether raw contains at least one parameter declaration.
// Registries use this to decide whether a match key needs template matching.
func HasParams(raw string) bool {
	return strings.IndexByte(raw, '{') != -1
}

func coerce(value string, ptype paramType) any {
	switch ptype {
	case paramString:
		return value
	default:
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		return value
	}
}
