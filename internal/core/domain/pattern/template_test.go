package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrors(t *testing.T) {
	type TestCase struct {
		description string
		template    string
		want        error
	}

	testCases := []TestCase{
		{
			description: "empty template",
			template:    "",
			want:        ErrEmptyTemplate,
		},
		{
			description: "unclosed brace",
			template:    "role:{id",
			want:        ErrUnclosedParameter,
		},
		{
			description: "empty parameter name",
			template:    "role:{}",
			want:        ErrEmptyParameter,
		},
		{
			description: "adjacent parameters",
			template:    "role:{id}{user}",
			want:        ErrAdjacentParams,
		},
		{
			description: "unknown parameter type",
			template:    "role:{id:float}",
			want:        ErrUnknownParamType,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, err := Parse(testCase.template)

			require.ErrorIs(t, err, testCase.want)
		})
	}
}

func TestParseCountsParams(t *testing.T) {
	tpl, err := Parse("role:{id}:{user}")
	require.NoError(t, err)

	assert.Equal(t, 2, tpl.Params())
	assert.Equal(t, "role:{id}:{user}", tpl.Raw())
}

func TestMatch(t *testing.T) {
	type TestCase struct {
		description string
		template    string
		input       string
		want        map[string]any
		wantMatch   bool
	}

	testCases := []TestCase{
		{
			description: "single parameter coerced to int",
			template:    "add_role:{role}",
			input:       "add_role:123",
			want:        map[string]any{"role": 123},
			wantMatch:   true,
		},
		{
			description: "two parameters",
			template:    "role:{id}:{user}",
			input:       "role:42:kaj",
			want:        map[string]any{"id": 42, "user": "kaj"},
			wantMatch:   true,
		},
		{
			description: "declared string type keeps digits as string",
			template:    "page:{num:str}",
			input:       "page:7",
			want:        map[string]any{"num": "7"},
			wantMatch:   true,
		},
		{
			description: "declared int with non-numeric value degrades to string",
			template:    "user:{id:int}",
			input:       "user:kaj",
			want:        map[string]any{"id": "kaj"},
			wantMatch:   true,
		},
		{
			description: "missing literal prefix",
			template:    "add_role:{role}",
			input:       "remove_role:123",
			wantMatch:   false,
		},
		{
			description: "missing separator",
			template:    "role:{id}:{user}",
			input:       "role:42",
			wantMatch:   false,
		},
		{
			description: "trailing literal must be consumed",
			template:    "wrap:{id}:end",
			input:       "wrap:42:endmore",
			wantMatch:   false,
		},
		{
			description: "no parameters is a literal match",
			template:    "click_me",
			input:       "click_me",
			want:        map[string]any{},
			wantMatch:   true,
		},
		{
			description: "greedy capture takes the last separator occurrence",
			template:    "role:{id}:{user}",
			input:       "role:a:b:c",
			want:        map[string]any{"id": "a:b", "user": "c"},
			wantMatch:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			tpl, err := Parse(testCase.template)
			require.NoError(t, err)

			got, ok := tpl.Match(testCase.input)

			assert.Equal(t, testCase.wantMatch, ok)
			if testCase.wantMatch {
				assert.Equal(t, testCase.want, got)
			}
		})
	}
}

func TestFormatMatchRoundTrip(t *testing.T) {
	tpl, err := Parse("role:{id}:{user}")
	require.NoError(t, err)

	values := map[string]any{"id": 42, "user": "kaj"}

	got, ok := tpl.Match(tpl.Format(values))
	require.True(t, ok)

	assert.Equal(t, values, got)
}

func TestHasParams(t *testing.T) {
	assert.True(t, HasParams("role:{id}"))
	assert.False(t, HasParams("click_me"))
}
