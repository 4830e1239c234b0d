package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n[1,2]\n```", `[1,2]`},
		{"leading prose kept", "here you go {\"a\":1}", `here you go {"a":1}`},
		{"whitespace", "  \n {\"a\":1} \n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestExtractValue(t *testing.T) {
	got, err := ExtractValue(`Sure! Here is the list: [{"name":"Acme","note":"uses } in strings"}] hope it helps`)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Acme","note":"uses } in strings"}]`, got)

	_, err = ExtractValue("no json here")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ExtractValue(`{"unbalanced": true`)
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestUnmarshal(t *testing.T) {
	var obj struct {
		Name string `json:"name"`
	}
	require.NoError(t, Unmarshal("```json\n{\"name\":\"Acme\"}\n```", &obj))
	assert.Equal(t, "Acme", obj.Name)

	var arr []int
	require.NoError(t, Unmarshal("The answer is [1,2,3].", &arr))
	assert.Equal(t, []int{1, 2, 3}, arr)

	assert.Error(t, Unmarshal("nothing structured", &obj))
}
