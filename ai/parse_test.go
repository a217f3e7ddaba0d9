package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `["a","b"]`, StripJSONFences("```json\n[\"a\",\"b\"]\n```"))
	assert.Equal(t, `["a"]`, StripJSONFences("```\n[\"a\"]\n```"))
	assert.Equal(t, `{"k":1}`, StripJSONFences(`  {"k":1}  `))
	assert.Equal(t, "plain text", StripJSONFences("plain text"))
}

func TestParseStringArray(t *testing.T) {
	out := ParseStringArray("```json\n[\"work\", \"sleep\", \"\"]\n```")
	require.NotNil(t, out)
	assert.Equal(t, []string{"work", "sleep"}, out)
}

func TestParseStringArrayGarbage(t *testing.T) {
	assert.Nil(t, ParseStringArray("I'm sorry, I can't do that"))
	assert.Nil(t, ParseStringArray("[]"))
	assert.Nil(t, ParseStringArray(`[""]`))
}

func TestParseJSONObject(t *testing.T) {
	var v struct {
		Summary string `json:"summary"`
	}
	err := ParseJSONObject("```json\n{\"summary\":\"ok\"}\n```", &v)
	require.NoError(t, err)
	assert.Equal(t, "ok", v.Summary)
}
