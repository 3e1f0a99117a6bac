package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"bare json",
			`{"aiScore": 8}`,
			`{"aiScore": 8}`,
		},
		{
			"json fence",
			"```json\n{\"aiScore\": 8}\n```",
			`{"aiScore": 8}`,
		},
		{
			"uppercase fence",
			"```JSON\n{\"aiScore\": 8}\n```",
			`{"aiScore": 8}`,
		},
		{
			"prose around the object",
			"Sure! Here you go:\n{\"aiScore\": 8}\nHope that helps.",
			`{"aiScore": 8}`,
		},
		{
			"braces inside string literals",
			`{"vibeSummary": "use {curly} braces", "aiScore": 8}`,
			`{"vibeSummary": "use {curly} braces", "aiScore": 8}`,
		},
		{
			"escaped quote inside string",
			`{"vibeSummary": "say \"howdy\"", "aiScore": 8}`,
			`{"vibeSummary": "say \"howdy\"", "aiScore": 8}`,
		},
		{
			"nested object",
			`prefix {"a": {"b": 1}} suffix`,
			`{"a": {"b": 1}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanJSONResponse(tc.in))
		})
	}
}

func TestParseImageDataURI(t *testing.T) {
	mimeType, data, ok := ParseImageDataURI("data:image/png;base64,aGVsbG8=")
	require.True(t, ok)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("hello"), data)

	_, _, ok = ParseImageDataURI("https://example.com/photo.png")
	assert.False(t, ok)

	_, _, ok = ParseImageDataURI("data:text/plain;base64,aGVsbG8=")
	assert.False(t, ok)

	_, _, ok = ParseImageDataURI("data:image/png;base64")
	assert.False(t, ok)

	_, _, ok = ParseImageDataURI("data:image/png;base64,%%%not-base64%%%")
	assert.False(t, ok)
}

func TestTextToVectorIsDeterministic(t *testing.T) {
	a := TextToVector("keep austin weird")
	b := TextToVector("keep austin weird")
	c := TextToVector("something else entirely")

	assert.Equal(t, a.Slice(), b.Slice())
	assert.NotEqual(t, a.Slice(), c.Slice())
	assert.Len(t, a.Slice(), 1536)
}
