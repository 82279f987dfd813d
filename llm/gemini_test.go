package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGenaiContent(t *testing.T) {
	system, contents := toGenaiContent([]Message{
		{Role: RoleSystem, Content: "be nice"},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
	})

	require.NotNil(t, system)
	require.Len(t, system.Parts, 1)
	assert.Equal(t, "be nice", system.Parts[0].Text)

	require.Len(t, contents, 2)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "hello", contents[0].Parts[0].Text)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "hi", contents[1].Parts[0].Text)
}

func TestToGenaiContentWithoutSystem(t *testing.T) {
	system, contents := toGenaiContent([]Message{{Role: RoleUser, Content: "hello"}})
	assert.Nil(t, system)
	assert.Len(t, contents, 1)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello"}, {Text: " there."}}}},
			{Content: nil},
		},
	}
	assert.Equal(t, "Hello there.", responseText(resp))
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
}
