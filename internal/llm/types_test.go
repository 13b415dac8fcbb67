package llm

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordCounter(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func TestTokenUsage_Tracker(t *testing.T) {
	var tr usageTracker
	assert.Equal(t, TokenUsage{}, tr.GetTokenUsage())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.IncrementTokenUsage(TokenUsage{PromptTokens: 2, CompletionTokens: 1, TotalTokens: 3})
		}()
	}
	wg.Wait()

	assert.Equal(t, TokenUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, tr.GetTokenUsage())
}

func TestCountMessages(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "you are helpful"},
		{Role: RoleUser, Content: "create project demo"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{Name: "create_directory", Arguments: `{"project_name": "demo"}`}}},
	}

	n, err := CountMessages(wordCounter, msgs)
	require.NoError(t, err)
	// 3 reply priming + 3 messages * 4 framing + 3 + 3 + 0 content + 2 tool-call words
	assert.Equal(t, 3+12+3+3+2, n)
}

func TestCountMessages_CounterError(t *testing.T) {
	boom := errors.New("tokenizer unavailable")
	_, err := CountMessages(func(string) (int, error) { return 0, boom }, []Message{{Content: "x"}})
	assert.ErrorIs(t, err, boom)
}

func TestToLangChainMessages(t *testing.T) {
	msgs := toLangChainMessages([]Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "create_directory", Arguments: "{}"}}},
		{Role: RoleTool, ToolCallID: "c1", Name: "create_directory", Content: "done"},
	})
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", string(msgs[0].Role))
	assert.Equal(t, "human", string(msgs[1].Role))
	assert.Equal(t, "ai", string(msgs[2].Role))
	assert.Len(t, msgs[2].Parts, 1)
	assert.Equal(t, "tool", string(msgs[3].Role))
}

func TestToAzureMessages(t *testing.T) {
	msgs := toAzureMessages([]Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "", ToolCalls: []ToolCall{{ID: "c1", Name: "create_file", Arguments: "{}"}}},
		{Role: RoleTool, ToolCallID: "c1", Content: "ok"},
	})
	require.Len(t, msgs, 4)
	for _, m := range msgs {
		assert.NotNil(t, m.GetChatRequestMessage())
	}
}

func TestIntFrom(t *testing.T) {
	assert.Equal(t, 7, intFrom(7))
	assert.Equal(t, 7, intFrom(int32(7)))
	assert.Equal(t, 7, intFrom(float64(7)))
	assert.Equal(t, 0, intFrom("7"))
	assert.Equal(t, 0, intFrom(nil))
}
