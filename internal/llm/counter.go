package llm

import (
	"fmt"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Counter returns the number of tokens in text.
type Counter func(text string) (int, error)

// Per-message framing overhead for chat models.
const (
	tokensPerMessage = 4
	tokensPerReply   = 3
)

// CountMessages estimates the prompt size of msgs using count.
func CountMessages(count Counter, msgs []Message) (int, error) {
	total := tokensPerReply
	for _, m := range msgs {
		n, err := count(m.Content)
		if err != nil {
			return 0, err
		}
		total += tokensPerMessage + n
		for _, tc := range m.ToolCalls {
			n, err := count(tc.Name + tc.Arguments)
			if err != nil {
				return 0, err
			}
			total += n
		}
	}
	return total, nil
}

// TiktokenCounter returns a Counter backed by the encoding for model,
// falling back to cl100k_base for models tiktoken does not know. The
// encoding is loaded on first use.
func TiktokenCounter(model string) Counter {
	var (
		once sync.Once
		enc  *tiktoken.Tiktoken
		err  error
	)
	return func(text string) (int, error) {
		once.Do(func() {
			enc, err = tiktoken.EncodingForModel(model)
			if err != nil {
				enc, err = tiktoken.GetEncoding("cl100k_base")
			}
			if err != nil {
				err = fmt.Errorf("loading tokenizer for %s: %w", model, err)
			}
		})
		if err != nil {
			return 0, err
		}
		return len(enc.Encode(text, nil, nil)), nil
	}
}
