package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse signals that the provider answered without any usable
// content. Surfaced instead of inventing a reply.
var ErrEmptyResponse = errors.New("llm: provider returned empty response")

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
