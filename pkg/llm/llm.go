package llm

import "context"

// LLM is a single-turn chat model.
type LLM interface {
	Chat(ctx context.Context, prompt string) (string, error)
	GetModel() string
}
