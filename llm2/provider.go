package llm2

import "context"

// Driver streams one assistant turn as Events and returns the final message.
// Drivers MUST NOT close eventChan; the caller owns the channel lifecycle.
type Driver interface {
	Stream(ctx context.Context, model Model, llmCtx Context, options Options, eventChan chan<- Event) (*AssistantMessage, error)
}
