package llm2

import (
	"context"
	"time"

	"github.com/google/uuid"

	"streamcore/logger"
)

// minimaxDriver streams a MiniMax completion: same envelope as the
// OpenAI-like dialect, but reasoning may also arrive as an explicit
// reasoning_details array, and otherwise falls back to inline <think> tag
// recovery over plain content.
type minimaxDriver struct{}

func (minimaxDriver) Stream(ctx context.Context, model Model, llmCtx Context, options Options, events chan<- Event) (*AssistantMessage, error) {
	correlationID := uuid.New().String()
	log := logger.Get().With().Str("correlation_id", correlationID).Str("model", model.ID).Logger()

	out := &AssistantMessage{
		API:        model.API,
		Provider:   model.Provider,
		Model:      model.ID,
		StopReason: StopReasonStop,
		Timestamp:  unixMillis(time.Now()),
	}
	asm := newBlockAssembler(out, events)

	if err := checkContextOverflow(model, llmCtx); err != nil {
		log.Debug().Err(err).Msg("context overflow")
		asm.Fail(err)
		return out, err
	}
	warnDroppedReasoningEffort(log, model, options)

	compat := resolveCompat(model)

	body, err := buildRequestBody(model, llmCtx, options, compat)
	if err != nil {
		log.Debug().Err(err).Msg("failed to build request body")
		asm.Fail(err)
		return out, err
	}

	headers := buildHeaders(model.Headers, options.Headers, options.ApiKey)
	log.Debug().Int("body_bytes", len(body)).Msg("posting completion request")
	resp, err := postSSE(ctx, model.BaseURL, headers, body)
	if err != nil {
		log.Debug().Err(err).Msg("completion request failed")
		asm.Fail(err)
		return out, err
	}
	defer resp.Body.Close()

	asm.Start()

	var scanner TagScanner
	readErr := readSSE(resp.Body, func(chunk streamChunk) {
		handleMinimaxChunk(asm, &scanner, chunk)
	})
	if readErr != nil {
		log.Debug().Err(readErr).Msg("sse stream ended with error")
		asm.Fail(readErr)
		return out, readErr
	}

	for _, frag := range scanner.Flush() {
		switch frag.Type {
		case TagFragmentThinking:
			asm.OnReasoningDelta(frag.Text, "think_tag")
		case TagFragmentText:
			asm.OnTextDelta(frag.Text)
		}
	}

	asm.FinishCurrent()
	asm.Done()
	log.Debug().Str("stop_reason", string(out.StopReason)).Msg("completion finished")
	return out, nil
}

func handleMinimaxChunk(asm *blockAssembler, scanner *TagScanner, chunk streamChunk) {
	if chunk.Usage != nil {
		asm.OnUsage(usageFromChunk(*chunk.Usage))
	}
	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]
	if choice.FinishReason != nil {
		asm.OnFinishReason(*choice.FinishReason)
	}

	delta := choice.Delta
	explicitReasoning := false

	if hasNonEmptyDetail(delta.ReasoningDetails) {
		for _, d := range delta.ReasoningDetails {
			if d.Text != "" {
				asm.OnReasoningDelta(d.Text, "reasoning_details")
				explicitReasoning = true
			}
		}
	} else if text, signature := firstReasoningField(delta); text != "" {
		asm.OnReasoningDelta(text, signature)
		explicitReasoning = true
	}

	if delta.Content == "" {
		return
	}
	if explicitReasoning {
		asm.OnTextDelta(delta.Content)
		return
	}

	for _, frag := range scanner.Feed(delta.Content) {
		switch frag.Type {
		case TagFragmentThinking:
			asm.OnReasoningDelta(frag.Text, "think_tag")
		case TagFragmentText:
			asm.OnTextDelta(frag.Text)
		}
	}
}

func hasNonEmptyDetail(details []reasoningDetail) bool {
	for _, d := range details {
		if d.Text != "" {
			return true
		}
	}
	return false
}
