package llm2

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"streamcore/common"
	"streamcore/logger"
)

// streamChunk is the wire shape of one SSE data record for the OpenAI-like
// and MiniMax dialects.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
	Usage   *providerUsage `json:"usage"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Content          string                `json:"content"`
	ReasoningContent string                `json:"reasoning_content"`
	Reasoning        string                `json:"reasoning"`
	ReasoningText    string                `json:"reasoning_text"`
	ReasoningDetails []reasoningDetail     `json:"reasoning_details"`
	ToolCalls        []streamToolCallDelta `json:"tool_calls"`
}

type reasoningDetail struct {
	Text string `json:"text"`
}

type streamToolCallDelta struct {
	ID       *string              `json:"id"`
	Function *streamFunctionDelta `json:"function"`
}

type streamFunctionDelta struct {
	Name      *string `json:"name"`
	Arguments string  `json:"arguments"`
}

// openAILikeDriver streams one completion for any dialect whose chunk
// envelope matches the OpenAI completions shape: build request, POST,
// decode SSE chunks into assembler events.
type openAILikeDriver struct{}

func (openAILikeDriver) Stream(ctx context.Context, model Model, llmCtx Context, options Options, events chan<- Event) (*AssistantMessage, error) {
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

	readErr := readSSE(resp.Body, func(chunk streamChunk) {
		handleOpenAILikeChunk(asm, chunk)
	})
	if readErr != nil {
		log.Debug().Err(readErr).Msg("sse stream ended with error")
		asm.Fail(readErr)
		return out, readErr
	}

	asm.FinishCurrent()
	asm.Done()
	log.Debug().Str("stop_reason", string(out.StopReason)).Msg("completion finished")
	return out, nil
}

func handleOpenAILikeChunk(asm *blockAssembler, chunk streamChunk) {
	if chunk.Usage != nil {
		u := usageFromChunk(*chunk.Usage)
		u = applyOpenAIReasoningAdjustment(u, chunk.Usage.CompletionTokenDetail)
		asm.OnUsage(u)
	}
	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]
	if choice.FinishReason != nil {
		asm.OnFinishReason(*choice.FinishReason)
	}

	delta := choice.Delta
	if delta.Content != "" {
		asm.OnTextDelta(delta.Content)
	}
	if reasoning, signature := firstReasoningField(delta); reasoning != "" {
		asm.OnReasoningDelta(reasoning, signature)
	}
	for _, tc := range delta.ToolCalls {
		var name *string
		var args string
		if tc.Function != nil {
			name = tc.Function.Name
			args = tc.Function.Arguments
		}
		asm.OnToolCallDelta(tc.ID, name, args)
	}
}

// warnDroppedReasoningEffort flags a descriptor/catalog mismatch: the caller
// asked for reasoning effort but the model descriptor does not declare
// reasoning, so the request builder drops the parameter. When the models.dev
// catalog says the model can reason, the silence is almost certainly a
// descriptor bug worth surfacing.
func warnDroppedReasoningEffort(log zerolog.Logger, model Model, options Options) {
	if options.ReasoningEffort == "" || model.Reasoning {
		return
	}
	if common.SupportsReasoning(model.Provider.String(), model.ID) {
		log.Warn().
			Str("reasoning_effort", options.ReasoningEffort).
			Msg("dropping reasoning_effort: model descriptor does not declare reasoning, but the catalog marks this model reasoning-capable")
	}
}

// firstReasoningField implements the priority-ordered reasoning field
// selection shared with the MiniMax driver and its scalar fallback path.
func firstReasoningField(d streamDelta) (text, signature string) {
	switch {
	case d.ReasoningContent != "":
		return d.ReasoningContent, "reasoning_content"
	case d.Reasoning != "":
		return d.Reasoning, "reasoning"
	case d.ReasoningText != "":
		return d.ReasoningText, "reasoning_text"
	default:
		return "", ""
	}
}
