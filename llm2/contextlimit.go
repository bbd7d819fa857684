package llm2

import (
	"fmt"

	"streamcore/common"
)

// estimatedContextChars sums the message text/thinking/tool-call-argument
// characters that count toward the model's context window; image bytes are
// excluded since models.dev context limits are measured in text tokens.
func estimatedContextChars(ctx Context) int {
	total := len(ctx.SystemPrompt)
	for _, m := range ctx.Messages {
		switch m.Kind {
		case MessageKindUser:
			for _, b := range m.User.Content {
				total += len(b.Text)
			}
		case MessageKindAssistant:
			for _, b := range m.Assistant.Content {
				total += len(b.Text) + len(b.Thinking)
				for _, v := range b.ToolCallArgs {
					total += len(fmt.Sprint(v))
				}
			}
		case MessageKindToolResult:
			for _, b := range m.ToolResult.Content {
				total += len(b.Text)
			}
		}
	}
	return total
}

// checkContextOverflow rejects a request whose estimated token count already
// exceeds the model's context window, consulting the models.dev catalog for
// the model's limit; for an unlisted model it uses the
// STREAMCORE_FALLBACK_MAX_TOKENS override when set, else
// common.DefaultContextLimitTokens.
func checkContextOverflow(model Model, ctx Context) error {
	chars := estimatedContextChars(ctx)
	if chars > common.MaxCharsForModel(model.Provider.String(), model.ID, 0) {
		limit := common.GetModelContextLimit(model.Provider.String(), model.ID)
		estimatedTokens := int(float64(chars) / common.CharsPerToken)
		return newError(ErrContextOverflow, fmt.Sprintf("estimated %d tokens exceeds %s/%s limit of %d", estimatedTokens, model.Provider.String(), model.ID, limit))
	}
	return nil
}
