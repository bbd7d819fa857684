package llm2

// EventType enumerates the shapes an Event can take.
type EventType string

const (
	EventStart         EventType = "start"
	EventTextStart     EventType = "text_start"
	EventTextDelta     EventType = "text_delta"
	EventTextEnd       EventType = "text_end"
	EventThinkingStart EventType = "thinking_start"
	EventThinkingDelta EventType = "thinking_delta"
	EventThinkingEnd   EventType = "thinking_end"
	EventToolCallStart EventType = "tool_call_start"
	EventToolCallDelta EventType = "tool_call_delta"
	EventToolCallEnd   EventType = "tool_call_end"
	EventDone          EventType = "done"
	EventError         EventType = "error"
)

// SuccessReason is the stop reason carried on a Done event.
type SuccessReason string

const (
	SuccessStop    SuccessReason = "stop"
	SuccessLength  SuccessReason = "length"
	SuccessToolUse SuccessReason = "tool-use"
)

// ErrorReason is the stop reason carried on an Error event.
type ErrorReason string

const (
	FailureError   ErrorReason = "error"
	FailureAborted ErrorReason = "aborted"
)

// Event is the tagged union pushed onto the event channel. ContentIndex is
// meaningful for the *Start/*Delta/*End shapes; Partial always reflects the
// assistant message built by applying all events up to and including this
// one.
type Event struct {
	Type EventType

	ContentIndex int
	Delta        string
	ToolCall     *ContentBlock // set on ToolCallEnd

	SuccessReason SuccessReason // set on Done
	ErrorReason   ErrorReason   // set on Error
	Err           error         // set on Error

	Partial *AssistantMessage
}

func successReasonFromStop(s StopReason) SuccessReason {
	switch s {
	case StopReasonLength:
		return SuccessLength
	case StopReasonToolUse:
		return SuccessToolUse
	default:
		return SuccessStop
	}
}
