package llm2

import "encoding/json"

// blockKind identifies the current in-flight block's variant.
type blockKind int

const (
	blockNone blockKind = iota
	blockText
	blockThinking
	blockToolCall
)

// blockAssembler is the driver-private state machine that turns a
// logical delta stream into the externally visible Event sequence while
// maintaining the partial-message snapshot. Text and thinking deltas are
// written through to the in-flight content stub as they arrive; tool-call
// argument deltas are buffered and parsed into the stub's arguments only when
// the block ends, so until then a tool-call stub carries empty arguments.
type blockAssembler struct {
	out *AssistantMessage

	current      blockKind
	toolID       string
	toolName     string
	toolArgsBuf  string
	currentIndex int

	events chan<- Event
}

func newBlockAssembler(out *AssistantMessage, events chan<- Event) *blockAssembler {
	return &blockAssembler{out: out, events: events, currentIndex: -1}
}

// emit attaches a snapshot of the message as of this event. The consumer may
// read the event long after the assembler has moved on, so the live message
// must never be aliased into the channel.
func (a *blockAssembler) emit(e Event) {
	snapshot := a.out.Clone()
	e.Partial = &snapshot
	a.events <- e
}

func (a *blockAssembler) Start() {
	a.emit(Event{Type: EventStart})
}

// OnTextDelta appends s to the current text block, starting one if needed.
func (a *blockAssembler) OnTextDelta(s string) {
	if s == "" {
		return
	}
	if a.current != blockText {
		a.finishCurrent()
		a.startText()
	}
	a.out.Content[a.currentIndex].Text += s
	a.emit(Event{Type: EventTextDelta, ContentIndex: a.currentIndex, Delta: s})
}

func (a *blockAssembler) startText() {
	a.current = blockText
	a.currentIndex = len(a.out.Content)
	a.out.Content = append(a.out.Content, TextBlock(""))
	a.emit(Event{Type: EventTextStart, ContentIndex: a.currentIndex})
}

// OnReasoningDelta appends s to the current thinking block, starting one if
// needed. signature is recorded on the first delta and persists through End.
func (a *blockAssembler) OnReasoningDelta(s, signature string) {
	if s == "" {
		return
	}
	if a.current != blockThinking {
		a.finishCurrent()
		a.startThinking(signature)
	}
	a.out.Content[a.currentIndex].Thinking += s
	a.emit(Event{Type: EventThinkingDelta, ContentIndex: a.currentIndex, Delta: s})
}

func (a *blockAssembler) startThinking(signature string) {
	a.current = blockThinking
	a.currentIndex = len(a.out.Content)
	a.out.Content = append(a.out.Content, ThinkingBlock("", signature))
	a.emit(Event{Type: EventThinkingStart, ContentIndex: a.currentIndex})
}

// OnToolCallDelta applies a sparse per-chunk tool-call delta per the
// starting/continuation rules below.
func (a *blockAssembler) OnToolCallDelta(id, name *string, args string) {
	hasIdentity := (id != nil && *id != "") || (name != nil && *name != "")

	startNew := false
	if a.current == blockToolCall {
		if id != nil && *id != "" && a.toolID != "" && *id != a.toolID {
			startNew = true
		}
	} else if hasIdentity {
		startNew = true
	} else {
		// orphan delta (no id, no name) while no tool call is in
		// progress: no-op regardless of whether
		// arguments are present.
		return
	}

	if startNew {
		a.finishCurrent()
		newID := ""
		if id != nil {
			newID = *id
		}
		newName := ""
		if name != nil {
			newName = *name
		}
		a.startToolCall(newID, newName)
	}

	if a.current != blockToolCall {
		return
	}

	if id != nil && *id != "" {
		a.toolID = *id
		a.out.Content[a.currentIndex].ToolCallID = *id
	}
	if name != nil && *name != "" {
		a.toolName = *name
		a.out.Content[a.currentIndex].ToolCallName = *name
	}
	if args != "" {
		a.toolArgsBuf += args
		a.emit(Event{Type: EventToolCallDelta, ContentIndex: a.currentIndex, Delta: args})
	}
}

func (a *blockAssembler) startToolCall(id, name string) {
	a.current = blockToolCall
	a.toolID = id
	a.toolName = name
	a.toolArgsBuf = ""
	a.currentIndex = len(a.out.Content)
	a.out.Content = append(a.out.Content, ToolCallBlock(id, name, map[string]any{}))
	a.emit(Event{Type: EventToolCallStart, ContentIndex: a.currentIndex})
}

// OnFinishReason maps and records the provider's finish-reason string.
func (a *blockAssembler) OnFinishReason(s string) {
	a.out.StopReason = mapFinishReason(s)
}

// OnUsage replaces the assembler's usage record.
func (a *blockAssembler) OnUsage(u Usage) {
	a.out.Usage = u
}

// finishCurrent closes out whatever block is in-flight, if any.
func (a *blockAssembler) finishCurrent() {
	switch a.current {
	case blockText:
		a.emit(Event{Type: EventTextEnd, ContentIndex: a.currentIndex})
	case blockThinking:
		a.emit(Event{Type: EventThinkingEnd, ContentIndex: a.currentIndex})
	case blockToolCall:
		args := map[string]any{}
		if a.toolArgsBuf != "" {
			if err := json.Unmarshal([]byte(a.toolArgsBuf), &args); err != nil {
				args = map[string]any{}
			}
		}
		a.out.Content[a.currentIndex].ToolCallID = a.toolID
		a.out.Content[a.currentIndex].ToolCallName = a.toolName
		a.out.Content[a.currentIndex].ToolCallArgs = args
		block := a.out.Content[a.currentIndex].Clone()
		a.emit(Event{Type: EventToolCallEnd, ContentIndex: a.currentIndex, ToolCall: &block})
	default:
		return
	}
	a.current = blockNone
}

// FinishCurrent is the exported form used by drivers at end-of-stream.
func (a *blockAssembler) FinishCurrent() {
	a.finishCurrent()
}

// Done emits the terminal success event.
func (a *blockAssembler) Done() {
	a.emit(Event{Type: EventDone, SuccessReason: successReasonFromStop(a.out.StopReason)})
}

// Fail marks the stream as errored and emits the terminal error event.
func (a *blockAssembler) Fail(err error) {
	a.out.StopReason = StopReasonError
	a.out.ErrorMessage = err.Error()
	a.emit(Event{Type: EventError, ErrorReason: FailureError, Err: err})
}
