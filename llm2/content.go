package llm2

import "github.com/invopop/jsonschema"

// Role identifies the speaker of a Message.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolResult Role = "tool_result"
)

// ContentBlockType enumerates the tagged variants of ContentBlock.
type ContentBlockType string

const (
	ContentBlockTypeText     ContentBlockType = "text"
	ContentBlockTypeThinking ContentBlockType = "thinking"
	ContentBlockTypeImage    ContentBlockType = "image"
	ContentBlockTypeToolCall ContentBlockType = "tool_call"
)

// ContentBlock is the tagged variant covering text, thinking, image, or
// tool-call. Only the fields matching Type are meaningful.
type ContentBlock struct {
	Type ContentBlockType

	// text
	Text          string
	TextSignature string

	// thinking
	Thinking          string
	ThinkingSignature string

	// image
	ImageData     []byte
	ImageMimeType string

	// tool_call
	ToolCallID       string
	ToolCallName     string
	ToolCallArgs     map[string]any
	ThoughtSignature string
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentBlockTypeText, Text: text}
}

func ThinkingBlock(text, signature string) ContentBlock {
	return ContentBlock{Type: ContentBlockTypeThinking, Thinking: text, ThinkingSignature: signature}
}

func ImageBlock(data []byte, mimeType string) ContentBlock {
	return ContentBlock{Type: ContentBlockTypeImage, ImageData: data, ImageMimeType: mimeType}
}

func ToolCallBlock(id, name string, args map[string]any) ContentBlock {
	return ContentBlock{Type: ContentBlockTypeToolCall, ToolCallID: id, ToolCallName: name, ToolCallArgs: args}
}

func (b ContentBlock) Clone() ContentBlock {
	clone := b
	if b.ImageData != nil {
		clone.ImageData = append([]byte(nil), b.ImageData...)
	}
	if b.ToolCallArgs != nil {
		args := make(map[string]any, len(b.ToolCallArgs))
		for k, v := range b.ToolCallArgs {
			args[k] = v
		}
		clone.ToolCallArgs = args
	}
	return clone
}

// UserContentBlockType enumerates the blocks a user message may carry.
type UserContentBlockType string

const (
	UserContentText  UserContentBlockType = "text"
	UserContentImage UserContentBlockType = "image"
)

// UserContentBlock is text or an image reference within a user message.
type UserContentBlock struct {
	Type      UserContentBlockType
	Text      string
	ImageData []byte
	ImageMime string
}

// ToolResultContentType enumerates the blocks a tool-result message carries.
type ToolResultContentType string

const (
	ToolResultText  ToolResultContentType = "text"
	ToolResultImage ToolResultContentType = "image"
)

type ToolResultContentBlock struct {
	Type      ToolResultContentType
	Text      string
	ImageData []byte
	ImageMime string
}

// UserMessage is a user-role conversation turn: plain text or mixed
// text/image blocks.
type UserMessage struct {
	Content   []UserContentBlock
	Timestamp int64
}

// AssistantMessage is the complete model output for one turn.
type AssistantMessage struct {
	Content      []ContentBlock
	API          Api
	Provider     Provider
	Model        string
	Usage        Usage
	StopReason   StopReason
	ErrorMessage string
	Timestamp    int64
}

// Clone returns a deep copy whose content blocks share no mutable state with
// the original.
func (m AssistantMessage) Clone() AssistantMessage {
	clone := m
	if m.Content != nil {
		content := make([]ContentBlock, len(m.Content))
		for i, b := range m.Content {
			content[i] = b.Clone()
		}
		clone.Content = content
	}
	return clone
}

// ToolResultMessage reports the outcome of invoking a tool back to the model.
type ToolResultMessage struct {
	ToolCallID string
	ToolName   string
	Content    []ToolResultContentBlock
	Details    map[string]any
	IsError    bool
	Timestamp  int64
}

// MessageKind identifies which message variant Message wraps.
type MessageKind string

const (
	MessageKindUser       MessageKind = "user"
	MessageKindAssistant  MessageKind = "assistant"
	MessageKindToolResult MessageKind = "tool_result"
)

// Message is the tagged union over UserMessage / AssistantMessage /
// ToolResultMessage that makes up a Context's message sequence.
type Message struct {
	Kind       MessageKind
	User       *UserMessage
	Assistant  *AssistantMessage
	ToolResult *ToolResultMessage
}

func NewUserMessage(m UserMessage) Message {
	return Message{Kind: MessageKindUser, User: &m}
}

func NewAssistantMessage(m AssistantMessage) Message {
	return Message{Kind: MessageKindAssistant, Assistant: &m}
}

func NewToolResultMessage(m ToolResultMessage) Message {
	return Message{Kind: MessageKindToolResult, ToolResult: &m}
}

// Tool describes a callable function exposed to the model. Parameters is a
// JSON schema for the tool's arguments, serialized verbatim onto the wire.
type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// Context is the conversation state handed to a Provider Stream Driver.
type Context struct {
	SystemPrompt string
	Messages     []Message
	Tools        []Tool
}
