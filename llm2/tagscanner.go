package llm2

import "strings"

const thinkOpenTag = "<think>"
const thinkCloseTag = "</think>"

// TagFragmentType distinguishes plain text from recovered thinking content.
type TagFragmentType string

const (
	TagFragmentText     TagFragmentType = "text"
	TagFragmentThinking TagFragmentType = "thinking"
)

// TagFragment is one piece of output from TagScanner.
type TagFragment struct {
	Type TagFragmentType
	Text string
}

// TagScanner incrementally recovers <think>...</think> markers from a
// sequence of plaintext chunks, robust to the markers being split across
// chunk boundaries.
type TagScanner struct {
	buffer     strings.Builder
	inThinking bool
}

// Feed appends chunk to the internal buffer and returns whatever fragments
// can be emitted without risking a false split of a tag across this and a
// future chunk.
func (s *TagScanner) Feed(chunk string) []TagFragment {
	if chunk == "" {
		return nil
	}
	s.buffer.WriteString(chunk)
	return s.drain(false)
}

// Flush emits whatever remains in the buffer, typed as thinking if currently
// inside a block, else as text, and resets mode to text.
func (s *TagScanner) Flush() []TagFragment {
	frags := s.drain(true)
	remaining := s.buffer.String()
	s.buffer.Reset()
	if remaining != "" {
		typ := TagFragmentText
		if s.inThinking {
			typ = TagFragmentThinking
		}
		frags = append(frags, TagFragment{Type: typ, Text: remaining})
	}
	s.inThinking = false
	return frags
}

// drain repeatedly extracts complete fragments from the buffer until no
// more progress can be made. When final is true (flush), there is no need
// to hold back a partial-tag suffix, but callers still follow with their
// own trailing emission so drain only handles the complete-marker case.
func (s *TagScanner) drain(final bool) []TagFragment {
	var frags []TagFragment
	for {
		buf := s.buffer.String()
		if s.inThinking {
			idx := strings.Index(buf, thinkCloseTag)
			if idx >= 0 {
				if idx > 0 {
					frags = append(frags, TagFragment{Type: TagFragmentThinking, Text: buf[:idx]})
				}
				rest := buf[idx+len(thinkCloseTag):]
				s.buffer.Reset()
				s.buffer.WriteString(rest)
				s.inThinking = false
				continue
			}
			if final {
				return frags
			}
			suffixLen := partialTagSuffixLen(buf, thinkCloseTag)
			emit := buf[:len(buf)-suffixLen]
			if emit != "" {
				frags = append(frags, TagFragment{Type: TagFragmentThinking, Text: emit})
				s.buffer.Reset()
				s.buffer.WriteString(buf[len(buf)-suffixLen:])
			}
			return frags
		}

		idx := strings.Index(buf, thinkOpenTag)
		if idx >= 0 {
			if idx > 0 {
				frags = append(frags, TagFragment{Type: TagFragmentText, Text: buf[:idx]})
			}
			rest := buf[idx+len(thinkOpenTag):]
			s.buffer.Reset()
			s.buffer.WriteString(rest)
			s.inThinking = true
			continue
		}
		if final {
			return frags
		}
		suffixLen := partialTagSuffixLen(buf, thinkOpenTag)
		emit := buf[:len(buf)-suffixLen]
		if emit != "" {
			frags = append(frags, TagFragment{Type: TagFragmentText, Text: emit})
			s.buffer.Reset()
			s.buffer.WriteString(buf[len(buf)-suffixLen:])
		}
		return frags
	}
}

// partialTagSuffixLen returns the length of the longest proper suffix of
// input that is also a prefix of tag. Used to hold back ambiguous chunk
// boundaries: if the tail of the buffer could be the start of tag, we must
// not emit it yet.
func partialTagSuffixLen(input, tag string) int {
	maxLen := len(input)
	if len(tag)-1 < maxLen {
		maxLen = len(tag) - 1
	}
	for l := maxLen; l > 0; l-- {
		if strings.HasSuffix(input, tag[:l]) {
			return l
		}
	}
	return 0
}
