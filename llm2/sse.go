package llm2

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

const doneSentinel = "[DONE]"

// readSSE parses a chunked SSE response body: it splits body into
// \n-delimited records, strips `data: ` framing, recognizes the [DONE]
// sentinel, and parses each payload as a T via onChunk. JSON parse failures
// are silently dropped. Invalid UTF-8 byte sequences are replaced with the
// Unicode replacement character before each line is treated as a string.
func readSSE[T any](body io.Reader, onChunk func(T)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), "�")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data: ") && !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimPrefix(line, "data:")
		data = strings.TrimSpace(data)
		if data == doneSentinel {
			return nil
		}

		var chunk T
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		onChunk(chunk)
	}
	return scanner.Err()
}
