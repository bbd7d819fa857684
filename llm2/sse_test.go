package llm2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testChunk struct {
	Value string `json:"value"`
}

func TestReadSSE_BasicRecords(t *testing.T) {
	body := "data: {\"value\":\"a\"}\n\ndata: {\"value\":\"b\"}\n\ndata: [DONE]\n\n"
	var got []string
	err := readSSE(strings.NewReader(body), func(c testChunk) {
		got = append(got, c.Value)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestReadSSE_SkipsCommentsAndBlankLines(t *testing.T) {
	body := ": heartbeat\n\ndata: {\"value\":\"a\"}\n\n\ndata: [DONE]\n\n"
	var got []string
	err := readSSE(strings.NewReader(body), func(c testChunk) {
		got = append(got, c.Value)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestReadSSE_SilentlyDropsUnparseableChunk(t *testing.T) {
	body := "data: not json\n\ndata: {\"value\":\"a\"}\n\ndata: [DONE]\n\n"
	var got []string
	err := readSSE(strings.NewReader(body), func(c testChunk) {
		got = append(got, c.Value)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestReadSSE_StopsAtDoneSentinel(t *testing.T) {
	body := "data: {\"value\":\"a\"}\n\ndata: [DONE]\n\ndata: {\"value\":\"never\"}\n\n"
	var got []string
	err := readSSE(strings.NewReader(body), func(c testChunk) {
		got = append(got, c.Value)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}
