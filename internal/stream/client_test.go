package stream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeStreamsChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/summarize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://youtube.com/watch?v=abc", req.VideoURL)
		assert.True(t, req.UseLocal)

		w.Header().Set("Content-Type", "text/plain")
		for _, part := range []string{"# Summary\n", "- one\n", "- two"} {
			_, _ = io.WriteString(w, part)
			w.(http.Flusher).Flush()
		}
	}))
	defer srv.Close()

	var got strings.Builder
	client := NewClient(srv.URL+"/", time.Second)
	err := client.Summarize(context.Background(), Request{VideoURL: "https://youtube.com/watch?v=abc", UseLocal: true}, func(chunk string) {
		got.WriteString(chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "# Summary\n- one\n- two", got.String())
	assert.Equal(t, srv.URL, client.ServerURL())
}

func TestSummarizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Transcript error: disabled"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Summarize(context.Background(), Request{VideoURL: "x"}, func(string) {
		t.Fatal("no chunks expected")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Transcript error")
}

func TestSummarizeCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "partial")
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	err := NewClient(srv.URL, 0).Summarize(ctx, Request{VideoURL: "x"}, func(chunk string) {
		cancel()
	})
	require.Error(t, err)
	assert.Error(t, ctx.Err())
}

func TestCompleteParsesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama", req.Model)
		assert.True(t, req.Stream)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "text/event-stream")
		events := []string{
			": keep-alive\n\n",
			`data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n\n",
			`data: {"choices":[{"delta":{"content":"<think>hm</think>\n"}}]}` + "\n\n",
			`data: {"choices":[{"delta":{"content":"# Title"}}]}` + "\n\n",
			"data: not json\n\n",
			`data: {"choices":[{"message":{"content":"\n- done"}}]}` + "\n\n",
			"data: [DONE]\n\n",
			`data: {"choices":[{"delta":{"content":"ignored"}}]}` + "\n\n",
		}
		for _, ev := range events {
			_, _ = io.WriteString(w, ev)
			w.(http.Flusher).Flush()
		}
	}))
	defer srv.Close()

	var chunks []string
	ep := Endpoint{URL: srv.URL, Model: "llama", APIKey: "secret"}
	err := NewClient("", time.Second).Complete(context.Background(), ep, []Message{{Role: "user", Content: "summarize"}}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"<think>hm</think>\n", "# Title", "\n- done"}, chunks)
}

func TestCompleteRequiresEndpoint(t *testing.T) {
	err := NewClient("", time.Second).Complete(context.Background(), Endpoint{URL: "http://x"}, nil, func(string) {})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

// splitReader returns one byte slice per Read call
type splitReader struct {
	parts [][]byte
}

func (r *splitReader) Read(p []byte) (int, error) {
	if len(r.parts) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.parts[0])
	r.parts = r.parts[1:]
	return n, nil
}

func TestReadTextHoldsSplitRunes(t *testing.T) {
	bullet := []byte("• item")
	r := &splitReader{parts: [][]byte{bullet[:1], bullet[1:2], bullet[2:]}}

	var chunks []string
	require.NoError(t, readText(r, func(chunk string) { chunks = append(chunks, chunk) }))
	assert.Equal(t, []string{"• item"}, chunks)
}

func TestCompletePrefix(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		expected int
	}{
		{"ascii", []byte("abc"), 3},
		{"complete rune", []byte("a•"), 4},
		{"partial rune", []byte("a•")[:3], 1},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, completePrefix(tt.in))
		})
	}
}

func TestSSEReader(t *testing.T) {
	input := "event: message\ndata: line one\ndata: line two\n\n:comment\n\ndata: last"
	r := newSSEReader(strings.NewReader(input))

	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", ev.Data)

	ev, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "last", ev.Data)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}
