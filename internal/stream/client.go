// Package stream delivers summary text as it is generated, either from the
// summarization server (a plain text streaming body) or directly from an
// OpenAI-compatible chat completions endpoint (Server-Sent Events).
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gubarz/summd/internal/log"
)

const (
	summarizePath  = "/summarize"
	completionPath = "/v1/chat/completions"
	readSize       = 4096
	maxErrorBody   = 4096
)

var (
	// ErrStatus is wrapped by errors for non-2xx responses
	ErrStatus = errors.New("unexpected status")
	// ErrNotConfigured is returned when a direct endpoint lacks a URL or model
	ErrNotConfigured = errors.New("endpoint not configured")
)

// ChunkFunc receives each piece of text in arrival order
type ChunkFunc func(chunk string)

// Endpoint describes an OpenAI-compatible server for direct mode
type Endpoint struct {
	URL    string
	Model  string
	APIKey string
}

// Client issues streaming requests
type Client struct {
	httpClient *http.Client
	serverURL  string
}

// NewClient creates a client for the summarization server at serverURL.
// A zero timeout means no overall limit; the context still applies.
func NewClient(serverURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		serverURL:  strings.TrimRight(serverURL, "/"),
	}
}

// ServerURL returns the configured server base URL
func (c *Client) ServerURL() string {
	return c.serverURL
}

// Summarize asks the server to summarize a video and streams the response
// body to onChunk as it arrives.
func (c *Client) Summarize(ctx context.Context, req Request, onChunk ChunkFunc) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	log.Debug("http: POST %s%s url=%s local=%t", c.serverURL, summarizePath, req.VideoURL, req.UseLocal)
	resp, err := c.post(ctx, c.serverURL+summarizePath, body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readText(resp.Body, onChunk)
}

// Complete streams a chat completion from an OpenAI-compatible endpoint,
// delivering each content delta to onChunk.
func (c *Client) Complete(ctx context.Context, ep Endpoint, messages []Message, onChunk ChunkFunc) error {
	if ep.URL == "" || ep.Model == "" {
		return fmt.Errorf("%w: url and model are required", ErrNotConfigured)
	}

	body, err := json.Marshal(completionRequest{Model: ep.Model, Messages: messages, Stream: true})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	headers := map[string]string{"Accept": "text/event-stream"}
	if ep.APIKey != "" {
		headers["Authorization"] = "Bearer " + ep.APIKey
	}

	url := strings.TrimRight(ep.URL, "/") + completionPath
	log.Debug("http: POST %s model=%s", url, ep.Model)
	resp, err := c.post(ctx, url, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readEvents(resp.Body, onChunk)
}

func (c *Client) post(ctx context.Context, url string, body []byte, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	log.Debug("http: POST %s -> %d", url, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(errBody)))
	}
	return resp, nil
}

// readText forwards a streaming body in read-sized chunks. A multi-byte rune
// split across reads is held back until it is complete.
func readText(r io.Reader, onChunk ChunkFunc) error {
	buf := make([]byte, readSize)
	var pending []byte

	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			cut := completePrefix(pending)
			if cut > 0 {
				onChunk(string(pending[:cut]))
				pending = append(pending[:0], pending[cut:]...)
			}
		}
		if err == io.EOF {
			if len(pending) > 0 {
				onChunk(string(pending))
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading stream: %w", err)
		}
	}
}

// completePrefix returns the length of b without a trailing incomplete rune
func completePrefix(b []byte) int {
	// a rune is at most utf8.UTFMax bytes, so only the tail needs checking
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if utf8.FullRune(b[i:]) {
			return len(b)
		}
		return i
	}
	return len(b)
}

func readEvents(r io.Reader, onChunk ChunkFunc) error {
	reader := newSSEReader(r)
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading events: %w", err)
		}

		data := strings.TrimSpace(ev.Data)
		if data == "[DONE]" {
			return nil
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			log.Warn("sse: skipping undecodable event: %v", err)
			continue
		}
		if text := chunk.content(); text != "" {
			onChunk(text)
		}
	}
}
