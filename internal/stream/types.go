package stream

// Request is the body posted to the summarization server
type Request struct {
	VideoURL string `json:"video_url"`
	UseLocal bool   `json:"use_local"`
}

// Message is one chat message sent to an OpenAI-compatible endpoint
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// completionChunk covers both streamed deltas and whole-message responses
type completionChunk struct {
	Choices []struct {
		Delta   *chunkContent `json:"delta"`
		Message *chunkContent `json:"message"`
	} `json:"choices"`
}

type chunkContent struct {
	Content string `json:"content"`
}

// content returns the text carried by the first choice
func (c *completionChunk) content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	choice := c.Choices[0]
	if choice.Delta != nil && choice.Delta.Content != "" {
		return choice.Delta.Content
	}
	if choice.Message != nil {
		return choice.Message.Content
	}
	return ""
}
