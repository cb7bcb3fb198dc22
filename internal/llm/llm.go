package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts the generative-model providers used for log analysis.
type Client interface {
	AnalyzeLog(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs needed for one analysis. MaxChars bounds
// how much of the log reaches the prompt; zero means the default.
type AnalyzeInput struct {
	LogText  string
	FileName string
	MaxChars int
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// AnalyzeLog returns ErrNotImplemented.
func (PlaceholderClient) AnalyzeLog(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
