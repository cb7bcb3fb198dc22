package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"lagscope-backend/internal/llm"
	"lagscope-backend/internal/shared/telemetry"
)

// Service runs one upload through the external model and validates the
// structured result.
type Service struct {
	LLM            llm.Client
	Timeout        time.Duration
	Provider       string
	Model          string
	MaxPromptChars int
	Version        string
}

// Analyze reads the uploaded log, prompts the model, and returns the
// validated result JSON. The model call is bounded by the configured timeout;
// a stalled upstream surfaces as ErrLLMTimeout rather than an unbounded wait.
func (s *Service) Analyze(ctx context.Context, fileName, contentType string, file io.Reader) (json.RawMessage, error) {
	if !IsCSV(fileName, contentType) {
		return nil, ErrNotCSV
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	logText := strings.TrimSpace(string(content))
	if logText == "" {
		return nil, ErrEmptyLog
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.LLM.AnalyzeLog(callCtx, llm.AnalyzeInput{
		LogText:  logText,
		FileName: fileName,
		MaxChars: s.MaxPromptChars,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrLLMTimeout
		}
		return nil, err
	}

	result, err := ValidateResult(raw)
	if err != nil {
		return nil, err
	}

	validated, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	telemetry.Info("analysis.complete", map[string]any{
		"provider":    s.Provider,
		"model":       s.Model,
		"version":     s.Version,
		"file":        fileName,
		"log_chars":   len(logText),
		"score":       result.OverallScore,
		"status":      string(result.Status),
		"issues":      len(result.Issues),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})

	return validated, nil
}

// IsCSV reports whether the upload's declared type or extension indicates a
// CSV log. Anything else never reaches the model.
func IsCSV(fileName, contentType string) bool {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch strings.ToLower(mediaType) {
	case "text/csv", "application/csv", "application/vnd.ms-excel":
		return true
	}
	return false
}
