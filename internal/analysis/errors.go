package analysis

import "errors"

var (
	ErrNotCSV         = errors.New("file is not a CSV log")
	ErrEmptyLog       = errors.New("log is empty")
	ErrLLMTimeout     = errors.New("model call timed out")
	ErrSchemaMismatch = errors.New("model output does not match the analysis schema")
)
