package llm

import "fmt"

// MaxLogChars is the default bound on how much of the uploaded log reaches
// the prompt, used when no explicit limit is configured.
const MaxLogChars = 5000

const analystInstruction = `You are a professional game performance analyst. Analyze the following CSV log of game performance metrics. Identify causes of lag or stutter.`

const schemaInstruction = `Respond with a single JSON object and nothing else, matching this shape exactly:
{
  "overallScore": number between 0 and 100,
  "status": one of "excellent" | "good" | "fair" | "poor",
  "issues": [{"id", "title", "description", "severity": "low"|"medium"|"high", "category", "impact"}],
  "metrics": {
    "averageFps": number,
    "frameTimeVariance": number,
    "fps": [number], "memoryUsage": [number], "cpuUsage": [number],
    "timestamps": [ISO 8601 string, aligned by index with the usage series],
    "lagSpikes": [{"timestamp", "duration": milliseconds, "severity": number between 0 and 10}]
  },
  "recommendations": [{"id", "title", "description", "priority": "low"|"medium"|"high", "category", "icon", "learnmore": valid link to a real website related to the recommendation or issue}]
}`

// TruncateLog bounds the decoded log text to limit characters; a
// non-positive limit falls back to MaxLogChars.
func TruncateLog(text string, limit int) string {
	if limit <= 0 {
		limit = MaxLogChars
	}
	if len(text) > limit {
		return text[:limit]
	}
	return text
}

// BuildPrompt renders the analyst instruction plus the fenced log excerpt,
// truncated to maxChars.
func BuildPrompt(logText string, maxChars int) string {
	return fmt.Sprintf("%s\n\n```csv\n%s\n```\n", analystInstruction, TruncateLog(logText, maxChars))
}

// SchemaInstruction returns the textual schema contract for providers that
// cannot accept a structured response schema out of band.
func SchemaInstruction() string {
	return schemaInstruction
}
