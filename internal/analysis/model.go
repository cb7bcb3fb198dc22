package analysis

// AnalysisResult is the structured output of one performance analysis. A
// result is produced once per upload and only ever replaced wholesale, never
// partially mutated.
type AnalysisResult struct {
	OverallScore    float64            `json:"overallScore"`
	Status          Status             `json:"status"`
	Issues          []Issue            `json:"issues"`
	Metrics         PerformanceMetrics `json:"metrics"`
	Recommendations []Recommendation   `json:"recommendations"`
}

// Status grades the overall performance of the analyzed log.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
	StatusPoor      Status = "poor"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusExcellent, StatusGood, StatusFair, StatusPoor:
		return true
	}
	return false
}

// Severity ranks issues and recommendation priorities.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether sv is one of the three known severities.
func (sv Severity) Valid() bool {
	switch sv {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Weight orders severities high > medium > low for sorting.
func (sv Severity) Weight() int {
	switch sv {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Issue is one detected performance problem.
type Issue struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Impact      string   `json:"impact"`
}

// Recommendation is one suggested remediation.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Severity `json:"priority"`
	Category    string   `json:"category"`
	Icon        Icon     `json:"icon"`
	LearnMore   string   `json:"learnmore"`
}

// PerformanceMetrics carries the per-sample series backing the dashboard
// charts. Timestamps align by index with the usage series.
type PerformanceMetrics struct {
	AverageFPS        float64    `json:"averageFps"`
	FPS               []float64  `json:"fps"`
	FrameTimeVariance float64    `json:"frameTimeVariance"`
	MemoryUsage       []float64  `json:"memoryUsage"`
	CPUUsage          []float64  `json:"cpuUsage"`
	Timestamps        []string   `json:"timestamps"`
	LagSpikes         []LagSpike `json:"lagSpikes"`
}

// LagSpike is a detected short interval of abnormal frame delay.
type LagSpike struct {
	Timestamp string  `json:"timestamp"`
	Duration  float64 `json:"duration"`
	Severity  float64 `json:"severity"`
}
