package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"lagscope-backend/internal/analysis"
)

// CSVHeader is the fixed header of an exported metrics CSV.
var CSVHeader = []string{"Timestamp", "Memory Usage (%)", "CPU Usage (%)"}

// ExportCSV renders the aligned usage samples as CSV text, one row per
// sample. This is the one place the system produces a file instead of
// consuming one; it operates only on already-fetched data.
func ExportCSV(m analysis.PerformanceMetrics) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return "", err
	}
	for i := 0; i < SampleCount(m); i++ {
		row := []string{
			m.Timestamps[i],
			formatFloat(m.MemoryUsage[i]),
			formatFloat(m.CPUUsage[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
