package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total       int
	Completed   int
	Skipped     int
	Failed      int
	RetryPasses int
	Finished    bool
	Cancelled   bool
	Success     bool
	Message     string
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		line := fmt.Sprintf("Steps: %d/%d completed", s.data.Completed, s.data.Total)
		if s.data.Skipped > 0 {
			line += fmt.Sprintf(", %d skipped", s.data.Skipped)
		}
		if s.data.Failed > 0 {
			line += fmt.Sprintf(", %d failed", s.data.Failed)
		}
		lines = append(lines, line)
	}
	if s.data.RetryPasses > 0 {
		lines = append(lines, fmt.Sprintf("Retry passes: %d", s.data.RetryPasses))
	}

	switch {
	case s.data.Cancelled:
		lines = append(lines, "Workflow cancelled")
	case !s.data.Finished:
	case s.data.Success:
		lines = append(lines, "Workflow completed successfully")
	case s.data.Message != "":
		lines = append(lines, "Workflow failed: "+s.data.Message)
	default:
		lines = append(lines, "Workflow finished with failed steps")
	}

	return strings.Join(lines, "\n")
}
