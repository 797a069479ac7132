package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
	"github.com/Sam4587/Workspace-sub000/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("contentflow • %s", m.title()))
	sections = append(sections, title)

	progress := components.NewProgress(m.TotalSteps()).View(m.SettledSteps())
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries := components.NewStepList(m.order, m.steps).Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"))
		sections = append(sections, renderStepEntries(entries, m.now))
	}

	if len(m.notices) > 0 {
		lines := make([]string, 0, len(m.notices))
		for _, n := range m.notices {
			lines = append(lines, notify.Render(n.Level, n.Message))
		}
		sections = append(sections, sectionStyle.Render("Notifications"), strings.Join(lines, "\n"))
	}

	if m.retryDelay > 0 && !m.finished {
		sections = append(sections, pendingStyle.Render(fmt.Sprintf("Retry pass %d in %s", m.retryPasses, m.retryDelay.Truncate(time.Millisecond))))
	}

	counts := m.counts()
	summary := components.NewSummary(components.SummaryData{
		Total:       m.TotalSteps(),
		Completed:   counts[workflow.StatusCompleted],
		Skipped:     counts[workflow.StatusSkipped],
		Failed:      counts[workflow.StatusFailed],
		RetryPasses: m.retryPasses,
		Finished:    m.finished,
		Cancelled:   m.cancelled,
		Success:     m.success,
		Message:     m.message,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStepEntries(entries []components.StepEntry, now time.Time) string {
	var lines []string
	for _, entry := range entries {
		step := entry.Step
		icon := StatusIcon(step.Status)
		label := step.Name
		if label == "" {
			label = entry.ID
		}
		line := fmt.Sprintf(" %s %s", icon, label)
		if step.RetryCount > 0 {
			line = fmt.Sprintf("%s [retry %d]", line, step.RetryCount)
		}
		if strings.TrimSpace(step.Error) != "" {
			line = fmt.Sprintf("%s: %s", line, failureStyle.Render(step.Error))
		}
		switch {
		case step.Duration > 0:
			line = fmt.Sprintf("%s (%s)", line, step.Duration.Truncate(10*time.Millisecond))
		case step.Status == workflow.StatusRunning && !step.StartTime.IsZero() && now.After(step.StartTime):
			line = fmt.Sprintf("%s (running %s)", line, now.Sub(step.StartTime).Truncate(100*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if strings.TrimSpace(m.name) != "" {
		return m.name
	}
	return "Workflow"
}

// StatusIcon returns the glyph representing a step status.
func StatusIcon(status workflow.StepStatus) string {
	switch status {
	case workflow.StatusCompleted:
		return successStyle.Render("✓")
	case workflow.StatusRunning:
		return runningStyle.Render("⏳")
	case workflow.StatusFailed:
		return failureStyle.Render("✗")
	case workflow.StatusSkipped:
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
