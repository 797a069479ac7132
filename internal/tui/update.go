package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.now = msg.At
		return m, tick()
	case LoadedMsg:
		if msg.Name != "" {
			m.name = msg.Name
		}
		for _, step := range msg.Steps {
			m.ensureStep(step.ID)
			m.steps[step.ID] = step
		}
		return m, nil
	case StepStartMsg:
		m.ensureStep(msg.ID)
		step := m.steps[msg.ID]
		step.Status = workflow.StatusRunning
		step.Error = ""
		if msg.Name != "" {
			step.Name = msg.Name
		}
		if msg.Attempt > 0 {
			step.RetryCount = msg.Attempt - 1
		}
		step.StartTime = msg.Time
		m.steps[msg.ID] = step
		return m, nil
	case StepDoneMsg:
		if msg.ID == "" {
			return m, nil
		}
		m.ensureStep(msg.ID)
		step := m.steps[msg.ID]
		step.Status = msg.Status
		step.Error = msg.Error
		if msg.Duration > 0 {
			step.Duration = msg.Duration
		}
		m.steps[msg.ID] = step
		return m, nil
	case RetryMsg:
		m.retryPasses = msg.Pass
		m.retryDelay = msg.Delay
		return m, nil
	case NoticeMsg:
		m.pushNotice(msg.Notice)
		return m, nil
	case RunFinishedMsg:
		for _, step := range msg.Steps {
			m.ensureStep(step.ID)
			m.steps[step.ID] = step
		}
		m.finished = true
		m.success = msg.Success
		m.message = msg.Message
		m.retryPasses = msg.RetryPasses
		m.retryDelay = 0
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			if m.cancel != nil {
				m.cancel()
			}
			m.cancelled = true
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
