package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/notify"
)

// maxNotices bounds how many notices are kept on screen.
const maxNotices = 5

// LoadedMsg declares the workflow's steps once its definition is loaded.
type LoadedMsg struct {
	Name  string
	Steps []workflow.StepSnapshot
}

// StepStartMsg indicates a step has started executing.
type StepStartMsg struct {
	ID      string
	Name    string
	Attempt int
	Time    time.Time
}

// StepDoneMsg reports that a step settled.
type StepDoneMsg struct {
	ID       string
	Status   workflow.StepStatus
	Error    string
	Duration time.Duration
}

// RetryMsg announces a retry pass after a backoff delay.
type RetryMsg struct {
	Pass  int
	Steps int
	Delay time.Duration
}

// NoticeMsg carries a notification produced by the engine.
type NoticeMsg struct {
	Notice notify.Notice
}

// RunFinishedMsg ends the session.
type RunFinishedMsg struct {
	Success     bool
	Message     string
	Steps       []workflow.StepSnapshot
	RetryPasses int
}

// tickInterval paces the refresh of the running step's elapsed time.
const tickInterval = 250 * time.Millisecond

type tickMsg struct {
	At time.Time
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(at time.Time) tea.Msg { return tickMsg{At: at} })
}

// Model contains the Bubbletea state for the run view.
type Model struct {
	name        string
	steps       map[string]workflow.StepSnapshot
	order       []string
	notices     []notify.Notice
	retryPasses int
	retryDelay  time.Duration
	finished    bool
	cancelled   bool
	success     bool
	message     string
	cancel      context.CancelFunc
	now         time.Time
}

// NewModel constructs a model for the workflow's declared steps. cancel is
// invoked when the user interrupts the run and may be nil.
func NewModel(name string, steps []workflow.StepSnapshot, cancel context.CancelFunc) Model {
	m := Model{
		name:   name,
		steps:  make(map[string]workflow.StepSnapshot, len(steps)),
		order:  make([]string, 0, len(steps)),
		cancel: cancel,
	}
	for _, step := range steps {
		m.ensureStep(step.ID)
		m.steps[step.ID] = step
	}
	return m
}

// Init starts the elapsed-time ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// TotalSteps returns the total number of steps tracked by the model.
func (m Model) TotalSteps() int {
	return len(m.order)
}

// SettledSteps returns the number of completed or skipped steps.
func (m Model) SettledSteps() int {
	counts := m.counts()
	return counts[workflow.StatusCompleted] + counts[workflow.StatusSkipped]
}

// IsFinished reports whether the run has ended.
func (m Model) IsFinished() bool {
	return m.finished
}

// Cancelled reports whether the user interrupted the run.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) counts() map[workflow.StepStatus]int {
	snaps := make([]workflow.StepSnapshot, 0, len(m.order))
	for _, id := range m.order {
		snaps = append(snaps, m.steps[id])
	}
	return workflow.CountByStatus(snaps)
}

func (m *Model) ensureStep(id string) {
	if id == "" {
		return
	}
	if _, exists := m.steps[id]; !exists {
		m.steps[id] = workflow.StepSnapshot{ID: id, Name: id, Status: workflow.StatusPending}
		m.order = append(m.order, id)
	}
}

func (m *Model) pushNotice(n notify.Notice) {
	m.notices = append(m.notices, n)
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}
