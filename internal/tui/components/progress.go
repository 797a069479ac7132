package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders how many steps have settled, as a count, a rounded
// percentage and a bar.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for the given total.
func NewProgress(total int) Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return Progress{bar: bar, total: total}
}

// Percent returns settled as a rounded percentage of the total, or 0 when
// there are no steps.
func (p Progress) Percent(settled int) int {
	if p.total <= 0 {
		return 0
	}
	return int(math.Round(float64(settled) / float64(p.total) * 100))
}

// View renders the progress bar for the provided settled count.
func (p Progress) View(settled int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(settled)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d %3d%%", settled, p.total, p.Percent(settled)))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
