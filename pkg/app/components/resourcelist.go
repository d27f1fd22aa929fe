package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/data"
)

// ResourceList renders resources as selectable cards.
type ResourceList struct {
	Items         []data.Resource
	SelectedIndex int
	Width         int
	Height        int
	// Empty is shown when there are no items.
	Empty string
	// Details is the number of fields shown under each name.
	Details int
}

func NewResourceList() *ResourceList {
	return &ResourceList{
		Items:   []data.Resource{},
		Width:   80,
		Height:  20,
		Empty:   "Nothing to show",
		Details: 2,
	}
}

func (l *ResourceList) SetItems(items []data.Resource) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *ResourceList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *ResourceList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *ResourceList) Selected() data.Resource {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return l.Items[l.SelectedIndex]
}

func (l *ResourceList) View() string {
	if len(l.Items) == 0 {
		msg := styles.MutedStyle.Render(l.Empty)
		return lipgloss.Place(l.Width, l.Height/2, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	for i, item := range l.Items {
		selected := i == l.SelectedIndex
		nameStyle := styles.TextStyle
		if selected {
			nameStyle = styles.SelectedStyle
		}

		lines := []string{nameStyle.Render(item.DisplayName())}
		if summary := Summary(item.Fields(), l.Details); summary != "" {
			lines = append(lines, styles.MutedStyle.Render(summary))
		}

		b.WriteString(styles.Card(selected).Width(max(l.Width-4, 10)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary joins the first n fields as "Label: value" pairs.
func Summary(fields []data.Field, n int) string {
	if n > len(fields) {
		n = len(fields)
	}
	parts := make([]string, 0, n)
	for _, f := range fields[:n] {
		parts = append(parts, f.Label+": "+f.Value)
	}
	return strings.Join(parts, " • ")
}
