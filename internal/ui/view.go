package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"taskprog/internal/keys"
)

var pages = []keys.Page{keys.Dashboard, keys.Tasks, keys.AddTask}

func (m Model) View() string {
	header := headerStyle.Render("📋 taskprog - task progress")

	var tabs []string
	for i, p := range pages {
		name := fmt.Sprintf("[%d] %s", i+1, p)
		if p == m.page {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	if m.page == keys.EditTask && m.form != nil {
		tabs = append(tabs, activeTabStyle.Render(fmt.Sprintf("%s #%d", keys.EditTask, m.form.taskID)))
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var content string
	switch {
	case m.form != nil:
		content = m.form.view()
	case m.page == keys.Tasks:
		content = m.tasksView()
	default:
		content = m.dashboardView()
	}
	if m.confirm != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.confirmView())
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		header,
		"",
		tabRow,
		content,
		"",
		m.footerView(),
	)
}

func (m Model) dashboardView() string {
	if !m.statsLoaded {
		return lipgloss.NewStyle().Padding(1).Render("Loading statistics…")
	}
	s := m.stats

	var b strings.Builder
	b.WriteString("\nStats:\n")
	fmt.Fprintf(&b, "  • Total tasks: %d\n", s.TotalTasks)
	fmt.Fprintf(&b, "  • %s: %d\n", statusStyle("pending").Render("Pending"), s.PendingTasks)
	fmt.Fprintf(&b, "  • %s: %d\n", statusStyle("in-progress").Render("In progress"), s.InProgressTasks)
	fmt.Fprintf(&b, "  • %s: %d\n", statusStyle("completed").Render("Completed"), s.CompletedTasks)
	fmt.Fprintf(&b, "\nCompletion rate: %.1f%%\n", s.CompletionRate)
	b.WriteString(m.completion.ViewAs(s.CompletionRate / 100))
	return b.String()
}

func (m Model) tasksView() string {
	filter := "all"
	if m.filter != "" {
		filter = m.filter
	}
	label := mutedStyle.Render(fmt.Sprintf("status: %s • %d tasks", filter, len(m.tasks)))
	if len(m.tasks) == 0 {
		return label + "\n\n" + mutedStyle.Render("No tasks yet. Press ctrl+n to add one.")
	}
	return label + "\n" + m.table.View()
}

func (m Model) confirmView() string {
	prompt := fmt.Sprintf("Delete task #%d %q?", m.confirm.id, m.confirm.title)
	hint := m.help.ShortHelpView([]key.Binding{keys.Confirm.Yes, keys.Confirm.No})
	return dialogStyle.Render(prompt + "\n\n" + hint)
}

func (m Model) footerView() string {
	var row string
	if m.form != nil {
		row = m.help.ShortHelpView(keys.FormHelp())
	} else {
		row = m.help.ShortHelpView(keys.BrowseHelp(m.page == keys.Tasks))
	}

	if n, ok := m.notices.Latest(m.now()); ok {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(noticeColor(n.Level)))
		row += "\n> " + style.Render(n.Message)
	}
	return row
}
