package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/lista/internal/cli/styles"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/taskview"
	"github.com/thenoetrevino/lista/internal/tui/state"
)

// View renders the breadcrumb bar, both panes and the status line
func (m Model) View() string {
	bodyHeight := max(m.height-4, 5)

	tree := m.treePane()
	var right string
	if m.detail != nil {
		right = m.viewport.View()
	} else {
		right = m.taskPane()
	}

	treeStyle, taskStyle := theme.pane, theme.pane
	if m.focus == paneTree {
		treeStyle = theme.focusedPane
	} else {
		taskStyle = theme.focusedPane
	}
	rightWidth := max(m.width-treeWidth-4, 20)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Width(treeWidth).Height(bodyHeight).Render(tree),
		taskStyle.Width(rightWidth).Height(bodyHeight).Render(right),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.breadcrumbBar(), body, m.statusLine())
}

func (m Model) breadcrumbBar() string {
	if len(m.crumbs) == 0 {
		return theme.muted.Render(m.path)
	}
	labels := make([]string, len(m.crumbs))
	for i, c := range m.crumbs {
		labels[i] = c.Label
		if c.Current {
			labels[i] = theme.header.Render(c.Label)
		}
	}
	return strings.Join(labels, theme.muted.Render(" › "))
}

func (m Model) statusLine() string {
	if n, ok := m.notifications.Latest(); ok {
		if n.Level == state.LevelError {
			return theme.err.Render(n.Message)
		}
		return theme.info.Render(n.Message)
	}
	return m.help.View(m.keys)
}

func (m Model) treePane() string {
	var b strings.Builder
	if m.sidebar != nil && len(m.sidebar.Favorites) > 0 {
		b.WriteString(theme.section.Render("Favorites") + "\n")
		for _, f := range m.sidebar.Favorites {
			b.WriteString(styles.FavoriteStyle.Render("★ ") + f.Name + "\n")
		}
		b.WriteString("\n")
	}
	if m.sidebar == nil {
		b.WriteString(theme.muted.Render("Loading..."))
		return b.String()
	}
	if len(m.rows) == 0 {
		b.WriteString(theme.muted.Render("No spaces yet"))
		return b.String()
	}
	for i, r := range m.rows {
		line := treeRow(r)
		switch {
		case i == m.treeCursor && m.focus == paneTree:
			line = theme.selected.Render(line)
		case r.Current:
			line = theme.current.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func treeRow(r navigation.Row) string {
	marker := "•"
	if r.Kind != navigation.NodeList {
		marker = "▸"
		if r.Expanded {
			marker = "▾"
		}
	}
	name := r.Name
	if r.Favorite {
		name += " ★"
	}
	return strings.Repeat("  ", r.Depth) + marker + " " + name
}

func (m Model) taskPane() string {
	p := m.projection
	if p == nil {
		return theme.muted.Render("Loading tasks...")
	}

	var b strings.Builder
	b.WriteString(theme.header.Render(strings.ToUpper(p.Scope[:1])+p.Scope[1:]) + " ")
	b.WriteString(theme.muted.Render(fmt.Sprintf("%s · %d/%d done (%d%%)", p.View, p.Stats.Completed, p.Stats.Total, p.Stats.Percent)))
	if m.loading {
		b.WriteString(theme.muted.Render(" ⟳"))
	}
	b.WriteString("\n\n")

	if p.Empty != "" {
		b.WriteString(theme.muted.Render(p.Empty))
		return b.String()
	}

	switch p.View {
	case taskview.ViewKanban:
		b.WriteString(m.kanban(p))
	case taskview.ViewCalendar:
		b.WriteString(m.calendar(p))
	default:
		b.WriteString(m.groups(p))
	}
	return b.String()
}

// taskRow renders t, highlighted when it is under the cursor
func (m Model) taskRow(t *models.Task) string {
	line := fmt.Sprintf("%s %s", styles.RenderPriority(t.Priority), t.Title)
	if t.DueDate != nil && !t.DueDate.IsZero() {
		line += theme.muted.Render("  " + t.DueDate.Key())
	}
	if sel, ok := m.selectedTask(); ok && sel == t && m.focus == paneTasks {
		return theme.selected.Render(line)
	}
	return line
}

func (m Model) groups(p *taskview.Projection) string {
	var b strings.Builder
	for _, g := range p.Groups {
		b.WriteString(theme.section.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Tasks))) + "\n")
		if len(g.Lists) == 0 {
			for _, t := range g.Tasks {
				b.WriteString("  " + m.taskRow(t) + "\n")
			}
			continue
		}
		for _, sec := range g.Lists {
			b.WriteString("  " + theme.muted.Render(sec.Name) + "\n")
			for _, t := range sec.Tasks {
				b.WriteString("    " + m.taskRow(t) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) kanban(p *taskview.Projection) string {
	width := max((m.width-treeWidth-10)/len(p.Columns), 16)
	cols := make([]string, len(p.Columns))
	for c, col := range p.Columns {
		var b strings.Builder
		b.WriteString(styles.RenderStatus(col.Status) + theme.muted.Render(fmt.Sprintf(" %d", len(col.Tasks))) + "\n")
		for _, t := range col.Tasks {
			b.WriteString(m.taskRow(t) + "\n")
		}
		cols[c] = theme.column.Width(width).Render(b.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) calendar(p *taskview.Projection) string {
	var b strings.Builder
	b.WriteString(theme.section.Render(p.Month) + "\n")
	b.WriteString(theme.muted.Render(" Sun Mon Tue Wed Thu Fri Sat") + "\n")
	for week := 0; week < len(p.Days)/7; week++ {
		for _, d := range p.Days[week*7 : week*7+7] {
			cell := fmt.Sprintf("%3d", d.Date.Day())
			if len(d.Tasks) > 0 {
				cell = fmt.Sprintf("%2d*", d.Date.Day())
			}
			switch {
			case d.Today:
				cell = theme.current.Render(cell)
			case !d.InMonth:
				cell = theme.muted.Render(cell)
			}
			b.WriteString(" " + cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, d := range p.Days {
		if !d.InMonth || len(d.Tasks) == 0 {
			continue
		}
		b.WriteString(theme.section.Render(d.Date.Key()) + "\n")
		for _, t := range d.Tasks {
			b.WriteString("  " + m.taskRow(t) + "\n")
		}
	}
	if p.Undated > 0 {
		b.WriteString(theme.muted.Render(fmt.Sprintf("%d tasks without a due date", p.Undated)))
	}
	return b.String()
}

func renderDetail(d *taskDetail, width int) string {
	t := d.task
	var b strings.Builder
	b.WriteString(theme.header.Render(t.Title) + "\n\n")
	b.WriteString(fmt.Sprintf("Status:   %s\n", styles.RenderStatus(t.Status)))
	b.WriteString(fmt.Sprintf("Priority: %s\n", styles.RenderPriority(t.Priority)))
	b.WriteString(fmt.Sprintf("List:     %s\n", d.listName))
	if t.DueDate != nil && !t.DueDate.IsZero() {
		b.WriteString(fmt.Sprintf("Due:      %s\n", t.DueDate.Key()))
	}
	if t.Assignee != nil {
		b.WriteString(fmt.Sprintf("Assignee: %s\n", t.Assignee.Name))
	}
	b.WriteString("\n" + styles.RenderMarkdown(t.DescriptionText(), width) + "\n")

	b.WriteString(theme.section.Render(fmt.Sprintf("Comments (%d)", len(d.comments))) + "\n")
	for _, c := range d.comments {
		b.WriteString(theme.muted.Render(c.CreatedAt.Local().Format("2006-01-02 15:04")) + " " + c.Comment + "\n")
	}
	b.WriteString("\n" + theme.muted.Render("esc to close"))
	return b.String()
}
