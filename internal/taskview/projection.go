package taskview

import (
	"time"

	"github.com/thenoetrevino/lista/internal/models"
)

// MonthLayout is how calendar months are named
const MonthLayout = "2006-01"

// Projection is a task collection laid out for one view
type Projection struct {
	Scope   string   `json:"scope"`
	View    View     `json:"view"`
	Params  string   `json:"params,omitempty"`
	Stats   Stats    `json:"stats"`
	Groups  []Group  `json:"groups,omitempty"`
	Columns []Column `json:"columns,omitempty"`
	Month   string   `json:"month,omitempty"`
	Days    []Day    `json:"days,omitempty"`
	Undated int      `json:"undated,omitempty"`
	Empty   string   `json:"empty_message,omitempty"`

	tasks []*models.Task
}

// Tasks returns the shown tasks in display order. Calendar views only
// include the days of the month itself.
func (p *Projection) Tasks() []*models.Task {
	return p.tasks
}

// IDs lists the shown tasks in display order
func (p *Projection) IDs() []string {
	ids := make([]string, 0, len(p.tasks))
	for _, t := range p.tasks {
		ids = append(ids, t.ID.String())
	}
	return ids
}

// Project filters tasks by params and lays them out for params.View. month
// picks the calendar page; today marks the current day on it.
func Project(scope Scope, tasks []*models.Task, lists []*models.TaskList, params Params, month, today time.Time) *Projection {
	p := &Projection{
		Scope:  scope.Kind.String(),
		View:   params.View,
		Params: params.Encode().Encode(),
	}
	filtered := Filter(tasks, params)
	p.Stats = ComputeStats(filtered)
	if len(filtered) == 0 {
		p.Empty = scope.EmptyMessage()
	}

	switch params.View {
	case ViewKanban:
		p.Columns = Kanban(filtered)
		for _, col := range p.Columns {
			p.tasks = append(p.tasks, col.Tasks...)
		}
	case ViewCalendar:
		p.Month = month.Format(MonthLayout)
		p.Days = MonthGrid(month, today, Calendar(filtered))
		for _, d := range p.Days {
			if d.InMonth {
				p.tasks = append(p.tasks, d.Tasks...)
			}
		}
		for _, t := range filtered {
			if t.DueDate == nil || t.DueDate.IsZero() {
				p.Undated++
			}
		}
	default:
		p.Groups = ListProjection(tasks, lists, params)
		for _, g := range p.Groups {
			if len(g.Lists) == 0 {
				p.tasks = append(p.tasks, g.Tasks...)
				continue
			}
			for _, sec := range g.Lists {
				p.tasks = append(p.tasks, sec.Tasks...)
			}
		}
	}
	return p
}
