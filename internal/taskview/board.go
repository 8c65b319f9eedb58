package taskview

import (
	"math"
	"time"

	"github.com/thenoetrevino/lista/internal/models"
)

// Column is one kanban column
type Column struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Tasks  []*models.Task `json:"tasks"`
}

// KanbanStatus maps a task status onto one of the three board columns.
// ok is false for statuses the board does not show.
func KanbanStatus(status string) (string, bool) {
	switch status {
	case models.StatusTodo, models.StatusPending, "":
		return models.StatusTodo, true
	case models.StatusInProgress, models.StatusDone:
		return status, true
	}
	return "", false
}

// Kanban returns exactly three columns: todo, in_progress, done
func Kanban(tasks []*models.Task) []Column {
	cols := make([]Column, len(models.StatusOrder))
	index := make(map[string]int, len(models.StatusOrder))
	for i, s := range models.StatusOrder {
		cols[i] = Column{Status: s, Label: models.StatusLabel(s), Tasks: []*models.Task{}}
		index[s] = i
	}
	for _, t := range tasks {
		if s, ok := KanbanStatus(t.Status); ok {
			i := index[s]
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Calendar buckets tasks by due date (YYYY-MM-DD). Undated tasks are left out.
func Calendar(tasks []*models.Task) map[string][]*models.Task {
	out := make(map[string][]*models.Task)
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		k := t.DueDate.Key()
		out[k] = append(out[k], t)
	}
	return out
}

// Day is one cell of the month grid
type Day struct {
	Date    models.Date    `json:"date"`
	InMonth bool           `json:"in_month"`
	Today   bool           `json:"today"`
	Tasks   []*models.Task `json:"tasks"`
}

// GridCells is six weeks of seven days
const GridCells = 42

// MonthGrid lays out the month containing month as six Sunday-first weeks,
// padded with the neighbouring months' days
func MonthGrid(month, today time.Time, buckets map[string][]*models.Task) []Day {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayKey := today.Format(models.DateLayout)

	days := make([]Day, GridCells)
	for i := range days {
		d := models.Date{Time: start.AddDate(0, 0, i)}
		days[i] = Day{
			Date:    d,
			InMonth: d.Month() == first.Month(),
			Today:   d.Key() == todayKey,
			Tasks:   buckets[d.Key()],
		}
	}
	return days
}

// Stats summarises a task collection
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Percent    int `json:"completion_percent"`
}

func ComputeStats(tasks []*models.Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch col, _ := KanbanStatus(t.Status); col {
		case models.StatusTodo:
			s.Todo++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusDone:
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
	}
	return s
}
