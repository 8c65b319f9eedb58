package taskview

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thenoetrevino/lista/internal/models"
)

// GroupBy is the primary grouping key of the list projection
type GroupBy string

const (
	GroupByStatus   GroupBy = "status"
	GroupByAssignee GroupBy = "assignee"
	GroupByPriority GroupBy = "priority"
	GroupByNone     GroupBy = "none"
)

// Order of the groups
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// View selects the projection
type View string

const (
	ViewList     View = "list"
	ViewKanban   View = "kanban"
	ViewCalendar View = "calendar"
)

var (
	ErrInvalidGroupBy = errors.New("invalid group by")
	ErrInvalidOrder   = errors.New("invalid group order")
	ErrInvalidView    = errors.New("invalid view")
)

// Query parameter names
const (
	ParamStatus          = "status"
	ParamPriority        = "priority"
	ParamGroupBy         = "groupBy"
	ParamGroupOrder      = "groupOrder"
	ParamAlsoGroupByList = "alsoGroupByList"
	ParamView            = "view"
)

// Params are the view controls carried in the query string
type Params struct {
	Status          mapset.Set[string]
	Priority        mapset.Set[models.Priority]
	GroupBy         GroupBy
	Order           Order
	AlsoGroupByList bool
	View            View
}

// DefaultParams groups by status, ascending, in the list view, unfiltered
func DefaultParams() Params {
	return Params{
		Status:   mapset.NewThreadUnsafeSet[string](),
		Priority: mapset.NewThreadUnsafeSet[models.Priority](),
		GroupBy:  GroupByStatus,
		Order:    OrderAsc,
		View:     ViewList,
	}
}

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupByStatus, GroupByAssignee, GroupByPriority, GroupByNone:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q (must be: status, assignee, priority, none)", ErrInvalidGroupBy, s)
}

func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAsc, OrderDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q (must be: asc, desc)", ErrInvalidOrder, s)
}

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewList, ViewKanban, ViewCalendar:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q (must be: list, kanban, calendar)", ErrInvalidView, s)
}

// ParseParams reads the view controls. Unknown values fall back to the defaults.
func ParseParams(q url.Values) Params {
	p := DefaultParams()
	for _, s := range splitList(q.Get(ParamStatus)) {
		p.Status.Add(s)
	}
	for _, s := range splitList(q.Get(ParamPriority)) {
		p.Priority.Add(models.Priority(strings.ToLower(s)))
	}
	if g, err := ParseGroupBy(q.Get(ParamGroupBy)); err == nil {
		p.GroupBy = g
	}
	if o, err := ParseOrder(q.Get(ParamGroupOrder)); err == nil {
		p.Order = o
	}
	if v, err := ParseView(q.Get(ParamView)); err == nil {
		p.View = v
	}
	switch q.Get(ParamAlsoGroupByList) {
	case "1", "true":
		p.AlsoGroupByList = true
	}
	return p
}

// Encode writes the controls back as query parameters
func (p Params) Encode() url.Values {
	q := url.Values{}
	if p.Status != nil && p.Status.Cardinality() > 0 {
		q.Set(ParamStatus, joinSorted(p.Status.ToSlice()))
	}
	if p.Priority != nil && p.Priority.Cardinality() > 0 {
		prios := make([]string, 0, p.Priority.Cardinality())
		for _, pr := range p.Priority.ToSlice() {
			prios = append(prios, string(pr))
		}
		q.Set(ParamPriority, joinSorted(prios))
	}
	if p.GroupBy != "" {
		q.Set(ParamGroupBy, string(p.GroupBy))
	}
	if p.Order != "" {
		q.Set(ParamGroupOrder, string(p.Order))
	}
	if p.AlsoGroupByList {
		q.Set(ParamAlsoGroupByList, "1")
	}
	if p.View != "" && p.View != ViewList {
		q.Set(ParamView, string(p.View))
	}
	return q
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinSorted(items []string) string {
	sort.Strings(items)
	return strings.Join(items, ",")
}
