package board

import (
	"strings"

	"github.com/dori/taskboard/internal/model"
)

// StatusAll is the status filter value that matches every task
const StatusAll model.Status = "All"

// FilterStatuses lists the status filter values in cycle order
var FilterStatuses = []model.Status{StatusAll, model.StatusTodo, model.StatusInProgress, model.StatusDone}

// Filter is the current status selector and search term. It only decides
// visibility; task data is never touched.
type Filter struct {
	Status model.Status
	Search string
}

// Active reports whether the filter hides anything in principle
func (f Filter) Active() bool {
	return (f.Status != "" && f.Status != StatusAll) || strings.TrimSpace(f.Search) != ""
}

// Matches is status-match AND text-match
func (f Filter) Matches(u *Unit) bool {
	return f.statusMatch(u) && f.textMatch(u)
}

func (f Filter) statusMatch(u *Unit) bool {
	return f.Status == "" || f.Status == StatusAll || u.Status == f.Status
}

func (f Filter) textMatch(u *Unit) bool {
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Text()), strings.ToLower(f.Search))
}

// NextFilterStatus returns the status after s in FilterStatuses, wrapping
func NextFilterStatus(s model.Status) model.Status {
	for i, st := range FilterStatuses {
		if st == s {
			return FilterStatuses[(i+1)%len(FilterStatuses)]
		}
	}
	return StatusAll
}
