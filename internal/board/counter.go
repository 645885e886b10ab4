package board

import (
	"github.com/dori/taskboard/internal/model"
)

// Counts are derived totals over a set of visible units
type Counts struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}

// Of returns the count for one status
func (c Counts) Of(s model.Status) int {
	switch s {
	case model.StatusTodo:
		return c.Todo
	case model.StatusInProgress:
		return c.InProgress
	case model.StatusDone:
		return c.Done
	}
	return 0
}

// CountVisible counts the shown units, in total and per status
func CountVisible(units []*Unit) Counts {
	var c Counts
	for _, u := range units {
		if u.Hidden {
			continue
		}
		c.Total++
		switch u.Status {
		case model.StatusTodo:
			c.Todo++
		case model.StatusInProgress:
			c.InProgress++
		case model.StatusDone:
			c.Done++
		}
	}
	return c
}

// Summary is what the summary panel and the kanban column headers display.
// Both targets always carry the same numbers.
type Summary struct {
	Panel   Counts
	Headers map[model.Status]int
	Empty   bool
}

func newSummary(c Counts) Summary {
	headers := make(map[model.Status]int, len(model.Statuses))
	for _, s := range model.Statuses {
		headers[s] = c.Of(s)
	}
	return Summary{Panel: c, Headers: headers, Empty: c.Total == 0}
}
